package modules

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	// Image formats accepted when decoding embedded or downloaded artwork.
	_ "image/gif"
	_ "image/png"

	// Additional image formats from the x repository.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

// ResizeArtworkIfNeeded decodes artwork bytes and scales them down when a
// dimension exceeds maxSize. Returns nil bytes when the image already fits,
// so callers can avoid a pointless rewrite of the file.
func ResizeArtworkIfNeeded(data []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	imgRect := img.Bounds()
	imgWidth := imgRect.Dx()
	imgHeight := imgRect.Dy()

	if imgWidth <= maxSize && imgHeight <= maxSize {
		return nil, nil
	}

	return scaleArtwork(img, imgWidth, imgHeight, maxSize)
}

// NormalizeArtwork re-encodes artwork bytes as JPEG, scaling down when a
// dimension exceeds maxSize. Used for downloaded artwork so every embedded
// image ends up as a JPEG within bounds regardless of the source format.
func NormalizeArtwork(data []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	imgRect := img.Bounds()
	imgWidth := imgRect.Dx()
	imgHeight := imgRect.Dy()

	return scaleArtwork(img, imgWidth, imgHeight, maxSize)
}

// scaleArtwork draws img into a canvas whose longer side is at most maxSize,
// preserving the aspect ratio, and encodes the result as JPEG.
func scaleArtwork(img image.Image, imgWidth int, imgHeight int, maxSize int) ([]byte, error) {
	toWidth := imgWidth
	toHeight := imgHeight

	if imgWidth > maxSize || imgHeight > maxSize {
		if imgWidth >= imgHeight {
			toWidth = maxSize
			toHeight = int(float64(imgHeight)/float64(imgWidth)*float64(maxSize) + 0.5)
		} else {
			toHeight = maxSize
			toWidth = int(float64(imgWidth)/float64(imgHeight)*float64(maxSize) + 0.5)
		}
		if toWidth < 1 {
			toWidth = 1
		}
		if toHeight < 1 {
			toHeight = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, toWidth, toHeight))

	draw.CatmullRom.Scale(
		dst,
		dst.Bounds(),
		img,
		img.Bounds(),
		draw.Over,
		nil,
	)

	var dstJPEG bytes.Buffer
	if err := jpeg.Encode(&dstJPEG, dst, nil); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	return dstJPEG.Bytes(), nil
}
