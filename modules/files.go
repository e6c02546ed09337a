package modules

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aunefyren/coverr/logger"
	"github.com/aunefyren/coverr/models"
	"github.com/aunefyren/coverr/utilities"
	"github.com/bogem/id3v2"
)

// List of allowed audio file extensions
var supportedExtensions = map[string]bool{
	".flac": false,
	".mp3":  true,
	".m4a":  false,
	".ogg":  false,
	".wav":  false,
}

// APIC frames are only reliably read by common players when written as
// ID3v2.3, so every save forces that sub-version.
const savedTagVersion = 3

// GetFileTags reads the artist and title text frames from an open tag.
func GetFileTags(tagFile *id3v2.Tag) models.FileTags {
	return models.FileTags{
		Artist: utilities.NormalizeTagValue(tagFile.Artist()),
		Title:  utilities.NormalizeTagValue(tagFile.Title()),
	}
}

// GetEmbeddedArtwork returns the bytes of the first attached picture frame,
// or nil when the file carries no artwork.
func GetEmbeddedArtwork(tagFile *id3v2.Tag) []byte {
	for _, frame := range tagFile.GetFrames(tagFile.CommonID("Attached picture")) {
		pictureFrame, ok := frame.(id3v2.PictureFrame)
		if !ok {
			continue
		}

		if len(pictureFrame.Picture) > 0 {
			return pictureFrame.Picture
		}
	}
	return nil
}

// SetEmbeddedArtwork replaces all attached picture frames with a single
// front cover JPEG frame and saves the tag as ID3v2.3.
func SetEmbeddedArtwork(tagFile *id3v2.Tag, artwork []byte) error {
	tagFile.DeleteFrames(tagFile.CommonID("Attached picture"))

	tagFile.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingISO,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Front cover",
		Picture:     artwork,
	})

	tagFile.SetVersion(savedTagVersion)

	if err := tagFile.Save(); err != nil {
		return err
	}

	return nil
}

// ProcessTrackFile runs the artwork pipeline for a single file: read the tag,
// resize oversized embedded artwork or fetch missing artwork, save, and
// classify the outcome. Every per-file error becomes an outcome, never a
// failure of the surrounding walk.
func ProcessTrackFile(filePath string, client *ITunesClient, configFile models.ConfigStruct) models.OutcomeRecord {
	tagFile, err := id3v2.Open(filePath, id3v2.Options{Parse: true})
	if err != nil {
		logger.Log.Warn("failed to open tag container for '" + filePath + "'. error: " + err.Error())
		return models.OutcomeRecord{Path: filePath, Outcome: models.OutcomeSkipped, Reason: "unreadable tag container"}
	}
	defer tagFile.Close()

	fileTags := GetFileTags(tagFile)
	if fileTags.Artist == "" || fileTags.Title == "" {
		logger.Log.Info("skipping file with missing tags: " + filePath)
		return models.OutcomeRecord{Path: filePath, Outcome: models.OutcomeSkipped, Reason: "missing tags"}
	}

	artwork := GetEmbeddedArtwork(tagFile)
	if artwork != nil {
		return processEmbeddedArtwork(filePath, tagFile, artwork, configFile)
	}

	return processMissingArtwork(filePath, tagFile, fileTags, client, configFile)
}

func processEmbeddedArtwork(filePath string, tagFile *id3v2.Tag, artwork []byte, configFile models.ConfigStruct) models.OutcomeRecord {
	resized, err := ResizeArtworkIfNeeded(artwork, configFile.CoverrMaxArtworkSize)
	if err != nil {
		logger.Log.Warn("failed to decode embedded artwork in '" + filePath + "'. error: " + err.Error())
		return models.OutcomeRecord{Path: filePath, Outcome: models.OutcomeSkipped, Reason: "invalid embedded image"}
	}

	if resized == nil {
		logger.Log.Debug("embedded artwork already within bounds: " + filePath)
		return models.OutcomeRecord{Path: filePath, Outcome: models.OutcomeUnchanged}
	}

	err = SetEmbeddedArtwork(tagFile, resized)
	if err != nil {
		logger.Log.Error("failed to save resized artwork for '" + filePath + "'. error: " + err.Error())
		return models.OutcomeRecord{Path: filePath, Outcome: models.OutcomeSkipped, Reason: "write failed"}
	}

	logger.Log.Info("resized embedded artwork: " + filePath)
	return models.OutcomeRecord{Path: filePath, Outcome: models.OutcomeResized}
}

func processMissingArtwork(filePath string, tagFile *id3v2.Tag, fileTags models.FileTags, client *ITunesClient, configFile models.ConfigStruct) models.OutcomeRecord {
	artworkURL, err := client.SearchArtworkURL(fileTags.Artist, fileTags.Title, configFile.CoverrFetchResolution, configFile.CoverrSearchLimit)
	if err != nil {
		if !errors.Is(err, ErrNoArtworkFound) {
			logger.Log.Warn("artwork search failed for '" + filePath + "'. error: " + err.Error())
		}
		logger.Log.Info("no artwork found online for: " + fileTags.Artist + " - " + fileTags.Title)
		return models.OutcomeRecord{Path: filePath, Outcome: models.OutcomeMissing}
	}

	artwork, err := client.DownloadArtwork(artworkURL)
	if err != nil {
		logger.Log.Error("failed to download artwork for '" + filePath + "'. error: " + err.Error())
		return models.OutcomeRecord{Path: filePath, Outcome: models.OutcomeSkipped, Reason: "fetch error"}
	}

	// downloads always go through the resize and encode path so the embedded
	// image is a JPEG within bounds regardless of what the API served
	normalized, err := NormalizeArtwork(artwork, configFile.CoverrMaxArtworkSize)
	if err != nil {
		logger.Log.Warn("failed to decode downloaded artwork for '" + filePath + "'. error: " + err.Error())
		return models.OutcomeRecord{Path: filePath, Outcome: models.OutcomeSkipped, Reason: "invalid downloaded image"}
	}

	err = SetEmbeddedArtwork(tagFile, normalized)
	if err != nil {
		logger.Log.Error("failed to save fetched artwork for '" + filePath + "'. error: " + err.Error())
		return models.OutcomeRecord{Path: filePath, Outcome: models.OutcomeSkipped, Reason: "write failed"}
	}

	logger.Log.Info("added artwork: " + filePath)
	return models.OutcomeRecord{Path: filePath, Outcome: models.OutcomeAdded}
}

// ScanFolderRecursive walks a library folder and processes every supported
// track file sequentially. Unreadable subdirectories are skipped with a
// warning instead of failing the walk.
func ScanFolderRecursive(root string, client *ITunesClient, configFile models.ConfigStruct) (models.ProcessReport, error) {
	report := models.ProcessReport{}

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if d == nil {
				return err // the root itself could not be read
			}
			logger.Log.Warn("failed to read '" + path + "', skipping. error: " + err.Error())
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil // keep walking
		}
		if utilities.HasSupportedExtension(path, supportedExtensions) {
			report.Record(ProcessTrackFile(path, client, configFile))
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	return report, nil
}

// LogReport writes the end-of-run summary for a walk.
func LogReport(report models.ProcessReport) {
	logger.Log.Info("--- summary ---")
	logger.Log.Info("total files processed: " + strconv.Itoa(report.TotalFiles))
	logger.Log.Info("artwork resized: " + strconv.Itoa(report.Resized))
	logger.Log.Info("artwork added: " + strconv.Itoa(report.Added))
	logger.Log.Info("artwork already within bounds: " + strconv.Itoa(report.Unchanged))
	logger.Log.Info("artwork missing: " + strconv.Itoa(report.Missing))
	logger.Log.Info("files skipped: " + strconv.Itoa(report.Skipped))

	for _, path := range report.MissingPaths {
		logger.Log.Info("missing artwork: " + path)
	}
	for _, path := range report.SkippedPaths {
		logger.Log.Info("skipped file: " + path)
	}
}
