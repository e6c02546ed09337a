package modules

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aunefyren/coverr/logger"
	"github.com/aunefyren/coverr/models"
)

var (
	lastQueryTime time.Time
	queryMutex    sync.Mutex
	rateLimit     = time.Second
)

// ErrNoArtworkFound is returned when the search completes but no result
// carries an artwork thumbnail.
var ErrNoArtworkFound = errors.New("no artwork found")

// the iTunes search API returns thumbnails at this fixed resolution
var thumbnailResolution = "100x100"

// RateLimit wraps any API function and ensures at least 1s between executions
func RateLimit() error {
	queryMutex.Lock()
	defer queryMutex.Unlock()

	now := time.Now()
	elapsed := now.Sub(lastQueryTime)
	if elapsed < rateLimit {
		time.Sleep(rateLimit - elapsed)
	}

	lastQueryTime = time.Now()
	return nil
}

// must be local in the file
type ITunesClient struct {
	BaseURL string
	Version string
	HTTP    *http.Client
}

// create new iTunes search client
func NewITunesClient(version string) *ITunesClient {
	return &ITunesClient{
		BaseURL: "https://itunes.apple.com",
		Version: version,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// UpscaleArtworkURL swaps the fixed thumbnail resolution segment of an iTunes
// artwork URL for the given square resolution. The larger asset lives at the
// same path, only the size segment differs.
func UpscaleArtworkURL(artworkURL string, resolution int) string {
	size := strconv.Itoa(resolution) + "x" + strconv.Itoa(resolution)
	return strings.Replace(artworkURL, thumbnailResolution, size, 1)
}

// SearchArtworkURL queries the iTunes search API for the track and returns a
// high-resolution artwork URL for the first result that carries one.
func (c *ITunesClient) SearchArtworkURL(artist string, title string, resolution int, limit int) (string, error) {
	if artist == "" || title == "" {
		return "", errors.New("artist and title are required")
	}

	// rate limit the request to comply
	err := RateLimit()
	if err != nil {
		logger.Log.Error("failed to rate limit. error: " + err.Error())
		return "", errors.New("failed to rate limit")
	}

	query := url.Values{}
	query.Set("term", artist+" "+title)
	query.Set("media", "music")
	query.Set("entity", "song")
	query.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequest("GET", c.BaseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Coverr/"+c.Version+" (https://github.com/aunefyren/coverr)")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("iTunes API returned status: %s", resp.Status)
	}

	var apiResponse models.ITunesSearchResponse
	err = json.NewDecoder(resp.Body).Decode(&apiResponse)
	if err != nil {
		logger.Log.Error("failed to parse iTunes API response. error: " + err.Error())
		return "", errors.New("failed to parse iTunes API response")
	}

	// best match is the first result with artwork, in the API's own ordering
	for _, result := range apiResponse.Results {
		if result.ArtworkURL100 != "" {
			return UpscaleArtworkURL(result.ArtworkURL100, resolution), nil
		}
	}

	return "", ErrNoArtworkFound
}

// DownloadArtwork fetches the image bytes behind an artwork URL. A single
// attempt, no retries.
func (c *ITunesClient) DownloadArtwork(artworkURL string) ([]byte, error) {
	err := RateLimit()
	if err != nil {
		logger.Log.Error("failed to rate limit. error: " + err.Error())
		return nil, errors.New("failed to rate limit")
	}

	req, err := http.NewRequest("GET", artworkURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Coverr/"+c.Version+" (https://github.com/aunefyren/coverr)")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("artwork download returned status: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}
