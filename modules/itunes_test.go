package modules

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/aunefyren/coverr/models"
)

func TestMain(m *testing.M) {
	// the public API limiter would make these tests crawl
	rateLimit = time.Millisecond
	os.Exit(m.Run())
}

func newTestClient(baseURL string) *ITunesClient {
	return &ITunesClient{
		BaseURL: baseURL,
		Version: "test",
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

func TestUpscaleArtworkURL(t *testing.T) {
	artworkURL := "https://is1-ssl.mzstatic.com/image/thumb/Music/cover/100x100bb.jpg"

	upscaled := UpscaleArtworkURL(artworkURL, 600)
	want := "https://is1-ssl.mzstatic.com/image/thumb/Music/cover/600x600bb.jpg"
	if upscaled != want {
		t.Errorf("expected %q, got %q", want, upscaled)
	}
}

func TestUpscaleArtworkURLCustomResolution(t *testing.T) {
	artworkURL := "https://example.com/a/100x100bb.jpg"

	upscaled := UpscaleArtworkURL(artworkURL, 1200)
	want := "https://example.com/a/1200x1200bb.jpg"
	if upscaled != want {
		t.Errorf("expected %q, got %q", want, upscaled)
	}
}

func TestUpscaleArtworkURLWithoutThumbnailSegment(t *testing.T) {
	artworkURL := "https://example.com/a/cover.jpg"

	upscaled := UpscaleArtworkURL(artworkURL, 600)
	if upscaled != artworkURL {
		t.Errorf("URL without a thumbnail segment should pass through unchanged, got %q", upscaled)
	}
}

func TestSearchArtworkURLRequiresArtistAndTitle(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	if _, err := client.SearchArtworkURL("", "Bohemian Rhapsody", 600, 5); err == nil {
		t.Errorf("expected an error for empty artist")
	}
	if _, err := client.SearchArtworkURL("Queen", "", 600, 5); err == nil {
		t.Errorf("expected an error for empty title")
	}
}

func TestSearchArtworkURLPicksFirstResultWithArtwork(t *testing.T) {
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"term":   r.URL.Query().Get("term"),
			"media":  r.URL.Query().Get("media"),
			"entity": r.URL.Query().Get("entity"),
			"limit":  r.URL.Query().Get("limit"),
		}

		response := models.ITunesSearchResponse{
			ResultCount: 2,
			Results: []models.ITunesSearchResult{
				{ArtistName: "Queen", TrackName: "Bohemian Rhapsody"},
				{ArtistName: "Queen", TrackName: "Bohemian Rhapsody", ArtworkURL100: "https://example.com/art/100x100bb.jpg"},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	artworkURL, err := client.SearchArtworkURL("Queen", "Bohemian Rhapsody", 600, 5)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	want := "https://example.com/art/600x600bb.jpg"
	if artworkURL != want {
		t.Errorf("expected %q, got %q", want, artworkURL)
	}

	if gotQuery["term"] != "Queen Bohemian Rhapsody" {
		t.Errorf("unexpected term parameter: %q", gotQuery["term"])
	}
	if gotQuery["media"] != "music" || gotQuery["entity"] != "song" {
		t.Errorf("media/entity parameters not constrained: %v", gotQuery)
	}
	if gotQuery["limit"] != "5" {
		t.Errorf("unexpected limit parameter: %q", gotQuery["limit"])
	}
}

func TestSearchArtworkURLNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.ITunesSearchResponse{ResultCount: 0})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.SearchArtworkURL("Queen", "Bohemian Rhapsody", 600, 5)
	if !errors.Is(err, ErrNoArtworkFound) {
		t.Errorf("expected ErrNoArtworkFound, got %v", err)
	}
}

func TestSearchArtworkURLNoResultWithArtwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := models.ITunesSearchResponse{
			ResultCount: 1,
			Results:     []models.ITunesSearchResult{{ArtistName: "Queen"}},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.SearchArtworkURL("Queen", "Bohemian Rhapsody", 600, 5)
	if !errors.Is(err, ErrNoArtworkFound) {
		t.Errorf("expected ErrNoArtworkFound, got %v", err)
	}
}

func TestSearchArtworkURLServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	if _, err := client.SearchArtworkURL("Queen", "Bohemian Rhapsody", 600, 5); err == nil {
		t.Errorf("expected an error for a non-200 response")
	}
}

func TestSearchArtworkURLInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("definitely not json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	if _, err := client.SearchArtworkURL("Queen", "Bohemian Rhapsody", 600, 5); err == nil {
		t.Errorf("expected an error for an unparseable response")
	}
}

func TestDownloadArtwork(t *testing.T) {
	artwork := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(artwork)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	data, err := client.DownloadArtwork(server.URL + "/art/600x600bb.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if string(data) != string(artwork) {
		t.Errorf("downloaded bytes do not match served bytes")
	}
}

func TestDownloadArtworkStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	if _, err := client.DownloadArtwork(server.URL + "/missing.jpg"); err == nil {
		t.Errorf("expected an error for a non-200 response")
	}
}
