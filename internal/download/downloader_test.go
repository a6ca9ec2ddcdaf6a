package download

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/wikigrab/internal/commons"
	"github.com/nao1215/wikigrab/internal/model"
	"github.com/nao1215/wikigrab/internal/webclient"
)

// encodePNG returns a valid PNG of the given dimensions.
func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

// newTestDownloader wires a Downloader to the given test server with a
// no-op sleep so tests never wait.
func newTestDownloader(t *testing.T, server *httptest.Server) *Downloader {
	t.Helper()
	client := webclient.New(webclient.WithHTTPClient(server.Client()))
	upgrader := commons.NewUpgrader(client)
	return NewDownloader(client, upgrader, WithSleepFunc(func(time.Duration) {}))
}

// TestDownloaderDownloadAll tests the image download batch.
func TestDownloaderDownloadAll(t *testing.T) {
	t.Parallel()

	t.Run("downloads and validates images", func(t *testing.T) {
		t.Parallel()

		pngBytes := encodePNG(t, 8, 6)
		mux := http.NewServeMux()
		mux.HandleFunc("/thumb/Example.png", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(pngBytes)
		})
		mux.HandleFunc("/wiki/File:Example.png", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><body>no renditions here</body></html>`))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		folder := t.TempDir()
		d := newTestDownloader(t, server)
		saved := d.DownloadAll(context.Background(), []model.ImageDescriptor{
			{
				Filename:     "File:Example.png",
				ThumbnailURL: server.URL + "/thumb/Example.png",
				FilePageURL:  server.URL + "/wiki/File:Example.png",
			},
		}, folder, 800)

		if len(saved) != 1 {
			t.Fatalf("expected 1 saved image, got %d", len(saved))
		}
		img := saved[0]
		if img.Filename != "File_Example.png" {
			t.Errorf("expected sanitized filename, got %q", img.Filename)
		}
		if img.Width != 8 || img.Height != 6 {
			t.Errorf("expected 8x6, got %dx%d", img.Width, img.Height)
		}
		if img.Format != "png" {
			t.Errorf("expected png format, got %q", img.Format)
		}

		data, err := os.ReadFile(filepath.Join(folder, "File_Example.png"))
		if err != nil {
			t.Fatalf("expected file on disk: %v", err)
		}
		if !bytes.Equal(data, pngBytes) {
			t.Error("written bytes differ from served bytes")
		}
	})

	t.Run("uses the upgraded rendition when available", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/wiki/File:Big.png", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><body>
				<a href="/thumb/a/Big.png/1600px-Big.png">1,600 × 1,200 pixels</a>
				</body></html>`))
		})
		mux.HandleFunc("/thumb/a/Big.png/1600px-Big.png", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(encodePNG(t, 16, 12))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		d := newTestDownloader(t, server)
		saved := d.DownloadAll(context.Background(), []model.ImageDescriptor{
			{
				Filename:     "File:Big.png",
				ThumbnailURL: server.URL + "/thumb/small.png",
				FilePageURL:  server.URL + "/wiki/File:Big.png",
			},
		}, t.TempDir(), 800)

		if len(saved) != 1 {
			t.Fatalf("expected 1 saved image, got %d", len(saved))
		}
		want := server.URL + "/thumb/a/Big.png/1600px-Big.png"
		if saved[0].SourceURL != want {
			t.Errorf("expected source %q, got %q", want, saved[0].SourceURL)
		}
	})

	t.Run("skips bytes that do not decode as an image", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		d := newTestDownloader(t, server)
		saved := d.DownloadAll(context.Background(), []model.ImageDescriptor{
			{
				Filename:     "File:Vector.svg",
				ThumbnailURL: server.URL + "/thumb/Vector.svg",
				FilePageURL:  server.URL + "/wiki/File:Vector.svg",
			},
		}, t.TempDir(), 800)

		if len(saved) != 0 {
			t.Fatalf("expected no saved images, got %d", len(saved))
		}
	})

	t.Run("skips items that fail with a non-200 status", func(t *testing.T) {
		t.Parallel()

		pngBytes := encodePNG(t, 4, 4)
		mux := http.NewServeMux()
		mux.HandleFunc("/thumb/Gone.png", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		mux.HandleFunc("/thumb/Fine.png", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(pngBytes)
		})
		mux.HandleFunc("/wiki/", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><body></body></html>`))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		d := newTestDownloader(t, server)
		saved := d.DownloadAll(context.Background(), []model.ImageDescriptor{
			{Filename: "File:Gone.png", ThumbnailURL: server.URL + "/thumb/Gone.png", FilePageURL: server.URL + "/wiki/File:Gone.png"},
			{Filename: "File:Fine.png", ThumbnailURL: server.URL + "/thumb/Fine.png", FilePageURL: server.URL + "/wiki/File:Fine.png"},
		}, t.TempDir(), 800)

		if len(saved) != 1 {
			t.Fatalf("expected 1 saved image, got %d", len(saved))
		}
		if saved[0].Filename != "File_Fine.png" {
			t.Errorf("expected the surviving item, got %q", saved[0].Filename)
		}
	})

	t.Run("stops between items on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		d := NewDownloader(webclient.New(), commons.NewUpgrader(webclient.New()),
			WithSleepFunc(func(time.Duration) {}))
		saved := d.DownloadAll(ctx, []model.ImageDescriptor{
			{Filename: "File:A.png", ThumbnailURL: "https://example.org/a.png", FilePageURL: "https://example.org/wiki/File:A.png"},
		}, t.TempDir(), 800)

		if len(saved) != 0 {
			t.Errorf("expected no downloads after cancellation, got %d", len(saved))
		}
	})

	t.Run("empty descriptor list is a no-op", func(t *testing.T) {
		t.Parallel()

		d := NewDownloader(webclient.New(), commons.NewUpgrader(webclient.New()))
		if saved := d.DownloadAll(context.Background(), nil, t.TempDir(), 800); saved != nil {
			t.Errorf("expected nil, got %v", saved)
		}
	})
}

// TestDownloaderPause tests the politeness delay draw.
func TestDownloaderPause(t *testing.T) {
	t.Parallel()

	t.Run("delay stays within the configured bounds", func(t *testing.T) {
		t.Parallel()

		var slept time.Duration
		d := NewDownloader(webclient.New(), commons.NewUpgrader(webclient.New()),
			WithDelayRange(100*time.Millisecond, 200*time.Millisecond),
			WithSleepFunc(func(dur time.Duration) { slept = dur }),
		)

		d.pause()
		if slept < 100*time.Millisecond || slept >= 200*time.Millisecond {
			t.Errorf("delay %v outside [100ms, 200ms)", slept)
		}
	})

	t.Run("zero range sleeps the fixed delay", func(t *testing.T) {
		t.Parallel()

		var slept time.Duration
		d := NewDownloader(webclient.New(), commons.NewUpgrader(webclient.New()),
			WithDelayRange(50*time.Millisecond, 50*time.Millisecond),
			WithSleepFunc(func(dur time.Duration) { slept = dur }),
		)

		d.pause()
		if slept != 50*time.Millisecond {
			t.Errorf("expected 50ms, got %v", slept)
		}
	})
}
