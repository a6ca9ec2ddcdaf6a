package download

import (
	"bytes"
	"context"
	"image"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	// Registered decoders for image validation. Commons thumbnails are
	// JPEG, PNG, or GIF; anything else (e.g. raw SVG) is rejected.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nao1215/wikigrab/internal/commons"
	"github.com/nao1215/wikigrab/internal/model"
	"github.com/nao1215/wikigrab/internal/webclient"
)

// Default politeness delay bounds between image transfers.
const (
	DefaultMinDelay = 1 * time.Second
	DefaultMaxDelay = 2 * time.Second
)

// Downloader fetches image bytes for located descriptors and persists the
// decodable ones.
type Downloader struct {
	// client fetches image bytes with randomized browser headers.
	client *webclient.Client

	// upgrader locates higher-resolution renditions before each transfer.
	upgrader *commons.Upgrader

	// logger reports per-item progress and skips.
	logger *slog.Logger

	// minDelay and maxDelay bound the randomized politeness delay applied
	// before each transfer.
	minDelay time.Duration
	maxDelay time.Duration

	// sleep performs the delay. Tests replace it to avoid real waiting.
	sleep func(time.Duration)

	// rng draws the delay within the configured bounds.
	rng *rand.Rand
}

// DownloaderOption configures a Downloader.
type DownloaderOption func(*Downloader)

// WithDelayRange sets the politeness delay bounds.
func WithDelayRange(minDelay, maxDelay time.Duration) DownloaderOption {
	return func(d *Downloader) {
		d.minDelay = minDelay
		d.maxDelay = maxDelay
	}
}

// WithSleepFunc replaces the sleep function. Tests pass a no-op.
func WithSleepFunc(sleep func(time.Duration)) DownloaderOption {
	return func(d *Downloader) {
		d.sleep = sleep
	}
}

// WithDownloaderLogger sets the logger.
func WithDownloaderLogger(logger *slog.Logger) DownloaderOption {
	return func(d *Downloader) {
		d.logger = logger
	}
}

// WithDownloaderRandSource fixes the random source for the delay draw.
func WithDownloaderRandSource(src rand.Source) DownloaderOption {
	return func(d *Downloader) {
		d.rng = rand.New(src) //nolint:gosec // Pacing jitter needs no cryptographic randomness
	}
}

// NewDownloader creates a Downloader.
func NewDownloader(client *webclient.Client, upgrader *commons.Upgrader, opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		client:   client,
		upgrader: upgrader,
		minDelay: DefaultMinDelay,
		maxDelay: DefaultMaxDelay,
		sleep:    time.Sleep,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // Pacing jitter needs no cryptographic randomness
	}

	return d
}

// DownloadAll processes descriptors strictly in order and returns the
// images that were fetched, validated, and written under folder. The folder
// is created when absent. A failure in one descriptor's path never aborts
// the batch; context cancellation stops between items.
func (d *Downloader) DownloadAll(ctx context.Context, images []model.ImageDescriptor, folder string, minWidth int) []model.SavedImage {
	if len(images) == 0 {
		return nil
	}

	if err := os.MkdirAll(folder, 0750); err != nil {
		d.logger.Error("could not create image folder", "folder", folder, "error", err)
		return nil
	}

	saved := make([]model.SavedImage, 0, len(images))
	for _, desc := range images {
		select {
		case <-ctx.Done():
			return saved
		default:
		}

		if img, ok := d.downloadOne(ctx, desc, folder, minWidth); ok {
			saved = append(saved, img)
		}
	}
	return saved
}

// downloadOne handles a single descriptor: upgrade, pause, fetch, validate,
// persist. The second return value is false when the item was dropped.
func (d *Downloader) downloadOne(ctx context.Context, desc model.ImageDescriptor, folder string, minWidth int) (model.SavedImage, bool) {
	imgURL := desc.ThumbnailURL
	if upgraded := d.upgrader.Upgrade(ctx, desc.FilePageURL, minWidth); upgraded != "" {
		imgURL = upgraded
	}

	d.pause()

	resp, err := d.client.Get(ctx, imgURL)
	if err != nil {
		d.logger.Warn("image download failed", "filename", desc.Filename, "error", err)
		return model.SavedImage{}, false
	}
	if resp.StatusCode != http.StatusOK {
		d.logger.Warn("image download failed",
			"filename", desc.Filename, "status", resp.StatusCode)
		return model.SavedImage{}, false
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(resp.Body))
	if err != nil {
		d.logger.Warn("downloaded bytes are not a decodable image",
			"filename", desc.Filename, "error", err)
		return model.SavedImage{}, false
	}

	safe := SanitizeFilename(desc.Filename)
	path := filepath.Join(folder, safe)
	if err := os.WriteFile(path, resp.Body, 0644); err != nil { //nolint:gosec // Downloaded images are not secrets
		d.logger.Warn("could not write image file", "path", path, "error", err)
		return model.SavedImage{}, false
	}

	d.logger.Info("downloaded image",
		"file", safe, "width", cfg.Width, "height", cfg.Height, "format", format)

	return model.SavedImage{
		Path:      path,
		Filename:  safe,
		SourceURL: imgURL,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Format:    format,
		Metadata:  ExtractMetadata(resp.Body),
	}, true
}

// pause sleeps for a random duration within the configured bounds.
func (d *Downloader) pause() {
	delay := d.minDelay
	if span := d.maxDelay - d.minDelay; span > 0 {
		delay += time.Duration(d.rng.Int63n(int64(span)))
	}
	if delay > 0 {
		d.sleep(delay)
	}
}
