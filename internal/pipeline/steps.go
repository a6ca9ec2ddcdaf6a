package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/wikigrab/internal/commons"
	"github.com/nao1215/wikigrab/internal/download"
	"github.com/nao1215/wikigrab/internal/model"
	"github.com/nao1215/wikigrab/internal/wiki"
)

// ResolveTitleStep extracts the article title from the source URL.
type ResolveTitleStep struct{}

// NewResolveTitleStep creates a new ResolveTitleStep.
func NewResolveTitleStep() *ResolveTitleStep {
	return &ResolveTitleStep{}
}

// Name returns the step name for logging.
func (s *ResolveTitleStep) Name() string {
	return "resolve_title"
}

// Do resolves the title. Failure is critical: every later step keys off
// the title, so there is no point continuing without one.
func (s *ResolveTitleStep) Do(_ context.Context, report *model.GrabReport) error {
	title, err := wiki.ExtractTitle(report.SourceURL)
	if err != nil {
		return &CriticalError{Err: fmt.Errorf("failed to resolve title from %s: %w", report.SourceURL, err)}
	}
	report.Title = title
	return nil
}

// FetchContentStep retrieves the parsed article from the MediaWiki API.
type FetchContentStep struct {
	fetcher *wiki.Fetcher
	logger  *slog.Logger
}

// NewFetchContentStep creates a new FetchContentStep.
func NewFetchContentStep(fetcher *wiki.Fetcher, logger *slog.Logger) *FetchContentStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &FetchContentStep{fetcher: fetcher, logger: logger}
}

// Name returns the step name for logging.
func (s *FetchContentStep) Name() string {
	return "fetch_content"
}

// Do fetches the content tree. A fetch failure aborts only the content
// path; it is recorded on the report and the image path still runs.
func (s *FetchContentStep) Do(ctx context.Context, report *model.GrabReport) error {
	tree, err := s.fetcher.Fetch(ctx, report.Title)
	if err != nil {
		s.logger.Warn("content fetch failed",
			"title", report.Title,
			"error", err,
		)
		report.ContentError = err.Error()
		return nil
	}
	report.Content = tree
	return nil
}

// RenderContentStep converts the content tree into the plain-text document.
type RenderContentStep struct{}

// NewRenderContentStep creates a new RenderContentStep.
func NewRenderContentStep() *RenderContentStep {
	return &RenderContentStep{}
}

// Name returns the step name for logging.
func (s *RenderContentStep) Name() string {
	return "render_content"
}

// Do renders the tree. With a failed fetch the rendered document is the
// failure placeholder, matching what the saved file should say.
func (s *RenderContentStep) Do(_ context.Context, report *model.GrabReport) error {
	report.PlainText, report.HTML = wiki.Render(report.Content)
	return nil
}

// SaveContentStep writes the text and HTML artifacts to disk.
type SaveContentStep struct {
	textPath string
	htmlPath string
	logger   *slog.Logger
}

// NewSaveContentStep creates a new SaveContentStep. htmlPath may be empty
// to skip the raw HTML artifact.
func NewSaveContentStep(textPath, htmlPath string, logger *slog.Logger) *SaveContentStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SaveContentStep{textPath: textPath, htmlPath: htmlPath, logger: logger}
}

// Name returns the step name for logging.
func (s *SaveContentStep) Name() string {
	return "save_content"
}

// Do writes the artifacts. The text file is written even when it holds
// only the failure placeholder, so the user always gets a document.
func (s *SaveContentStep) Do(_ context.Context, report *model.GrabReport) error {
	if err := writeArtifact(s.textPath, report.PlainText); err != nil {
		return fmt.Errorf("failed to save text content: %w", err)
	}
	report.TextPath = s.textPath

	if s.htmlPath != "" && report.HTML != "" {
		if err := writeArtifact(s.htmlPath, report.HTML); err != nil {
			return fmt.Errorf("failed to save html content: %w", err)
		}
		report.HTMLPath = s.htmlPath
	}
	return nil
}

// writeArtifact writes content, creating parent directories as needed.
func writeArtifact(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, []byte(content), 0600)
}

// LocateImagesStep finds image candidates on the media repository.
type LocateImagesStep struct {
	locator *commons.Locator
	logger  *slog.Logger
}

// NewLocateImagesStep creates a new LocateImagesStep.
func NewLocateImagesStep(locator *commons.Locator, logger *slog.Logger) *LocateImagesStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocateImagesStep{locator: locator, logger: logger}
}

// Name returns the step name for logging.
func (s *LocateImagesStep) Name() string {
	return "locate_images"
}

// Do locates images when the user asked for them. Finding nothing is not
// an error; the report just ends up with zero descriptors.
func (s *LocateImagesStep) Do(ctx context.Context, report *model.GrabReport) error {
	if !report.DownloadImages {
		return nil
	}
	report.Images = s.locator.Locate(ctx, report.Title, report.MaxImages)
	s.logger.Debug("image location finished",
		"title", report.Title,
		"found", len(report.Images),
	)
	return nil
}

// DownloadImagesStep fetches, validates, and writes the located images.
type DownloadImagesStep struct {
	downloader *download.Downloader
	imageDir   string
	logger     *slog.Logger
}

// NewDownloadImagesStep creates a new DownloadImagesStep.
func NewDownloadImagesStep(downloader *download.Downloader, imageDir string, logger *slog.Logger) *DownloadImagesStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &DownloadImagesStep{downloader: downloader, imageDir: imageDir, logger: logger}
}

// Name returns the step name for logging.
func (s *DownloadImagesStep) Name() string {
	return "download_images"
}

// Do downloads every located image. Per-image failures are skipped by
// the downloader and counted as failed downloads on the report.
func (s *DownloadImagesStep) Do(ctx context.Context, report *model.GrabReport) error {
	if !report.DownloadImages || len(report.Images) == 0 {
		return nil
	}
	report.Saved = s.downloader.DownloadAll(ctx, report.Images, s.imageDir, report.MinWidth)
	report.FailedDownloads = len(report.Images) - len(report.Saved)
	return nil
}
