package model

import "time"

// GrabReport accumulates everything collected while grabbing one article.
// Pipeline steps receive it in sequence and fill in their part; the manifest
// writer consumes the finished report.
//
// Design decision: We use a single struct rather than separate results for
// the content and image paths because the two paths share the resolved title
// and the manifest reports on both together.
type GrabReport struct {
	// SourceURL is the Wikipedia URL the user supplied.
	SourceURL string `json:"source_url"`

	// Title is the resolved article title.
	Title string `json:"title"`

	// DateGrabbed is when the grab started.
	DateGrabbed time.Time `json:"date_grabbed"`

	// Content is the raw content tree. Transient; consumed by the renderer.
	Content *ContentTree `json:"-"`

	// PlainText is the rendered plain-text document.
	PlainText string `json:"-"`

	// HTML is the raw article markup, kept as the secondary output.
	HTML string `json:"-"`

	// TextPath and HTMLPath are the written content artifacts.
	TextPath string `json:"text_path,omitempty"`
	HTMLPath string `json:"html_path,omitempty"`

	// ContentError records why the content path was aborted. The image
	// path still runs when this is set.
	ContentError string `json:"content_error,omitempty"`

	// DownloadImages indicates the user asked for the image path.
	DownloadImages bool `json:"download_images"`

	// MaxImages caps how many images are located and downloaded.
	MaxImages int `json:"max_images"`

	// MinWidth is the minimum rendition width requested for upgrades.
	MinWidth int `json:"min_width"`

	// Images are the located descriptors, in tier order then page order.
	Images []ImageDescriptor `json:"images,omitempty"`

	// Saved are the images that were fetched, validated, and written.
	Saved []SavedImage `json:"saved,omitempty"`

	// FailedDownloads counts descriptors that were located but dropped.
	FailedDownloads int `json:"failed_downloads,omitempty"`

	// ErrorMessage is the last step error recorded by the pipeline.
	ErrorMessage string `json:"error,omitempty"`

	// PerformedSteps lists pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`
}

// NewGrabReport creates a report for the given source URL with the grab
// start time set to now.
func NewGrabReport(sourceURL string) *GrabReport {
	return &GrabReport{
		SourceURL:   sourceURL,
		DateGrabbed: time.Now(),
	}
}

// ContentOK reports whether the content path completed far enough to have
// a rendered document.
func (r *GrabReport) ContentOK() bool {
	return r.ContentError == "" && r.PlainText != ""
}
