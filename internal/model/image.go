package model

import "strings"

// ImageDescriptor identifies a discoverable Commons media asset before
// download. It carries addresses only, never bytes.
//
// Invariant: Filename is the percent-decoded final path segment of the
// detail page address. It is NOT filesystem-safe; sanitization happens
// at download time and never earlier.
type ImageDescriptor struct {
	// Filename is the decoded media file name (e.g. "File:Example.jpg").
	Filename string `json:"filename"`

	// ThumbnailURL is the address of the thumbnail rendition found on the
	// listing page, normalized to an absolute https URL.
	ThumbnailURL string `json:"thumbnail_url"`

	// FilePageURL is the address of the media detail page, normalized to
	// an absolute URL on the Commons origin.
	FilePageURL string `json:"file_page_url"`
}

// SavedImage records one successfully downloaded and validated image.
type SavedImage struct {
	// Path is where the image bytes were written.
	Path string `json:"path"`

	// Filename is the sanitized file name used on disk.
	Filename string `json:"filename"`

	// SourceURL is the address the bytes were fetched from (the upgraded
	// rendition when one was found, otherwise the original thumbnail).
	SourceURL string `json:"source_url"`

	// Width and Height are the decoded pixel dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the decoded image format name (jpeg, png, gif).
	Format string `json:"format"`

	// Metadata holds EXIF camera information when present.
	Metadata ImageMetadata `json:"metadata,omitzero"`
}

// ImageMetadata holds the subset of EXIF tags surfaced in the run manifest.
// All fields are empty when the image carries no EXIF segment.
type ImageMetadata struct {
	// CameraMake is the EXIF Make tag.
	CameraMake string `json:"camera_make,omitempty"`

	// CameraModel is the EXIF Model tag.
	CameraModel string `json:"camera_model,omitempty"`

	// Software is the EXIF Software tag.
	Software string `json:"software,omitempty"`

	// DateTime is the EXIF DateTimeOriginal tag (DateTime as fallback).
	DateTime string `json:"date_time,omitempty"`
}

// IsZero reports whether no EXIF information was found.
func (m ImageMetadata) IsZero() bool {
	return m == ImageMetadata{}
}

// Camera returns a single "Make Model" string for display, or empty when
// neither tag is present.
func (m ImageMetadata) Camera() string {
	return strings.TrimSpace(m.CameraMake + " " + m.CameraModel)
}
