package download

import (
	exif "github.com/dsoprea/go-exif/v3"

	"github.com/nao1215/wikigrab/internal/model"
)

// ExtractMetadata pulls basic camera information from image bytes for the
// run manifest. Images without an EXIF segment, or with one that cannot be
// parsed, yield a zero ImageMetadata; this is never an error.
func ExtractMetadata(data []byte) model.ImageMetadata {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return model.ImageMetadata{}
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return model.ImageMetadata{}
	}

	var meta model.ImageMetadata
	for _, entry := range entries {
		switch entry.TagName {
		case "Make":
			meta.CameraMake = entry.Formatted
		case "Model":
			meta.CameraModel = entry.Formatted
		case "Software":
			meta.Software = entry.Formatted
		case "DateTimeOriginal":
			meta.DateTime = entry.Formatted
		case "DateTime":
			// DateTimeOriginal wins when both are present.
			if meta.DateTime == "" {
				meta.DateTime = entry.Formatted
			}
		}
	}
	return meta
}
