package processor

import (
	"errors"

	exif "github.com/dsoprea/go-exif/v3"
)

type exifSummary struct {
	TagCount    int
	Orientation int
}

func inspectExif(raw []byte) (exifSummary, error) {
	summary := exifSummary{}

	rawExif, err := exif.SearchAndExtractExif(raw)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return summary, nil
		}
		return summary, err
	}

	tags, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return summary, err
	}

	summary.TagCount = len(tags)
	for _, tag := range tags {
		if tag.TagName != "Orientation" {
			continue
		}
		if values, ok := tag.Value.([]uint16); ok && len(values) > 0 {
			summary.Orientation = int(values[0])
		}
	}

	return summary, nil
}
