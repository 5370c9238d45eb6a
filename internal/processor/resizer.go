package processor

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"pagefit/pkg/imgutil"
)

// ResizeUniform rescales every page to targetWidth, keeping its aspect ratio
// and applying the quality multiplier to the height. Pages that fail are
// logged and left out; the order of the remaining pages is preserved.
func (p *Processor) ResizeUniform(images []string, targetWidth int) []ResizedPage {
	quality := p.opts.Quality
	p.log.Logf("Resizing to width: %dpx (quality: %gx)", targetWidth, quality)

	total := len(images)
	pages := make([]ResizedPage, 0, total)
	failed := 0
	for i, payload := range images {
		page, err := p.resizePage(i, payload, targetWidth)
		if err != nil {
			failed++
			p.log.Logf("Error processing page %d: %v", i+1, err)
		} else {
			pages = append(pages, page)
			if (i+1)%resizeLogEvery == 0 {
				p.log.Logf("Processed %d/%d pages", i+1, total)
			}
		}
		p.report(StageResize, i+1, total, failed)
	}

	p.log.Logf("Resize complete: %d pages", len(pages))
	return pages
}

func (p *Processor) resizePage(index int, payload string, targetWidth int) (page ResizedPage, err error) {
	defer recoverPage(&err)

	raw, err := decodePayload(payload)
	if err != nil {
		return ResizedPage{}, err
	}
	p.noteMetadata(index, raw)

	img, err := decodePixels(raw)
	if err != nil {
		return ResizedPage{}, err
	}
	img = toRGB(img)

	bounds := img.Bounds()
	origWidth, origHeight := bounds.Dx(), bounds.Dy()

	out, err := scalePage(img, origWidth, origHeight, targetWidth, p.opts.Quality)
	if err != nil {
		return ResizedPage{}, err
	}

	encoded, err := encodeJPEG(out, p.opts.JPEGQuality)
	if err != nil {
		return ResizedPage{}, err
	}

	return ResizedPage{
		Index:        index,
		Data:         encodePayload(encoded, outputMediaType),
		Width:        targetWidth,
		Height:       out.Bounds().Dy(),
		OriginalSize: [2]int{origWidth, origHeight},
		Resized:      origWidth != targetWidth,
	}, nil
}

// scalePage returns img unchanged only when the width already matches and
// quality is exactly 1.
func scalePage(img image.Image, origWidth, origHeight, targetWidth int, quality float64) (image.Image, error) {
	var height int
	if origWidth != targetWidth {
		scale := float64(targetWidth) / float64(origWidth)
		height = int(math.Floor(float64(origHeight) * scale * quality))
	} else {
		if quality == 1.0 {
			return img, nil
		}
		height = int(math.Floor(float64(origHeight) * quality))
	}

	if targetWidth < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyHeight, targetWidth, height)
	}
	return imaging.Resize(img, targetWidth, height, imaging.Lanczos), nil
}

func (p *Processor) noteMetadata(index int, raw []byte) {
	kind, err := imgutil.DetectHeader(raw[:min(len(raw), imgutil.HeaderSize)])
	if err != nil || !kind.HasExif() {
		return
	}

	summary, err := inspectExif(raw)
	if err != nil || summary.TagCount == 0 {
		return
	}
	p.log.Logf("Page %d: dropping %d EXIF tags on re-encode", index+1, summary.TagCount)
	if summary.Orientation > 1 {
		p.log.Logf("Page %d: EXIF orientation %d ignored", index+1, summary.Orientation)
	}
}
