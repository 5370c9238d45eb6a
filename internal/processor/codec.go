package processor

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/vincent-petithory/dataurl"
	_ "golang.org/x/image/webp"
)

const outputMediaType = "image/jpeg"

func decodePayload(payload string) ([]byte, error) {
	du, err := dataurl.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data url: %w", err)
	}
	if len(du.Data) == 0 {
		return nil, fmt.Errorf("decode data url: empty payload")
	}
	return du.Data, nil
}

func encodePayload(data []byte, mediaType string) string {
	return dataurl.New(data, mediaType).String()
}

// readDimensions parses only the image header.
func readDimensions(raw []byte) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("read image header: %w", err)
	}
	return cfg, format, nil
}

func decodeImage(raw []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// toRGB flattens img to opaque 8-bit RGB. Alpha is discarded rather than
// composited and palette or gray pixels are expanded, so the step is lossy.
func toRGB(img image.Image) image.Image {
	if isRGB(img) {
		return img
	}
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

func isRGB(img image.Image) bool {
	switch m := img.(type) {
	case *image.YCbCr:
		return true
	case *image.RGBA:
		return m.Opaque()
	case *image.NRGBA:
		return m.Opaque()
	default:
		return false
	}
}

// decodePixels is replaced in tests to simulate decoder faults.
var decodePixels = decodeImage

// recoverPage turns a panic while handling one page into that page's error.
func recoverPage(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("unexpected failure: %v", r)
	}
}
