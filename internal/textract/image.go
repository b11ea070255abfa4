package textract

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/hotgigs/talent/internal/ocr"
)

// DetectImageFormat reports the encoded image format of data, or an
// error when data is not a decodable image.
func DetectImageFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return format, nil
}

// ConvertImageToJPEG re-encodes any supported image format as JPEG,
// the input format OCR backends accept universally.
func ConvertImageToJPEG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrRegistry.NewWithCause(CodeExtractionFailed, err).
			WithDetail("format", "image")
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, ErrRegistry.NewWithCause(CodeExtractionFailed, err).
			WithDetail("format", "image")
	}
	return buf.Bytes(), nil
}

// FromImage runs OCR over an image document using the given
// recognizer, normalizing the image to JPEG first.
func FromImage(ctx context.Context, data []byte, rec ocr.Recognizer) (string, error) {
	if rec == nil {
		return "", ErrExtractionFailed().
			WithDetail("format", "image").
			WithDetail("reason", "no OCR recognizer configured")
	}

	jpg, err := ConvertImageToJPEG(data)
	if err != nil {
		return "", err
	}

	text, err := rec.Recognize(ctx, jpg)
	if err != nil {
		return "", ErrRegistry.NewWithCause(CodeExtractionFailed, err).
			WithDetail("format", "image")
	}
	if !Viable(text) {
		return "", ErrInsufficientText().WithDetail("format", "image")
	}
	return text, nil
}
