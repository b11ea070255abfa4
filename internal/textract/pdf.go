package textract

import (
	"bytes"
	"image/jpeg"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// FromPDF extracts the text of every page in order.
func FromPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", ErrRegistry.NewWithCause(CodeExtractionFailed, err).
			WithDetail("format", "pdf")
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", ErrRegistry.NewWithCause(CodeExtractionFailed, err).
				WithDetail("format", "pdf").
				WithDetail("page", i)
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}

	out := sb.String()
	if !Viable(out) {
		return "", ErrInsufficientText().WithDetail("format", "pdf")
	}
	return out, nil
}

// RenderPDFPages renders each page to a JPEG, for OCR of scanned PDFs
// whose text layer is empty.
func RenderPDFPages(data []byte) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, ErrRegistry.NewWithCause(CodeExtractionFailed, err).
			WithDetail("format", "pdf")
	}
	defer doc.Close()

	pages := make([][]byte, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.Image(i)
		if err != nil {
			return nil, ErrRegistry.NewWithCause(CodeExtractionFailed, err).
				WithDetail("format", "pdf").
				WithDetail("page", i)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
			return nil, ErrRegistry.NewWithCause(CodeExtractionFailed, err).
				WithDetail("format", "pdf").
				WithDetail("page", i)
		}
		pages = append(pages, buf.Bytes())
	}
	return pages, nil
}
