// Package textract reduces supported resume document formats to plain
// UTF-8 text. Extractor failures are recoverable by design: callers
// fall back to another extraction strategy instead of aborting.
package textract

import (
	"net/http"
	"unicode"

	"github.com/hotgigs/talent/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("TEXTRACT")

var (
	CodeExtractionFailed  = ErrRegistry.Register("EXTRACTION_FAILED", errx.TypeInternal, http.StatusUnprocessableEntity, "Failed to extract text from document")
	CodeInsufficientText  = ErrRegistry.Register("INSUFFICIENT_TEXT", errx.TypeBusiness, http.StatusUnprocessableEntity, "Document yielded too little text to parse")
	CodeUnsupportedFormat = ErrRegistry.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Unsupported document format")
)

func ErrExtractionFailed() *errx.Error {
	return ErrRegistry.New(CodeExtractionFailed)
}

func ErrInsufficientText() *errx.Error {
	return ErrRegistry.New(CodeInsufficientText)
}

func ErrUnsupportedFormat() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFormat)
}

// MinViableLength is the minimum count of non-whitespace characters an
// extraction must produce to be considered successful.
const MinViableLength = 10

// Viable reports whether extracted text clears the minimum length bar.
func Viable(text string) bool {
	count := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			count++
			if count >= MinViableLength {
				return true
			}
		}
	}
	return false
}
