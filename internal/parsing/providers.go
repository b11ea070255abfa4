package parsing

import (
	"context"
	"strings"

	"github.com/hotgigs/talent/internal/ocr"
	"github.com/hotgigs/talent/internal/textract"
)

// ProviderKind is a closed set of extraction strategies. The fallback
// chain is an ordered walk through this set, not runtime string
// dispatch, so the fallback order is fixed at compile time.
type ProviderKind int

const (
	ProviderNLP ProviderKind = iota
	ProviderCloudOCR
	ProviderLocalOCR
	ProviderTextExtraction
)

// fallbackOrder is the fixed provider chain. A parse pinned to a
// provider starts at that provider's position and walks the rest.
var fallbackOrder = []ProviderKind{
	ProviderNLP,
	ProviderCloudOCR,
	ProviderLocalOCR,
	ProviderTextExtraction,
}

func (k ProviderKind) String() string {
	switch k {
	case ProviderNLP:
		return "nlp"
	case ProviderCloudOCR:
		return "ocr_space"
	case ProviderLocalOCR:
		return "local_ocr"
	default:
		return "text_extraction"
	}
}

// ProviderFromString resolves a caller-supplied provider name. The
// empty string selects the default-quality NLP provider; unrecognized
// names map to the dependency-light text extractor.
func ProviderFromString(name string) ProviderKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "nlp", "spacy_nlp":
		return ProviderNLP
	case "ocr_space":
		return ProviderCloudOCR
	case "local_ocr":
		return ProviderLocalOCR
	default:
		return ProviderTextExtraction
	}
}

// chainFrom returns the fallback chain starting at the given provider.
func chainFrom(start ProviderKind) []ProviderKind {
	for i, k := range fallbackOrder {
		if k == start {
			return fallbackOrder[i:]
		}
	}
	return fallbackOrder[len(fallbackOrder)-1:]
}

// NLP field extraction refuses to run on less text than this; shorter
// inputs fall through to the next provider.
const minNLPTextLength = 50

func isImageExt(ext string) bool {
	switch ext {
	case "png", "jpg", "jpeg", "gif":
		return true
	}
	return false
}

// extractText runs one provider's text-extraction strategy.
func (p *Parser) extractText(ctx context.Context, kind ProviderKind, data []byte, ext string) (string, error) {
	switch kind {
	case ProviderNLP:
		text, err := extractDocumentText(data, ext)
		if err != nil {
			return "", err
		}
		if len(strings.TrimSpace(text)) < minNLPTextLength {
			return "", textract.ErrInsufficientText().
				WithDetail("provider", kind.String()).
				WithDetail("min_length", minNLPTextLength)
		}
		return text, nil

	case ProviderCloudOCR:
		return p.extractViaOCR(ctx, p.cloudOCR, data, ext)

	case ProviderLocalOCR:
		return p.extractViaOCR(ctx, p.localOCR, data, ext)

	default:
		return extractDocumentText(data, ext)
	}
}

// extractDocumentText dispatches on the file format for the non-OCR
// providers. Image formats need a recognizer and are rejected here.
func extractDocumentText(data []byte, ext string) (string, error) {
	switch ext {
	case "pdf":
		return textract.FromPDF(data)
	case "doc", "docx":
		return textract.FromDOCX(data)
	case "txt", "rtf":
		return textract.FromPlainText(data)
	default:
		return "", textract.ErrExtractionFailed().
			WithDetail("format", ext).
			WithDetail("reason", "format requires OCR")
	}
}

// extractViaOCR recognizes text in image documents, rendering PDF
// pages to images first. Non-image formats fall through to the next
// provider in the chain.
func (p *Parser) extractViaOCR(ctx context.Context, rec ocr.Recognizer, data []byte, ext string) (string, error) {
	if rec == nil {
		return "", textract.ErrExtractionFailed().
			WithDetail("reason", "no OCR recognizer configured")
	}

	switch {
	case isImageExt(ext):
		return textract.FromImage(ctx, data, rec)

	case ext == "pdf":
		pages, err := textract.RenderPDFPages(data)
		if err != nil {
			return "", err
		}
		var sb strings.Builder
		for _, page := range pages {
			text, err := rec.Recognize(ctx, page)
			if err != nil {
				return "", textract.ErrRegistry.NewWithCause(textract.CodeExtractionFailed, err).
					WithDetail("format", "pdf")
			}
			sb.WriteString(text)
			sb.WriteString("\n")
		}
		out := sb.String()
		if !textract.Viable(out) {
			return "", textract.ErrInsufficientText().WithDetail("format", "pdf")
		}
		return out, nil

	default:
		return "", textract.ErrExtractionFailed().
			WithDetail("format", ext).
			WithDetail("reason", "OCR providers handle image and pdf input only")
	}
}
