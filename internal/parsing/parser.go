package parsing

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hotgigs/talent/internal/nlp"
	"github.com/hotgigs/talent/internal/ocr"
	"github.com/hotgigs/talent/pkg/logx"
)

// MaxFileSize is the upload ceiling for resume documents.
const MaxFileSize = 10 * 1024 * 1024

var allowedExtensions = map[string]bool{
	"pdf": true, "doc": true, "docx": true, "txt": true, "rtf": true,
	"png": true, "jpg": true, "jpeg": true, "gif": true,
}

// Input is one parse request.
type Input struct {
	Data     []byte
	Filename string
	// Provider optionally pins the starting provider by name;
	// empty selects the NLP provider.
	Provider string
}

// Parser is the public entry point of the parsing pipeline. It
// validates input, walks the provider fallback chain and normalizes
// the output contract. Errors never escape as panics.
type Parser struct {
	ner      nlp.EntityRecognizer
	cloudOCR ocr.Recognizer
	localOCR ocr.Recognizer
}

// NewParser creates a parser. Either recognizer may be nil, in which
// case the corresponding OCR provider fails fast and the chain moves
// on.
func NewParser(ner nlp.EntityRecognizer, cloudOCR, localOCR ocr.Recognizer) *Parser {
	return &Parser{
		ner:      ner,
		cloudOCR: cloudOCR,
		localOCR: localOCR,
	}
}

// Parse converts a resume document into a structured profile. The
// selected provider is always subject to the fallback chain; only
// exhaustion of the chain yields an error.
func (p *Parser) Parse(ctx context.Context, in Input) (resume *ParsedResume, err error) {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("resume parse panicked: %v", r)
			resume = nil
			err = ErrRegistry.NewWithCause(CodeAllProvidersFailed, fmt.Errorf("parser panic: %v", r))
		}
	}()

	if err := validateInput(in); err != nil {
		return nil, err
	}

	ext := normalizedExtension(in.Filename)
	start := ProviderFromString(in.Provider)

	var lastErr error
	for _, kind := range chainFrom(start) {
		text, extractErr := p.extractText(ctx, kind, in.Data, ext)
		if extractErr != nil {
			logx.Debugf("provider %s failed on %s: %v", kind, in.Filename, extractErr)
			lastErr = extractErr
			continue
		}
		return p.extractFields(text, kind), nil
	}

	return nil, ErrRegistry.NewWithCause(CodeAllProvidersFailed, lastErr).
		WithDetail("filename", in.Filename).
		WithDetail("requested_provider", start.String())
}

// extractFields runs the field extractors over extracted text and
// attaches scoring metadata. Extraction is deterministic for a given
// text and provider.
func (p *Parser) extractFields(text string, kind ProviderKind) *ParsedResume {
	resume := NewParsedResume()

	var ner nlp.EntityRecognizer
	if kind == ProviderNLP {
		ner = p.ner
	}

	resume.PersonalInfo = extractPersonalInfo(text, ner)
	resume.ContactInfo = extractContactInfo(text)
	resume.Summary = extractSummary(text)
	resume.Education = extractEducation(text)
	resume.WorkExperience = extractExperience(text)

	if kind == ProviderNLP {
		resume.Skills = extractSkills(text, 50)
		resume.DomainExpertise = extractDomains(text, strictDomainKeywords, strictDomainOrder, 2, 0)
		resume.Metadata.ConfidenceScore = computeConfidence(resume)
	} else {
		resume.Skills = extractSkills(text, 20)
		resume.DomainExpertise = extractDomains(text, looseDomainKeywords, looseDomainOrder, 1, 3)
		// The lightweight path has no NER corroboration, so it
		// reports a flat mid confidence.
		resume.Metadata.ConfidenceScore = 0.6
	}

	resume.Metadata.Provider = kind.String()
	resume.Metadata.CompletenessScore = computeCompleteness(resume)
	resume.Metadata.ParsedAt = time.Now().UTC()
	resume.Metadata.TextLength = len(text)
	return resume
}

func validateInput(in Input) error {
	if len(in.Data) == 0 {
		return ErrEmptyFile()
	}
	if len(in.Data) > MaxFileSize {
		return ErrFileTooLarge().
			WithDetail("size", len(in.Data)).
			WithDetail("max_size", MaxFileSize)
	}
	ext := normalizedExtension(in.Filename)
	if !allowedExtensions[ext] {
		return ErrUnsupportedExtension().WithDetail("extension", ext)
	}
	return nil
}

func normalizedExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}
