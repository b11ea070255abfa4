package parsing

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotgigs/talent/internal/nlp"
)

const sampleResume = `Jane Doe
jane.doe@example.com
555-123-4567
Python, SQL, AWS
Bachelor of Science in Computer Science, 2018
Software Engineer at Acme Inc, 2019-2022`

func newTestParser() *Parser {
	return NewParser(nlp.NewHeuristicRecognizer(), nil, nil)
}

func TestParseSampleResume(t *testing.T) {
	p := newTestParser()

	resume, err := p.Parse(context.Background(), Input{
		Data:     []byte(sampleResume),
		Filename: "jane.txt",
		Provider: "text_extraction",
	})
	require.NoError(t, err)
	require.NotNil(t, resume)

	assert.Equal(t, "Jane Doe", resume.PersonalInfo.FullName)
	assert.Equal(t, "Jane", resume.PersonalInfo.FirstName)
	assert.Equal(t, "Doe", resume.PersonalInfo.LastName)
	assert.Equal(t, "jane.doe@example.com", resume.ContactInfo.Email)
	assert.Equal(t, "555-123-4567", resume.ContactInfo.Phone)

	names := make([]string, 0, len(resume.Skills))
	for _, s := range resume.Skills {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Python")
	assert.Contains(t, names, "Sql")
	assert.Contains(t, names, "Aws")

	require.NotEmpty(t, resume.Education)
	assert.Equal(t, "2018", resume.Education[0].Year)
	assert.Equal(t, "Computer Science", resume.Education[0].FieldOfStudy)

	assert.Contains(t, resume.DomainExpertise, "technology")
	assert.Equal(t, "text_extraction", resume.Metadata.Provider)
}

func TestParseDeterministic(t *testing.T) {
	p := newTestParser()
	in := Input{Data: []byte(sampleResume), Filename: "jane.txt", Provider: "nlp"}

	first, err := p.Parse(context.Background(), in)
	require.NoError(t, err)
	second, err := p.Parse(context.Background(), in)
	require.NoError(t, err)

	// Timestamps differ between runs; every extracted field must not.
	first.Metadata.ParsedAt = second.Metadata.ParsedAt
	assert.Equal(t, first, second)
}

func TestParseFallsBackWhenNLPRefusesShortText(t *testing.T) {
	p := newTestParser()

	// Long enough for plain extraction, too short for NLP.
	resume, err := p.Parse(context.Background(), Input{
		Data:     []byte("John Smith python sql"),
		Filename: "short.txt",
		Provider: "nlp",
	})
	require.NoError(t, err)
	assert.Equal(t, "text_extraction", resume.Metadata.Provider)
}

func TestParseFallsBackFromOCRWithoutRecognizers(t *testing.T) {
	p := NewParser(nil, nil, nil)

	resume, err := p.Parse(context.Background(), Input{
		Data:     []byte(sampleResume),
		Filename: "jane.txt",
		Provider: "ocr_space",
	})
	require.NoError(t, err)
	assert.Equal(t, "text_extraction", resume.Metadata.Provider)
}

func TestParseValidation(t *testing.T) {
	p := newTestParser()
	ctx := context.Background()

	tests := []struct {
		name  string
		input Input
	}{
		{"empty file", Input{Data: nil, Filename: "a.txt"}},
		{"oversized file", Input{Data: make([]byte, MaxFileSize+1), Filename: "a.txt"}},
		{"unsupported extension", Input{Data: []byte(sampleResume), Filename: "a.exe"}},
		{"no extension", Input{Data: []byte(sampleResume), Filename: "resume"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(ctx, tt.input)
			assert.Error(t, err)
		})
	}
}

func TestParseOutputContractAlwaysPopulated(t *testing.T) {
	p := newTestParser()

	resume, err := p.Parse(context.Background(), Input{
		Data:     []byte("no structure here at all, just a plain sentence"),
		Filename: "plain.txt",
		Provider: "text_extraction",
	})
	require.NoError(t, err)

	assert.NotNil(t, resume.Skills)
	assert.NotNil(t, resume.Education)
	assert.NotNil(t, resume.WorkExperience)
	assert.NotNil(t, resume.DomainExpertise)
	assert.False(t, resume.Metadata.ParsedAt.IsZero())
	assert.GreaterOrEqual(t, resume.Metadata.ConfidenceScore, 0.0)
	assert.LessOrEqual(t, resume.Metadata.ConfidenceScore, 1.0)
	assert.GreaterOrEqual(t, resume.Metadata.CompletenessScore, 0.0)
	assert.LessOrEqual(t, resume.Metadata.CompletenessScore, 1.0)
}

func TestProviderFromString(t *testing.T) {
	assert.Equal(t, ProviderNLP, ProviderFromString(""))
	assert.Equal(t, ProviderNLP, ProviderFromString("nlp"))
	assert.Equal(t, ProviderNLP, ProviderFromString("spacy_nlp"))
	assert.Equal(t, ProviderCloudOCR, ProviderFromString("ocr_space"))
	assert.Equal(t, ProviderLocalOCR, ProviderFromString("local_ocr"))
	assert.Equal(t, ProviderTextExtraction, ProviderFromString("text_extraction"))
	assert.Equal(t, ProviderTextExtraction, ProviderFromString("no-such-provider"))
}

func TestChainFromWalksFixedOrder(t *testing.T) {
	chain := chainFrom(ProviderNLP)
	require.Len(t, chain, 4)
	assert.Equal(t, ProviderNLP, chain[0])
	assert.Equal(t, ProviderTextExtraction, chain[3])

	assert.Equal(t, []ProviderKind{ProviderTextExtraction}, chainFrom(ProviderTextExtraction))
	assert.Equal(t, []ProviderKind{ProviderLocalOCR, ProviderTextExtraction}, chainFrom(ProviderLocalOCR))
}

func TestSummaryTruncated(t *testing.T) {
	long := "Summary\n" + strings.Repeat("experienced engineer ", 60) + "\nSkills"
	got := extractSummary(long)
	assert.LessOrEqual(t, len(got), maxSummaryLength)
	assert.NotEmpty(t, got)
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	// 3-byte runes never align with the 500-byte bound, so a byte
	// slice would split one.
	s := strings.Repeat("日", 200)
	got := truncate(s, maxSummaryLength)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxSummaryLength)
	assert.NotEmpty(t, got)

	ascii := strings.Repeat("a", 600)
	assert.Len(t, truncate(ascii, maxSummaryLength), maxSummaryLength)
}
