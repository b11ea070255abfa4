package textract

import "strings"

// FromPlainText decodes bytes as UTF-8 leniently, replacing
// undecodable sequences, and strips NUL bytes that some exporters
// leave behind.
func FromPlainText(data []byte) (string, error) {
	text := strings.ToValidUTF8(string(data), "�")
	text = strings.ReplaceAll(text, "\x00", "")
	if !Viable(text) {
		return "", ErrInsufficientText().WithDetail("format", "text")
	}
	return text, nil
}
