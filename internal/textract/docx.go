package textract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// FromDOCX extracts paragraph text from a DOCX archive in document
// order. DOCX is a zip containing word/document.xml; text lives in
// w:t runs, paragraphs end at w:p close tags.
func FromDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", ErrRegistry.NewWithCause(CodeExtractionFailed, err).
			WithDetail("format", "docx")
	}

	var docXML io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return "", ErrRegistry.NewWithCause(CodeExtractionFailed, err).
					WithDetail("format", "docx")
			}
			break
		}
	}
	if docXML == nil {
		return "", ErrExtractionFailed().
			WithDetail("format", "docx").
			WithDetail("reason", "missing word/document.xml")
	}
	defer docXML.Close()

	var sb strings.Builder
	dec := xml.NewDecoder(docXML)
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", ErrRegistry.NewWithCause(CodeExtractionFailed, err).
				WithDetail("format", "docx")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteString("\t")
			case "br":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	out := sb.String()
	if !Viable(out) {
		return "", ErrInsufficientText().WithDetail("format", "docx")
	}
	return out, nil
}
