package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	defaultSpaceEndpoint = "https://api.ocr.space/parse/image"
	spaceTimeout         = 30 * time.Second
)

// SpaceClient is a client for the OCR.space parse API.
type SpaceClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewSpaceClient creates an OCR.space recognizer.
func NewSpaceClient(apiKey string) *SpaceClient {
	return &SpaceClient{
		apiKey:   apiKey,
		endpoint: defaultSpaceEndpoint,
		client:   &http.Client{Timeout: spaceTimeout},
	}
}

type spaceResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool `json:"IsErroredOnProcessing"`
	ErrorMessage          any  `json:"ErrorMessage"`
}

// Recognize uploads the image and returns the recognized text of all
// result blocks concatenated in order.
func (c *SpaceClient) Recognize(ctx context.Context, image []byte) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := map[string]string{
		"apikey":            c.apiKey,
		"language":          "eng",
		"isOverlayRequired": "false",
		"detectOrientation": "true",
		"scale":             "true",
		"OCREngine":         "2",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return "", fmt.Errorf("build ocr request: %w", err)
		}
	}

	part, err := w.CreateFormFile("file", "document.jpg")
	if err != nil {
		return "", fmt.Errorf("build ocr request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("build ocr request: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("build ocr request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("build ocr request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ocr service returned status %d: %s", resp.StatusCode, snippet)
	}

	var parsed spaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode ocr response: %w", err)
	}
	if parsed.IsErroredOnProcessing {
		return "", fmt.Errorf("ocr processing error: %v", parsed.ErrorMessage)
	}
	if len(parsed.ParsedResults) == 0 {
		return "", fmt.Errorf("ocr returned no results")
	}

	var sb strings.Builder
	for _, r := range parsed.ParsedResults {
		sb.WriteString(r.ParsedText)
	}
	return sb.String(), nil
}
