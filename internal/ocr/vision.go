package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

// VisionRecognizer performs OCR with an OpenAI vision model. It runs
// in-process against our own API key, so it serves as the fallback
// when the dedicated OCR service is unavailable.
type VisionRecognizer struct {
	client *openai.Client
}

// NewVisionRecognizer creates a vision-model recognizer.
func NewVisionRecognizer(apiKey string) *VisionRecognizer {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &VisionRecognizer{client: &client}
}

// Recognize transcribes all visible text from the image verbatim.
func (v *VisionRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	base64Image := base64.StdEncoding.EncodeToString(image)
	dataURL := fmt.Sprintf("data:image/jpeg;base64,%s", base64Image)

	systemPrompt := `You are an OCR engine. Transcribe ALL visible text from the image verbatim, preserving line breaks. Return ONLY the transcribed text, no commentary.`

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
						{
							OfText: &openai.ChatCompletionContentPartTextParam{
								Type: constant.Text("text"),
								Text: "Transcribe the text in this document image.",
							},
						},
						{
							OfImageURL: &openai.ChatCompletionContentPartImageParam{
								Type: constant.ImageURL("image_url"),
								ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
									URL:    dataURL,
									Detail: "high", // High detail for better OCR
								},
							},
						},
					},
				},
			},
		},
	}

	completion, err := v.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:    messages,
		Model:       "gpt-4o",
		Temperature: openai.Float(0.1), // Low temperature for consistency
		MaxTokens:   openai.Int(4000),
	})
	if err != nil {
		return "", fmt.Errorf("openai vision api error: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no response from openai")
	}

	return completion.Choices[0].Message.Content, nil
}
