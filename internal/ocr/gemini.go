package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider transcribes document photos with Google Gemini vision.
// Gemini reads the original color image better than a grayscale preprocessed
// one, so callers should pass the unprocessed bytes.
type GeminiProvider struct {
	apiKey string
	model  string
}

// NewGeminiProvider creates a Gemini transcription provider
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiProvider{
		apiKey: apiKey,
		model:  model,
	}
}

func (p *GeminiProvider) Name() string {
	return "gemini/" + p.model
}

// RecognizeText sends the image with the transcription prompt and returns the
// raw text response.
func (p *GeminiProvider) RecognizeText(ctx context.Context, imageData []byte) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("gemini API key not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.model)
	// Deterministic-as-possible transcription
	model.SetTemperature(0)

	resp, err := model.GenerateContent(ctx,
		genai.ImageData("jpeg", imageData),
		genai.Text(transcriptionPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("gemini transcription failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("gemini returned empty transcription")
	}
	return text, nil
}
