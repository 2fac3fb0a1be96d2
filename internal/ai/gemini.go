package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.5-flash"

// geminiBackend talks to Google Gemini through the official SDK rather than a
// hand-built HTTP client. The SDK owns the wire contract; this adapter only
// maps the request spec onto it and flattens the candidate parts back to text.
type geminiBackend struct {
	apiKey string
}

func (b *geminiBackend) generate(ctx context.Context, spec requestSpec) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(b.apiKey))
	if err != nil {
		return "", &BackendError{Provider: ProviderGemini, Message: "failed to create client", Cause: err}
	}
	defer client.Close()

	model := client.GenerativeModel(geminiModel)
	model.SetTemperature(0.1) // Low temperature for consistent output
	if spec.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(spec.SystemPrompt)}}
	}
	if spec.Format == FormatJSON {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(spec.Prompt))
	if err != nil {
		return "", &BackendError{Provider: ProviderGemini, Message: "generation failed", Cause: err}
	}

	return extractGeminiText(resp)
}

// extractGeminiText extracts text from a Gemini API response.
func extractGeminiText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &BackendError{Provider: ProviderGemini, Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &BackendError{Provider: ProviderGemini, Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &BackendError{Provider: ProviderGemini, Message: fmt.Sprintf("no text parts among %d parts", len(candidate.Content.Parts))}
	}

	return strings.Join(parts, ""), nil
}
