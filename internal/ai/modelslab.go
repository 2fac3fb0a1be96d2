package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	defaultModelsLabBaseURL = "https://api.modelslab.com/v1"
	modelsLabModel          = "modelslab-latest"
	modelsLabMaxTokens      = 2000
)

// modelsLabBackend talks to the ModelsLab completion API. ModelsLab embeds a
// status marker in the body and can report failure inside an HTTP 200, so the
// marker is the source of truth, never the HTTP status alone.
type modelsLabBackend struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type modelsLabRequest struct {
	Model          string                `json:"model"`
	Prompt         string                `json:"prompt"`
	System         string                `json:"system,omitempty"`
	ResponseFormat *openAIResponseFormat `json:"response_format,omitempty"`
	MaxTokens      int                   `json:"max_tokens"`
}

type modelsLabResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

func (b *modelsLabBackend) generate(ctx context.Context, spec requestSpec) (string, error) {
	reqBody := modelsLabRequest{
		Model:     modelsLabModel,
		Prompt:    spec.Prompt,
		System:    spec.SystemPrompt,
		MaxTokens: modelsLabMaxTokens,
	}
	if spec.Format == FormatJSON {
		reqBody.ResponseFormat = &openAIResponseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", &BackendError{Provider: ProviderModelsLab, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &BackendError{Provider: ProviderModelsLab, StatusCode: resp.StatusCode, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &BackendError{Provider: ProviderModelsLab, StatusCode: resp.StatusCode, Payload: string(body), Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var parsed modelsLabResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &BackendError{Provider: ProviderModelsLab, StatusCode: resp.StatusCode, Payload: string(body), Message: "invalid response body", Cause: err}
	}

	// The envelope can report an error with a 200 status.
	if parsed.Status != "success" {
		return "", &BackendError{Provider: ProviderModelsLab, StatusCode: resp.StatusCode, Payload: string(body), Message: fmt.Sprintf("backend reported status %q: %s", parsed.Status, parsed.Message)}
	}

	if len(parsed.Choices) > 0 && parsed.Choices[0].Text != "" {
		return parsed.Choices[0].Text, nil
	}
	if parsed.Message != "" {
		return parsed.Message, nil
	}
	return "", &BackendError{Provider: ProviderModelsLab, StatusCode: resp.StatusCode, Payload: string(body), Message: "empty completion in response"}
}
