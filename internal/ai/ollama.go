package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const defaultOllamaModel = "llama3"

// ollamaBackend talks to a self-hosted Ollama server. The credential is the
// endpoint URL itself; success is signalled by HTTP status.
type ollamaBackend struct {
	baseURL string
	client  *http.Client
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Format string `json:"format,omitempty"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

func ollamaModel() string {
	if m := os.Getenv("OLLAMA_MODEL"); m != "" {
		return m
	}
	return defaultOllamaModel
}

func (b *ollamaBackend) generate(ctx context.Context, spec requestSpec) (string, error) {
	reqBody := ollamaRequest{
		Model:  ollamaModel(),
		Prompt: spec.Prompt,
		System: spec.SystemPrompt,
		Stream: false,
	}
	if spec.Format == FormatJSON {
		reqBody.Format = "json"
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(b.baseURL, "/") + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", &BackendError{Provider: ProviderOllama, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &BackendError{Provider: ProviderOllama, StatusCode: resp.StatusCode, Message: "failed to read response", Cause: err}
	}

	var parsed ollamaResponse
	if unmarshalErr := json.Unmarshal(body, &parsed); unmarshalErr != nil && resp.StatusCode == http.StatusOK {
		return "", &BackendError{Provider: ProviderOllama, StatusCode: resp.StatusCode, Payload: string(body), Message: "invalid response body", Cause: unmarshalErr}
	}

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("unexpected status %d", resp.StatusCode)
		if parsed.Error != "" {
			msg = parsed.Error
		}
		return "", &BackendError{Provider: ProviderOllama, StatusCode: resp.StatusCode, Payload: string(body), Message: msg}
	}

	return parsed.Response, nil
}
