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
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	openAIModel          = "gpt-4o"
)

// openAIBackend talks to the OpenAI chat completions API. Success is
// signalled by HTTP status; the text lives in the first choice's message.
type openAIBackend struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type openAIRequest struct {
	Model          string                `json:"model"`
	Messages       []openAIMessage       `json:"messages"`
	ResponseFormat *openAIResponseFormat `json:"response_format,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponseFormat struct {
	Type string `json:"type"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (b *openAIBackend) generate(ctx context.Context, spec requestSpec) (string, error) {
	reqBody := openAIRequest{
		Model: openAIModel,
	}
	if spec.SystemPrompt != "" {
		reqBody.Messages = append(reqBody.Messages, openAIMessage{Role: "system", Content: spec.SystemPrompt})
	}
	reqBody.Messages = append(reqBody.Messages, openAIMessage{Role: "user", Content: spec.Prompt})
	if spec.Format == FormatJSON {
		reqBody.ResponseFormat = &openAIResponseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", &BackendError{Provider: ProviderOpenAI, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &BackendError{Provider: ProviderOpenAI, StatusCode: resp.StatusCode, Message: "failed to read response", Cause: err}
	}

	var parsed openAIResponse
	if unmarshalErr := json.Unmarshal(body, &parsed); unmarshalErr != nil && resp.StatusCode == http.StatusOK {
		return "", &BackendError{Provider: ProviderOpenAI, StatusCode: resp.StatusCode, Payload: string(body), Message: "invalid response body", Cause: unmarshalErr}
	}

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("unexpected status %d", resp.StatusCode)
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", &BackendError{Provider: ProviderOpenAI, StatusCode: resp.StatusCode, Payload: string(body), Message: msg}
	}

	if len(parsed.Choices) == 0 {
		return "", &BackendError{Provider: ProviderOpenAI, StatusCode: resp.StatusCode, Payload: string(body), Message: "no choices in response"}
	}

	return parsed.Choices[0].Message.Content, nil
}
