package ai

import "fmt"

// ConfigurationError indicates a call was attempted against a provider whose
// credential is not configured.
type ConfigurationError struct {
	Provider string
	EnvVar   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("provider %s is not configured: %s is not set", e.Provider, e.EnvVar)
}

// UnsupportedProviderError indicates an unknown provider ID was requested.
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported AI provider: %s", e.Provider)
}

// BackendError indicates the backend refused the request, either via a non-2xx
// HTTP status or via a failure marker embedded in a 2xx body. Payload carries
// the backend's structured error body when one was supplied.
type BackendError struct {
	Provider   string
	StatusCode int
	Payload    string
	Message    string
	Cause      error
}

func (e *BackendError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s backend error: %s (status %d)", e.Provider, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s backend error: %s", e.Provider, msg)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// ContentParseError indicates the backend returned text that is not valid JSON
// when structured output was requested.
type ContentParseError struct {
	Cause error
}

func (e *ContentParseError) Error() string {
	return fmt.Sprintf("generated content is not valid JSON: %v", e.Cause)
}

func (e *ContentParseError) Unwrap() error {
	return e.Cause
}
