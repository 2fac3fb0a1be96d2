// Package ai provides the provider registry and generation gateway for
// AI-assisted resume and cover letter content.
package ai

import "os"

// CredentialKind describes what kind of environment credential a provider needs.
type CredentialKind string

// Credential kinds for providers.
const (
	// CredentialAPIKey means the provider authenticates with a secret API key.
	CredentialAPIKey CredentialKind = "api-key"
	// CredentialEndpointURL means the provider needs a reachable base URL.
	CredentialEndpointURL CredentialKind = "endpoint-url"
)

// Provider identifiers.
const (
	ProviderOpenAI    = "openai"
	ProviderModelsLab = "modelslab"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
)

// ProviderDescriptor describes a text-generation backend selectable by the caller.
type ProviderDescriptor struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	CredentialKind CredentialKind `json:"-"`
	CredentialEnv  string         `json:"-"`
}

// Registry is the immutable table of known providers. It is constructed once
// at startup and passed explicitly to the Gateway.
type Registry struct {
	providers []ProviderDescriptor
	priority  []string
}

// NewRegistry returns the registry of all compiled-in providers.
func NewRegistry() *Registry {
	return &Registry{
		providers: []ProviderDescriptor{
			{ID: ProviderOpenAI, Name: "ChatGPT", CredentialKind: CredentialAPIKey, CredentialEnv: "OPENAI_API_KEY"},
			{ID: ProviderModelsLab, Name: "ModelsLab", CredentialKind: CredentialAPIKey, CredentialEnv: "MODELSLAB_API_KEY"},
			{ID: ProviderGemini, Name: "Gemini", CredentialKind: CredentialAPIKey, CredentialEnv: "GEMINI_API_KEY"},
			{ID: ProviderOllama, Name: "Ollama", CredentialKind: CredentialEndpointURL, CredentialEnv: "OLLAMA_BASE_URL"},
		},
		// Selection preference for DefaultProvider. The last entry doubles as
		// the fallback when nothing is configured, so a missing credential
		// surfaces as an attributable error at call time instead of an empty
		// registry answer here.
		priority: []string{ProviderModelsLab, ProviderOpenAI, ProviderGemini, ProviderOllama},
	}
}

// Providers returns all known providers in fixed registry order.
func (r *Registry) Providers() []ProviderDescriptor {
	out := make([]ProviderDescriptor, len(r.providers))
	copy(out, r.providers)
	return out
}

// Lookup returns the descriptor for the given provider ID.
func (r *Registry) Lookup(id string) (ProviderDescriptor, bool) {
	for _, p := range r.providers {
		if p.ID == id {
			return p, true
		}
	}
	return ProviderDescriptor{}, false
}

// IsAvailable reports whether the provider's required credential is present in
// the environment. It is a presence check only; no network call is made.
// Availability is recomputed on every query since credentials can be rotated
// between deploys.
func (r *Registry) IsAvailable(id string) bool {
	p, ok := r.Lookup(id)
	if !ok {
		return false
	}
	return os.Getenv(p.CredentialEnv) != ""
}

// AvailableProviders returns the providers whose credentials are configured,
// preserving registry order.
func (r *Registry) AvailableProviders() []ProviderDescriptor {
	var out []ProviderDescriptor
	for _, p := range r.providers {
		if r.IsAvailable(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// DefaultProvider returns the first available provider in priority order.
// When no provider is configured it still returns the lowest-priority entry;
// the caller will then fail at call time with a clear configuration error.
func (r *Registry) DefaultProvider() ProviderDescriptor {
	for _, id := range r.priority {
		if r.IsAvailable(id) {
			p, _ := r.Lookup(id)
			return p
		}
	}
	p, _ := r.Lookup(r.priority[len(r.priority)-1])
	return p
}
