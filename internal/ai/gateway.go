package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/martin/resumeai/internal/prompts"
	"github.com/martin/resumeai/internal/schemas"
	"github.com/martin/resumeai/internal/scoring"
	"github.com/martin/resumeai/internal/types"
)

const promptFile = "generation.json"

// GenerationRequest describes one text generation call.
type GenerationRequest struct {
	// Provider is the provider ID; empty selects the registry default.
	Provider string
	// Prompt is the user prompt. Required.
	Prompt string
	// SystemPrompt is an optional system instruction.
	SystemPrompt string
	// Format selects raw text or a JSON object. Defaults to text.
	Format OutputFormat
}

// GeneratedResume bundles normalized resume content with its quality score.
// The score is derived from the content and is recomputed whenever the
// content changes; it is never stored apart from it.
type GeneratedResume struct {
	Content types.NormalizedContent `json:"content"`
	Score   int                     `json:"score"`
}

// Gateway dispatches generation requests to provider-specific backend
// adapters. Every call resolves credentials from the environment at call
// time, makes exactly one outbound request, and normalizes the backend's
// response envelope into plain text.
type Gateway struct {
	registry *Registry
	client   *http.Client

	// baseURLs overrides backend endpoints, used by tests.
	baseURLs map[string]string
}

// NewGateway creates a Gateway backed by the given provider registry.
func NewGateway(registry *Registry) *Gateway {
	return &Gateway{
		registry: registry,
		client:   &http.Client{},
		baseURLs: make(map[string]string),
	}
}

// Generate dispatches a request to the resolved provider's adapter and
// returns the generated text.
func (g *Gateway) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", fmt.Errorf("prompt is required")
	}

	id := req.Provider
	if id == "" {
		id = g.registry.DefaultProvider().ID
	}

	desc, ok := g.registry.Lookup(id)
	if !ok {
		return "", &UnsupportedProviderError{Provider: id}
	}

	credential := os.Getenv(desc.CredentialEnv)
	if credential == "" {
		return "", &ConfigurationError{Provider: desc.ID, EnvVar: desc.CredentialEnv}
	}

	format := req.Format
	if format == "" {
		format = FormatText
	}

	return g.backendFor(desc, credential).generate(ctx, requestSpec{
		Prompt:       req.Prompt,
		SystemPrompt: req.SystemPrompt,
		Format:       format,
	})
}

// GenerateResumeContent builds the resume prompt from structured form input,
// requests a JSON document from the provider, parses and validates it, and
// scores the result.
func (g *Gateway) GenerateResumeContent(ctx context.Context, input types.ResumeInput, provider string) (*GeneratedResume, error) {
	text, err := g.Generate(ctx, GenerationRequest{
		Provider:     provider,
		Prompt:       buildResumePrompt(input),
		SystemPrompt: prompts.MustGet(promptFile, "resume_system"),
		Format:       FormatJSON,
	})
	if err != nil {
		return nil, err
	}

	content, err := parseContent(text, schemas.ResumeContentSchema)
	if err != nil {
		return nil, err
	}

	return &GeneratedResume{
		Content: content,
		Score:   scoring.Score(content),
	}, nil
}

// GenerateCoverLetterContent builds the cover letter prompt and returns the
// parsed JSON document. Cover letters are not scored.
func (g *Gateway) GenerateCoverLetterContent(ctx context.Context, input types.CoverLetterInput, provider string) (types.NormalizedContent, error) {
	recipient := input.Recipient
	if recipient == "" {
		recipient = "Hiring Manager"
	}

	prompt := prompts.Format(prompts.MustGet(promptFile, "cover_letter_prompt"), map[string]string{
		"Name":       input.Name,
		"Email":      input.Email,
		"Phone":      input.Phone,
		"Company":    input.Company,
		"Position":   input.Position,
		"Recipient":  recipient,
		"Strengths":  input.Strengths,
		"Experience": input.Experience,
		"Motivation": input.Motivation,
	})

	text, err := g.Generate(ctx, GenerationRequest{
		Provider:     provider,
		Prompt:       prompt,
		SystemPrompt: prompts.MustGet(promptFile, "cover_letter_system"),
		Format:       FormatJSON,
	})
	if err != nil {
		return nil, err
	}

	return parseContent(text, schemas.CoverLetterContentSchema)
}

// parseContent strips markdown fences, parses the backend text as JSON, and
// checks the document shape. Structured output that fails to parse is a hard
// error; content is never silently defaulted.
func parseContent(text, schemaName string) (types.NormalizedContent, error) {
	cleaned := cleanJSONBlock(text)

	var content types.NormalizedContent
	if err := json.Unmarshal([]byte(cleaned), &content); err != nil {
		return nil, &ContentParseError{Cause: err}
	}

	if err := schemas.Validate(schemaName, []byte(cleaned)); err != nil {
		return nil, err
	}

	return content, nil
}

// buildResumePrompt renders the deterministic resume prompt template.
// Missing optional fields appear as empty strings; they never cause failure.
func buildResumePrompt(input types.ResumeInput) string {
	var experiences strings.Builder
	for _, exp := range input.Experiences {
		fmt.Fprintf(&experiences, "- %s at %s (%s - %s)\n  %s\n", exp.Title, exp.Company, exp.StartDate, exp.EndDate, exp.Description)
	}

	var education strings.Builder
	for _, edu := range input.Education {
		fmt.Fprintf(&education, "- %s in %s from %s (%s - %s)\n", edu.Degree, edu.Field, edu.School, edu.StartDate, edu.EndDate)
	}

	return prompts.Format(prompts.MustGet(promptFile, "resume_prompt"), map[string]string{
		"Name":        input.PersonalInfo.Name,
		"Title":       input.PersonalInfo.Title,
		"Email":       input.PersonalInfo.Email,
		"Phone":       input.PersonalInfo.Phone,
		"Location":    input.PersonalInfo.Location,
		"Summary":     input.PersonalInfo.Summary,
		"Experiences": experiences.String(),
		"Education":   education.String(),
		"Skills":      input.Skills,
	})
}

// backendFor constructs the adapter for a provider. The caller has already
// resolved the descriptor and credential.
func (g *Gateway) backendFor(desc ProviderDescriptor, credential string) backend {
	switch desc.ID {
	case ProviderOpenAI:
		return &openAIBackend{apiKey: credential, baseURL: g.baseURL(ProviderOpenAI, defaultOpenAIBaseURL), client: g.client}
	case ProviderModelsLab:
		return &modelsLabBackend{apiKey: credential, baseURL: g.baseURL(ProviderModelsLab, defaultModelsLabBaseURL), client: g.client}
	case ProviderGemini:
		return &geminiBackend{apiKey: credential}
	case ProviderOllama:
		return &ollamaBackend{baseURL: g.baseURL(ProviderOllama, credential), client: g.client}
	default:
		// Lookup gates the provider set; this is unreachable.
		panic(fmt.Sprintf("no backend for provider %s", desc.ID))
	}
}

func (g *Gateway) baseURL(provider, fallback string) string {
	if u, ok := g.baseURLs[provider]; ok {
		return u
	}
	return fallback
}
