package ai

import "context"

// OutputFormat selects the shape of the generated output.
type OutputFormat string

// Supported output formats.
const (
	// FormatText asks the backend for free-form text.
	FormatText OutputFormat = "text"
	// FormatJSON asks the backend for a JSON object.
	FormatJSON OutputFormat = "json"
)

// requestSpec is the backend-agnostic description of one generation call.
type requestSpec struct {
	Prompt       string
	SystemPrompt string
	Format       OutputFormat
}

// backend is the capability interface every provider adapter implements.
// Each adapter knows its own wire shape: how to build the transport request,
// where the auth goes, and how to extract plain text from that backend's
// response envelope. A nil error means the backend signalled semantic
// success, not merely HTTP success.
type backend interface {
	generate(ctx context.Context, spec requestSpec) (string, error)
}
