package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("generation.json", "resume_system")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("generation.json", "nonexistent_key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent_key")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "resume_system")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("generation.json", "nonexistent_key")
	})
}

func TestFormat(t *testing.T) {
	result := Format("Hello {{.Name}}, welcome to {{.Place}}", map[string]string{
		"Name":  "Ada",
		"Place": "London",
	})
	assert.Equal(t, "Hello Ada, welcome to London", result)
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	result := Format("Hello {{.Name}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Hello {{.Name}}", result)
}

func TestResumePromptTemplates(t *testing.T) {
	prompt := MustGet("generation.json", "resume_prompt")
	for _, placeholder := range []string{"{{.Name}}", "{{.Experiences}}", "{{.Education}}", "{{.Skills}}"} {
		assert.True(t, strings.Contains(prompt, placeholder), "resume_prompt must contain %s", placeholder)
	}

	letter := MustGet("generation.json", "cover_letter_prompt")
	for _, placeholder := range []string{"{{.Company}}", "{{.Position}}", "{{.Recipient}}"} {
		assert.True(t, strings.Contains(letter, placeholder), "cover_letter_prompt must contain %s", placeholder)
	}
}
