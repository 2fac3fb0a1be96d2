package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_EmptyContent(t *testing.T) {
	assert.Equal(t, 0, Score(map[string]any{}))
	assert.Equal(t, 0, Score(nil))
}

func TestScore_Summary(t *testing.T) {
	tests := []struct {
		name    string
		summary any
		want    int
	}{
		{"long summary scores full", strings.Repeat("a", 101), 20},
		{"short summary scores partial", "Brief summary.", 10},
		{"empty string counts as absent", "", 0},
		{"exactly 100 chars scores partial", strings.Repeat("a", 100), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(map[string]any{"summary": tt.summary}))
		})
	}
}

func TestScore_Experience(t *testing.T) {
	t.Run("achievement verbs score full", func(t *testing.T) {
		content := map[string]any{
			"experience": []any{map[string]any{"description": "Led the platform team"}},
		}
		assert.Equal(t, 20, Score(content))
	})

	t.Run("quantified results score full", func(t *testing.T) {
		content := map[string]any{
			"experience": []any{map[string]any{"description": "cut latency by 30%"}},
		}
		assert.Equal(t, 20, Score(content))
	})

	t.Run("verbs and numbers stack", func(t *testing.T) {
		content := map[string]any{
			"experience": []any{map[string]any{"description": "Improved throughput 3 times"}},
		}
		assert.Equal(t, 40, Score(content))
	})

	t.Run("verb matching is case-insensitive", func(t *testing.T) {
		content := map[string]any{
			"experience": []any{map[string]any{"description": "MANAGED a team of five"}},
		}
		assert.Equal(t, 20, Score(content))
	})

	t.Run("plain experience scores nothing", func(t *testing.T) {
		content := map[string]any{
			"experience": []any{map[string]any{"description": "Wrote software"}},
		}
		assert.Equal(t, 0, Score(content))
	})
}

func TestScore_Skills(t *testing.T) {
	t.Run("string length over five scores full", func(t *testing.T) {
		assert.Equal(t, 20, Score(map[string]any{"skills": "Go, SQL"}))
	})

	t.Run("short string scores partial", func(t *testing.T) {
		assert.Equal(t, 10, Score(map[string]any{"skills": "Go"}))
	})

	t.Run("short list scores partial", func(t *testing.T) {
		assert.Equal(t, 10, Score(map[string]any{"skills": []any{"Go"}}))
	})

	t.Run("list over five items scores full", func(t *testing.T) {
		skills := []any{"Go", "SQL", "Docker", "Kubernetes", "Terraform", "AWS"}
		assert.Equal(t, 20, Score(map[string]any{"skills": skills}))
	})

	t.Run("five items score partial", func(t *testing.T) {
		skills := []any{"Go", "SQL", "Docker", "Kubernetes", "Terraform"}
		assert.Equal(t, 10, Score(map[string]any{"skills": skills}))
	})
}

func TestScore_Education(t *testing.T) {
	t.Run("detailed education scores full", func(t *testing.T) {
		content := map[string]any{
			"education": []any{map[string]any{"school": "State University", "degree": "BSc Computer Science"}},
		}
		assert.Equal(t, 20, Score(content))
	})

	t.Run("sparse education scores partial", func(t *testing.T) {
		content := map[string]any{
			"education": []any{map[string]any{"school": "MIT"}},
		}
		assert.Equal(t, 10, Score(content))
	})
}

func TestScore_CapsAt100(t *testing.T) {
	content := map[string]any{
		"summary":    strings.Repeat("Experienced engineer. ", 10),
		"experience": []any{map[string]any{"description": "Led migrations and reduced costs by 25%"}},
		"skills":     []any{"Go", "SQL", "Docker", "Kubernetes", "Terraform", "AWS"},
		"education":  []any{map[string]any{"school": "State University", "degree": "BSc Computer Science", "field": "CS"}},
	}
	assert.Equal(t, 100, Score(content))
}
