package ai

import "strings"

// cleanJSONBlock removes markdown code fences from a backend response.
// Models often wrap JSON in ```json ... ``` blocks even when told not to.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	return text
}
