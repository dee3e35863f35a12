package tui

import (
	"encoding/json"
	"strings"
)

// highlightBody syntax-highlights a JSON response body through the model's
// glamour renderer. The ok result is false when the body is not JSON or
// rendering fails, so callers fall back to the plain text.
func (m *Model) highlightBody(body string) (string, bool) {
	var js interface{}
	if json.Unmarshal([]byte(body), &js) != nil {
		return "", false
	}

	// Re-encode so even minified JSON comes out indented.
	pretty, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString("```json\n")
	sb.Write(pretty)
	sb.WriteString("\n```")

	if m.renderer == nil {
		return "", false
	}
	out, err := m.renderer.Render(sb.String())
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(out), true
}
