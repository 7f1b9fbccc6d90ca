// Package ai wraps the external model providers used for fallback theme
// classification. The rest of the pipeline only sees the Provider interface.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcttz/mediawatch/internal/themes"
)

// Provider classifies article text into theme names. Implementations must
// tolerate empty and malformed model responses and return them as an empty
// slice, not an error.
type Provider interface {
	ClassifyThemes(ctx context.Context, text string) ([]string, error)
}

// classifyPrompt is the fixed instruction set sent with every request. The
// numbered names must stay in sync with themes.AINames.
const classifyPrompt = `You are an assistant for media monitoring in Tanzania.
Classify the following text into one or more of these themes:
1. Media Freedom
2. Journalist Safety
3. Media Economy
4. Violations & Complaints
5. Political Bias
6. Public Sentiment
7. Social & Human Rights Issues
8. Analytics & AI Monitoring
Return only a comma-separated list of matching theme names.
Text:
%s`

func buildPrompt(text string) string {
	return fmt.Sprintf(classifyPrompt, text)
}

// parseThemes turns a free-text model answer into canonical theme labels.
// Unknown names are dropped, duplicates collapsed, and an unparsable answer
// yields the empty set.
func parseThemes(answer string) []string {
	var labels []string
	seen := make(map[string]bool)
	for _, chunk := range strings.FieldsFunc(answer, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	}) {
		chunk = strings.Trim(chunk, " \t.-*0123456789")
		label, ok := themes.Resolve(chunk)
		if !ok || seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}
