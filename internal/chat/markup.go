package chat

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	italicStyle  = lipgloss.NewStyle().Italic(true)

	headingRe = regexp.MustCompile(`(?m)^##\s+(.+)$`)
	boldRe    = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
	// The span must touch both delimiters, so lone asterisks in prose
	// ("2 * 3 * 4") stay literal.
	italicRe = regexp.MustCompile(`\*([^\s*](?:[^*\n]*[^\s*])?)\*`)
	underRe  = regexp.MustCompile(`_([^_\n]+)_`)
)

// RenderMarkup converts the lightweight markup in assistant answers
// (**bold**, *italic*, _italic_, "## heading" lines) to terminal styling.
// Unrecognized text passes through untouched.
func RenderMarkup(content string) string {
	out := headingRe.ReplaceAllStringFunc(content, func(m string) string {
		text := strings.TrimSpace(strings.TrimPrefix(m, "##"))
		return headingStyle.Render(text)
	})
	out = boldRe.ReplaceAllStringFunc(out, func(m string) string {
		return boldStyle.Render(strings.Trim(m, "*"))
	})
	out = italicRe.ReplaceAllStringFunc(out, func(m string) string {
		return italicStyle.Render(strings.Trim(m, "*"))
	})
	out = underRe.ReplaceAllStringFunc(out, func(m string) string {
		return italicStyle.Render(strings.Trim(m, "_"))
	})
	return out
}
