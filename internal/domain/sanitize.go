package domain

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/net/html"
)

// MaxDescriptionWidth is the number of cells a description may take in a list row
const MaxDescriptionWidth = 120

// SanitizeText turns text from a catalog into plain, terminal-safe text.
// Markup is reduced to its text content, script and style bodies are
// dropped, escape sequences and control characters are removed and runs of
// whitespace collapse to one space.
func SanitizeText(s string) string {
	if s == "" {
		return ""
	}
	return collapse(stripMarkup(ansi.Strip(s)))
}

// TruncateDescription shortens a sanitized description to MaxDescriptionWidth cells
func TruncateDescription(s string) string {
	return ansi.Truncate(s, MaxDescriptionWidth, "…")
}

// Sanitized returns a copy safe for display. The id is left alone since it
// identifies the outcome; render it through SanitizeText.
func (o Outcome) Sanitized() Outcome {
	return Outcome{
		ID:          o.ID,
		Label:       SanitizeText(o.Label),
		Title:       SanitizeText(o.Title),
		Description: SanitizeText(o.Description),
	}
}

func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	raw := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			if raw == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			if isRawElement(z) {
				raw++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			if isRawElement(z) && raw > 0 {
				raw--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}

func isRawElement(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}

// collapse replaces control characters with spaces and squeezes whitespace
func collapse(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
