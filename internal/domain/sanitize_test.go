package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTextDropsMarkup(t *testing.T) {
	out := SanitizeText(`Hello <img src="bigimage" />`)
	assert.Equal(t, "Hello", out)
	assert.NotContains(t, out, "img")
	assert.NotContains(t, out, "bigimage")

	assert.Equal(t, "Add fractions with like denominators",
		SanitizeText("<p>Add <b>fractions</b> with<br>like denominators</p>"))
	assert.Equal(t, "before after", SanitizeText("before <script>alert('x')</script> after"))
	assert.Equal(t, "a & b", SanitizeText("a &amp; b"))
	assert.Equal(t, "1 < 2", SanitizeText("1 < 2"))
}

func TestSanitizeTextDropsTerminalEscapes(t *testing.T) {
	out := SanitizeText("Hello \x1b]0;pwned\x07\x1b[2J world\x1b[31m!")
	assert.Equal(t, "Hello world!", out)
	assert.NotContains(t, out, "\x1b")
	assert.NotContains(t, out, "pwned")

	assert.Equal(t, "tab and newline", SanitizeText("tab\tand\r\nnewline\x00"))
}

func TestSanitizedKeepsID(t *testing.T) {
	o := Outcome{ID: "LO-1", Label: "<i>L</i>", Title: "T\x1b[2J", Description: "<img src=x>D"}
	assert.Equal(t, Outcome{ID: "LO-1", Label: "L", Title: "T", Description: "D"}, o.Sanitized())
}

func TestTruncateDescription(t *testing.T) {
	short := "Hello there"
	assert.Equal(t, short, TruncateDescription(short))

	long := TruncateDescription(strings.Repeat("a", 500))
	assert.Len(t, []rune(long), MaxDescriptionWidth)
	assert.True(t, strings.HasSuffix(long, "…"))
}
