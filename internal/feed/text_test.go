package feed

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate_ShortTextUntouched(t *testing.T) {
	d := Truncate("short & sweet")

	assert.False(t, d.Truncated)
	assert.Equal(t, "short &amp; sweet", d.Display)
	assert.Equal(t, "short & sweet", Expand(d))
}

func TestTruncate_LongTextCollapsed(t *testing.T) {
	text := strings.Repeat("a", DescriptionBudget+50)

	d := Truncate(text)

	assert.True(t, d.Truncated)
	assert.Equal(t, strings.Repeat("a", DescriptionBudget)+"...", d.Display)
	assert.Equal(t, text, Expand(d))
}

func TestTruncate_RoundTrip(t *testing.T) {
	texts := []string{
		"",
		"<script>alert('x')</script>",
		strings.Repeat("<b>&\"'</b> ", 40),
		strings.Repeat("é日本", 120),
		"line\nbreaks\r\nand\ttabs",
		string([]byte{0xff, 0xfe, 'a'}),
	}
	for _, text := range texts {
		d := Truncate(text)
		assert.Equal(t, text, Expand(d))
		assert.Equal(t, text, Expand(d.Toggle()))
		assert.Equal(t, text, Expand(d.Toggle().Toggle()))
	}
}

func TestTruncate_EscapesRatherThanStrips(t *testing.T) {
	text := "<img src=x>" + strings.Repeat("z", DescriptionBudget)

	d := Truncate(text)

	assert.True(t, strings.HasPrefix(d.Display, "&lt;img src=x&gt;"))
	assert.NotContains(t, d.Display, "<img")
}

func TestDescription_Toggle(t *testing.T) {
	text := strings.Repeat("ü", DescriptionBudget+1)
	d := Truncate(text)

	expanded := d.Toggle()
	assert.True(t, expanded.Expanded)
	assert.Equal(t, text, expanded.Display)

	collapsed := expanded.Toggle()
	assert.False(t, collapsed.Expanded)
	assert.Equal(t, DescriptionBudget, utf8.RuneCountInString(strings.TrimSuffix(collapsed.Display, "...")))
}
