package feed

import (
	"html"
	"unicode/utf8"
)

// DescriptionBudget is the number of characters shown before a post's text
// is collapsed.
const DescriptionBudget = 200

const ellipsis = "..."

// Description keeps the original text verbatim next to its rendered form so
// expanding a collapsed description never loses characters.
type Description struct {
	Full      string `json:"full"`
	Display   string `json:"display"`
	Truncated bool   `json:"truncated"`
	Expanded  bool   `json:"expanded"`
}

func Truncate(text string) Description {
	d := Description{Full: text}
	if utf8.RuneCountInString(text) <= DescriptionBudget {
		d.Display = html.EscapeString(text)
		return d
	}
	d.Truncated = true
	d.Display = collapsed(text)
	return d
}

// Expand returns the original text.
func Expand(d Description) string {
	return d.Full
}

// Toggle flips between the collapsed and the full rendering.
func (d Description) Toggle() Description {
	if !d.Truncated {
		return d
	}
	d.Expanded = !d.Expanded
	if d.Expanded {
		d.Display = html.EscapeString(d.Full)
	} else {
		d.Display = collapsed(d.Full)
	}
	return d
}

func collapsed(text string) string {
	return html.EscapeString(string([]rune(text)[:DescriptionBudget])) + ellipsis
}
