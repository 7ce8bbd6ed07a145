package models

import "strings"

// PageSeparator follows every non-empty page in Document.Text.
const PageSeparator = "\n\n"

type Document struct {
	ID    string `json:"id"`
	Path  string `json:"path"`
	Pages []Page `json:"pages"`
}

type Page struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Text joins non-empty page texts in page order, each followed by a
// paragraph break, and trims the result. Pages are not normalized.
func (d *Document) Text() string {
	if d == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range d.Pages {
		if p.Text == "" {
			continue
		}
		b.WriteString(p.Text)
		b.WriteString(PageSeparator)
	}
	return strings.TrimSpace(b.String())
}

// CharCount is the number of runes across all pages.
func (d *Document) CharCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, p := range d.Pages {
		n += len([]rune(p.Text))
	}
	return n
}
