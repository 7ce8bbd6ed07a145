package util

import (
	"strings"
	"unicode"
)

// allowedSymbols is the punctuation kept by SanitizeText besides letters,
// numbers, underscore and whitespace.
const allowedSymbols = `.,;:!?-_'"()[]{}/\@%&+=*#$`

// SanitizeText restricts s to letters, numbers, whitespace and a fixed set of
// punctuation. Every other rune (emoji, arrows, pipes, control characters)
// becomes a single space. Space runs are then collapsed, each line is trimmed,
// blank line runs are capped at one empty line and the result is trimmed.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	s = replaceDisallowed(s)
	s = collapseSpaces(s)
	s = trimLines(s)
	s = collapseBlankLines(s)
	return strings.TrimSpace(s)
}

// IsAllowedRune reports whether r passes the SanitizeText filter unchanged.
func IsAllowedRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
		return true
	}
	return strings.ContainsRune(allowedSymbols, r)
}

func replaceDisallowed(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if IsAllowedRune(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(' ')
	}
	return b.String()
}

// collapseSpaces only touches U+0020; tabs and other whitespace pass through.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// collapseBlankLines caps newline runs at two. It runs after trimLines so a
// line holding only whitespace cannot leave three newlines behind.
func collapseBlankLines(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	run := 0
	for _, r := range s {
		if r == '\n' {
			run++
			if run > 2 {
				continue
			}
		} else {
			run = 0
		}
		b.WriteRune(r)
	}
	return b.String()
}
