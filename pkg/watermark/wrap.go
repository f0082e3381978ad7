package watermark

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Wrap breaks text greedily into lines of at most width runes. Whitespace
// inside a line is kept (as spaces), whitespace at a break is dropped, and a
// word longer than width is emitted on a line of its own without splitting.
func Wrap(text string, width int) []string {
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, text)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if width <= 0 {
		return []string{strings.TrimSpace(text)}
	}

	var (
		lines []string
		cur   strings.Builder
		n     int
	)
	flush := func() {
		lines = append(lines, strings.TrimRight(cur.String(), " "))
		cur.Reset()
		n = 0
	}
	for _, chunk := range chunks(text) {
		size := utf8.RuneCountInString(chunk)
		if chunk[0] == ' ' {
			if n == 0 {
				continue
			}
			cur.WriteString(chunk)
			n += size
			continue
		}
		if n > 0 && n+size > width {
			flush()
		}
		cur.WriteString(chunk)
		n += size
	}
	if n > 0 {
		flush()
	}
	return lines
}

// chunks splits s into alternating runs of spaces and non-spaces.
func chunks(s string) []string {
	var out []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || (s[i] == ' ') != (s[start] == ' ') {
			out = append(out, s[start:i])
			start = i
		}
	}
	return out
}
