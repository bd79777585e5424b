// Package grapheme measures and fits cell text to terminal columns without
// splitting grapheme clusters.
package grapheme

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Width returns the terminal cell width of one cluster. Tabs count as one
// cell; other control characters count as zero.
func Width(cluster string) int {
	if cluster == "\t" {
		return 1
	}
	w := runewidth.StringWidth(cluster)
	if w == 0 {
		w = uniseg.StringWidth(cluster)
	}
	return max(w, 0)
}

// StringWidth returns the cell width of a single-line string.
func StringWidth(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	w := 0
	for g.Next() {
		w += Width(g.Str())
	}
	return w
}

// Truncate cuts text to at most width cells. When text does not fit and
// tail is non-empty, tail replaces the last cells.
func Truncate(text string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(text) <= width {
		return text
	}
	tw := StringWidth(tail)
	if tw > width {
		tail, tw = "", 0
	}

	limit := width - tw
	var sb strings.Builder
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		c := g.Str()
		w := Width(c)
		if used+w > limit {
			break
		}
		if c == "\t" {
			c = " "
		}
		sb.WriteString(c)
		used += w
	}
	sb.WriteString(tail)
	return sb.String()
}

// Fit truncates text to width cells and pads it with spaces to exactly
// width cells.
func Fit(text string, width int, tail string) string {
	s := Truncate(Sanitize(text), width, tail)
	if pad := width - StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// Sanitize replaces tabs with a space and drops carriage returns and
// newlines so text occupies a single terminal line.
func Sanitize(text string) string {
	if !strings.ContainsAny(text, "\t\r\n") {
		return text
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t':
			return ' '
		case '\r', '\n':
			return -1
		}
		return r
	}, text)
}

// Lines splits text into at most limit lines. A limit below one means one
// line. When lines are dropped the last kept line ends with tail.
func Lines(text string, limit int, tail string) []string {
	limit = max(limit, 1)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) <= limit {
		return lines
	}
	lines = lines[:limit]
	lines[limit-1] += tail
	return lines
}
