package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ClassRenderer handles rendering of the matching class list
type ClassRenderer struct {
	styles *Styles
}

// NewClassRenderer creates a new class renderer
func NewClassRenderer(styles *Styles) *ClassRenderer {
	return &ClassRenderer{
		styles: styles,
	}
}

// RenderList renders classes with the query highlighted and the cursor row
// marked. height bounds the rows shown, including the heading.
func (c *ClassRenderer) RenderList(classes []string, query string, cursor, height int, focused bool) string {
	var b strings.Builder
	b.WriteString(c.styles.Section.Render(fmt.Sprintf("%d classes match", len(classes))))
	b.WriteString(c.styles.Dim.Render("  enter to choose"))
	b.WriteString("\n")

	start, end := window(len(classes), cursor, height-3)
	if start > 0 {
		b.WriteString(c.styles.Scroll.Render(fmt.Sprintf("  ↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		name := c.highlightMatch(classes[i], strings.TrimSpace(query))
		if i == cursor {
			line := "> " + name
			if focused {
				line = c.styles.Cursor.Render(line)
			}
			b.WriteString(line)
		} else {
			b.WriteString("  " + name)
		}
		b.WriteString("\n")
	}
	if end < len(classes) {
		b.WriteString(c.styles.Scroll.Render(fmt.Sprintf("  ↓ %d more", len(classes)-end)))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// highlightMatch highlights the first case-insensitive occurrence of query
func (c *ClassRenderer) highlightMatch(text, query string) string {
	if query == "" {
		return text
	}
	index := strings.Index(strings.ToUpper(text), strings.ToUpper(query))
	if index == -1 || index+len(query) > len(text) {
		return text
	}

	before := text[:index]
	match := text[index : index+len(query)]
	after := text[index+len(query):]

	return before + c.styles.Highlight.Render(match) + after
}

// pad right-fills s to width cells
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
