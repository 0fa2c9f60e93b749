package views

import (
	"fmt"
	"strings"

	"examfinder/internal/domain"
)

// ExamRenderer handles rendering of a class's exams
type ExamRenderer struct {
	styles *Styles
}

// NewExamRenderer creates a new exam renderer
func NewExamRenderer(styles *Styles) *ExamRenderer {
	return &ExamRenderer{
		styles: styles,
	}
}

// RenderDetail renders the class heading, one checkbox row per exam and the
// reminder line
func (e *ExamRenderer) RenderDetail(state ViewState, height int) string {
	var b strings.Builder

	class := ""
	if len(state.Classes) > 0 {
		class = state.Classes[0]
	}
	selected := 0
	for _, exam := range state.Exams {
		if state.Selected[exam.ID] {
			selected++
		}
	}

	b.WriteString(e.styles.Section.Render(class))
	b.WriteString(e.styles.Dim.Render(fmt.Sprintf("  %d exams, %d selected", len(state.Exams), selected)))
	b.WriteString("\n")

	courseWidth, whenWidth := 0, 0
	for _, exam := range state.Exams {
		courseWidth = max(courseWidth, len([]rune(exam.CourseName)))
		whenWidth = max(whenWidth, len([]rune(When(exam))))
	}

	start, end := window(len(state.Exams), state.Cursor, height-4)
	if start > 0 {
		b.WriteString(e.styles.Scroll.Render(fmt.Sprintf("  ↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(e.renderRow(state.Exams[i], state.Selected[state.Exams[i].ID], i == state.Cursor, courseWidth, whenWidth))
		b.WriteString("\n")
	}
	if end < len(state.Exams) {
		b.WriteString(e.styles.Scroll.Render(fmt.Sprintf("  ↓ %d more", len(state.Exams)-end)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	reminders := state.Reminders
	if reminders == "" {
		reminders = "none"
	}
	b.WriteString(e.styles.Dim.Render("Reminders: " + reminders + "  (ctrl+e edit, ctrl+a agenda)"))
	return b.String()
}

func (e *ExamRenderer) renderRow(exam domain.ExamRecord, checked, isCursor bool, courseWidth, whenWidth int) string {
	box := e.styles.Unchecked.Render("[ ]")
	if checked {
		box = e.styles.Checked.Render("[x]")
	}

	marker := "  "
	if isCursor {
		marker = "> "
	}

	line := fmt.Sprintf("%s %s  %s  %s", box, pad(exam.CourseName, courseWidth), pad(When(exam), whenWidth), Where(exam))
	line = strings.TrimRight(line, " ")
	if isCursor {
		return e.styles.Cursor.Render(marker + line)
	}
	return marker + line
}

// When formats the exam's time span for a row
func When(exam domain.ExamRecord) string {
	if exam.StartTime == "" {
		return exam.RawTime
	}
	if exam.EndTime == "" {
		return exam.StartTime
	}
	return exam.StartTime + " - " + exam.EndTime
}

// Where formats the exam's room and campus
func Where(exam domain.ExamRecord) string {
	if exam.Campus == "" {
		return exam.Location
	}
	if exam.Location == "" {
		return exam.Campus
	}
	return exam.Location + " (" + exam.Campus + ")"
}
