package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"examfinder/internal/domain"
)

// ReadyMarker is printed once the first screen is drawn, for pty tests
const ReadyMarker = "__READY__"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Location      string
	InputMode     string // "search", "browse" or "reminders"
	SearchInput   string // rendered search field
	ReminderInput string // rendered reminder field, only in reminders mode
	Query         string
	DatasetStatus domain.DatasetStatus
	DatasetError  string
	Refreshing    bool
	ResultMode    string
	Classes       []string
	Exams         []domain.ExamRecord
	Selected      map[string]bool
	Cursor        int
	Reminders     string
	StatusMessage string
	StatusIsError bool
	Provenance    []string
	Uptime        string
	ShowHelp      bool
	HelpView      string // short help in the footer, full help in the popup
	ShowReady     bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	classRender *ClassRenderer
	examRender  *ExamRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		classRender: NewClassRenderer(styles),
		examRender:  NewExamRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.ShowHelp {
		return r.popupRender.RenderPopup(
			r.styles.Title.Render("Keys")+"\n\n"+state.HelpView,
			state.Height, state.Width, r.styles.HelpBox)
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	availableWidth := termWidth - 4 // Account for main container padding

	top := &strings.Builder{}
	top.WriteString(r.renderTitleLine(state, availableWidth))
	top.WriteString("\n\n")
	top.WriteString(r.styles.Prompt.Render("Class:") + " ")
	top.WriteString(state.SearchInput)
	top.WriteString("\n")
	if state.InputMode == "reminders" {
		top.WriteString(r.styles.Prompt.Render("Remind before:") + " ")
		top.WriteString(state.ReminderInput)
		top.WriteString(r.styles.Dim.Render("  (minutes or 1h, 1d; enter applies, esc cancels)"))
		top.WriteString("\n")
	}
	top.WriteString("\n")

	bottom := r.renderBottom(state, availableWidth)

	// Account for container padding (1 top, 1 bottom from Padding(1, 2))
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22 // Default terminal height minus padding
	}
	bodyLines := availableLines - lineCount(top.String()) - lineCount(bottom)
	body := r.renderBody(state, bodyLines)

	content := &strings.Builder{}
	content.WriteString(top.String())
	content.WriteString(body)

	paddingNeeded := bodyLines - lineCount(body)
	if paddingNeeded > 0 {
		content.WriteString(strings.Repeat("\n", paddingNeeded))
	}
	content.WriteString("\n")
	content.WriteString(bottom)

	mainStyle := r.styles.Main.MaxHeight(state.Height)
	if state.Height <= 0 {
		mainStyle = r.styles.Main
	}
	return mainStyle.Render(content.String())
}

// renderTitleLine puts the logo on the left and the location and activity
// indicators on the right
func (r *Renderer) renderTitleLine(state ViewState, availableWidth int) string {
	logo := r.styles.Title.Render("examfinder")

	right := []string{}
	if state.Refreshing {
		right = append(right, r.styles.StatusRefresh.Render("↻ Refreshing"))
	}
	if state.Location != "" {
		right = append(right, r.styles.Location.Render(state.Location))
	}
	if len(right) == 0 {
		return logo
	}

	rightContent := strings.Join(right, "  ")
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + rightContent
	}
	// If not enough space, just show with minimal spacing
	return logo + "  " + rightContent
}

func (r *Renderer) renderBody(state ViewState, height int) string {
	switch state.DatasetStatus {
	case domain.StatusLoading:
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		return r.styles.StatusLoading.Render(spinner[frame] + " Loading exam schedule...")
	case domain.StatusError:
		return r.styles.StatusError.Render("Could not load the exam schedule:") + "\n" +
			state.DatasetError + "\n\n" +
			r.styles.Dim.Render("Press ctrl+r to try again.")
	}

	switch state.ResultMode {
	case "NOT_FOUND":
		return r.styles.Dim.Render(fmt.Sprintf("No class matches %q.", strings.TrimSpace(state.Query)))
	case "LIST":
		return r.classRender.RenderList(state.Classes, state.Query, state.Cursor, height, state.InputMode == "browse")
	case "DETAIL":
		return r.examRender.RenderDetail(state, height)
	default:
		return r.styles.Dim.Render("Type at least 2 characters of your class name to find its exams.")
	}
}

func (r *Renderer) renderBottom(state ViewState, availableWidth int) string {
	lines := []string{}

	if state.StatusMessage != "" {
		if state.StatusIsError {
			lines = append(lines, r.styles.StatusError.Render(state.StatusMessage))
		} else {
			lines = append(lines, r.styles.StatusSuccess.Render(state.StatusMessage))
		}
	}

	for _, p := range state.Provenance {
		lines = append(lines, r.styles.Footer.Render(truncate(p, availableWidth)))
	}
	if state.Uptime != "" {
		lines = append(lines, r.styles.Footer.Render("Up for")+" "+r.styles.Uptime.Render(state.Uptime))
	}
	if state.HelpView != "" {
		lines = append(lines, state.HelpView)
	}
	if state.ShowReady {
		lines = append(lines, ReadyMarker)
	}
	return strings.Join(lines, "\n")
}

// window returns the slice bounds of size rows around cursor
func window(total, cursor, size int) (int, int) {
	if size <= 0 || total <= size {
		return 0, total
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start > total-size {
		start = total - size
	}
	return start, start + size
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
