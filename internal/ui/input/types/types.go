package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	// ModeSearch edits the query; the search field has focus
	ModeSearch Mode = iota
	// ModeBrowse moves over the result with the search field blurred
	ModeBrowse
	// ModeReminders edits the reminder offsets
	ModeReminders
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeBrowse:
		return "browse"
	case ModeReminders:
		return "reminders"
	default:
		return "unknown"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	Cursor() int
	ItemCount() int
	ResultMode() string // search.Mode of the current result
	RemindersText() string
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
