package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"examfinder/internal/ui/input/types"
)

// RemindersMode edits the reminder offsets as text, e.g. "30, 1h, 1d"
type RemindersMode struct {
	TextInputMode
}

func NewRemindersMode(ti *textinput.Model) *RemindersMode {
	m := &RemindersMode{
		TextInputMode: NewTextInputMode(types.ModeReminders, "reminders", "Remind before: ", ti),
	}
	m.seed = func(ctx types.Context) string { return ctx.RemindersText() }
	return m
}
