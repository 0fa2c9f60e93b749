package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"examfinder/internal/ui/input/types"
)

// globalAction matches the bindings that work in every mode except text
// editing of reminders
func globalAction(msg tea.KeyMsg, keys types.KeyMap) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, keys.Reminders):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeReminders}}, true
	case key.Matches(msg, keys.Agenda):
		return []types.Action{types.OpenAgendaAction{}}, true
	case key.Matches(msg, keys.Reload):
		return []types.Action{types.ReloadAction{}}, true
	case key.Matches(msg, keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	return nil, false
}

// navigation matches cursor movement. Home and End are left out in the
// search field, where they move the text cursor.
func navigation(msg tea.KeyMsg, keys types.KeyMap, withHomeEnd bool) ([]types.Action, bool) {
	dir := ""
	switch {
	case key.Matches(msg, keys.Up):
		dir = "up"
	case key.Matches(msg, keys.Down):
		dir = "down"
	case key.Matches(msg, keys.PageUp):
		dir = "pageup"
	case key.Matches(msg, keys.PageDown):
		dir = "pagedown"
	case withHomeEnd && key.Matches(msg, keys.Home):
		dir = "home"
	case withHomeEnd && key.Matches(msg, keys.End):
		dir = "end"
	default:
		return nil, false
	}
	return []types.Action{types.NavigateAction{Direction: dir}}, true
}
