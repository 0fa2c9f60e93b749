package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"examfinder/internal/ui/input/types"
)

// BrowseMode moves over the classes or exams with the search field blurred
type BrowseMode struct {
	keys types.KeyMap
}

func NewBrowseMode(keys types.KeyMap) *BrowseMode {
	return &BrowseMode{keys: keys}
}

func (m *BrowseMode) Name() string {
	return "browse"
}

func (m *BrowseMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *BrowseMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *BrowseMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := globalAction(msg, m.keys); ok {
		return actions, true
	}
	if actions, ok := navigation(msg, m.keys, true); ok {
		return actions, true
	}

	switch {
	case key.Matches(msg, m.keys.Choose):
		return []types.Action{types.ChooseAction{}}, true
	case key.Matches(msg, m.keys.Toggle):
		return []types.Action{types.ToggleAction{}}, true
	case key.Matches(msg, m.keys.Clear), key.Matches(msg, m.keys.Focus):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true
	}

	// vim-style movement
	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true
	}

	return nil, false
}
