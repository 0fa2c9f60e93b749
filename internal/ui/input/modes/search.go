package modes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"examfinder/internal/ui/input/types"
)

// SearchMode keeps focus in the class search field. Unbound keys are typed
// into the field.
type SearchMode struct {
	TextInputMode
	keys types.KeyMap
}

func NewSearchMode(ti *textinput.Model, keys types.KeyMap) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Class: ", ti),
		keys:          keys,
	}
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := globalAction(msg, m.keys); ok {
		return actions, true
	}
	if actions, ok := navigation(msg, m.keys, false); ok {
		return actions, true
	}

	switch {
	case key.Matches(msg, m.keys.Choose):
		return []types.Action{types.ChooseAction{}}, true
	case key.Matches(msg, m.keys.Clear):
		return []types.Action{types.ClearQueryAction{}}, true
	case key.Matches(msg, m.keys.Focus):
		if ctx.ItemCount() == 0 {
			return nil, true
		}
		return []types.Action{types.ChangeModeAction{Mode: types.ModeBrowse}}, true
	}
	return nil, false
}
