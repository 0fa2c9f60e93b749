package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"examfinder/internal/ui/input/modes"
	"examfinder/internal/ui/input/types"
)

// searchCharLimit bounds the class search field
const searchCharLimit = 64

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	keys        types.KeyMap
	search      *textinput.Model // the class search field, keeps its value across modes
	reminder    *textinput.Model // reminder editor, seeded on entry
}

func New(keys types.KeyMap) *Handler {
	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "class name, e.g. B240402"
	search.CharLimit = searchCharLimit
	search.Focus()

	reminder := textinput.New()
	reminder.Prompt = ""
	reminder.Placeholder = "30, 1h, 1d"

	h := &Handler{
		currentMode: types.ModeSearch,
		keys:        keys,
		search:      &search,
		reminder:    &reminder,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	// Register all mode handlers
	h.modes[types.ModeSearch] = modes.NewSearchMode(h.search, keys)
	h.modes[types.ModeBrowse] = modes.NewBrowseMode(keys)
	h.modes[types.ModeReminders] = modes.NewRemindersMode(h.reminder)

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	// If not consumed and we're in text mode, we'll handle it below
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}

		allActions = append(allActions, h.modes[h.currentMode].Exit(ctx)...)
		h.currentMode = changeMode.Mode
		allActions = append(allActions, h.modes[h.currentMode].Enter(ctx)...)
		allActions = append(allActions, changeMode)

		if h.isTextMode(h.currentMode) {
			cmd = textinput.Blink
		}
	}

	// Unhandled keys in a text mode are typed into the field
	if !consumed {
		ti := h.textInputFor(h.currentMode)
		var textCmd tea.Cmd
		*ti, textCmd = ti.Update(msg)
		cmd = textCmd
		allActions = append(allActions, types.UpdateTextAction{Text: ti.Value(), Mode: h.currentMode})
	}

	return allActions, cmd
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// ModeHandler returns the handler registered for mode
func (h *Handler) ModeHandler(mode types.Mode) types.ModeHandler {
	return h.modes[mode]
}

// SearchInput returns the class search field
func (h *Handler) SearchInput() *textinput.Model {
	return h.search
}

// ReminderInput returns the reminder editor
func (h *Handler) ReminderInput() *textinput.Model {
	return h.reminder
}

// SetSearchText replaces the search field's value without emitting actions
func (h *Handler) SetSearchText(text string) {
	h.search.SetValue(text)
	h.search.CursorEnd()
}

// Keys returns the key map the modes match against
func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	switch mode {
	case types.ModeSearch, types.ModeReminders:
		return true
	default:
		return false
	}
}

func (h *Handler) textInputFor(mode types.Mode) *textinput.Model {
	if mode == types.ModeReminders {
		return h.reminder
	}
	return h.search
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		ti := h.textInputFor(h.currentMode)
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		return cmd
	}
	return nil
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	return textinput.Blink
}
