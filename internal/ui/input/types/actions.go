package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// ChooseAction picks the class under the cursor in a list, or toggles the
// exam under the cursor in a detail view
type ChooseAction struct{}

func (a ChooseAction) Type() string { return "choose" }

// ToggleAction flips the exam under the cursor
type ToggleAction struct{}

func (a ToggleAction) Type() string { return "toggle" }

// ClearQueryAction empties the search field
type ClearQueryAction struct{}

func (a ClearQueryAction) Type() string { return "clear_query" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
	Mode Mode
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Command actions
type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

type OpenAgendaAction struct{}

func (a OpenAgendaAction) Type() string { return "open_agenda" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
