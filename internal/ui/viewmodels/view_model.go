package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"

	"examfinder/internal/config"
	"examfinder/internal/domain"
	"examfinder/internal/reminder"
	"examfinder/internal/session"
	"examfinder/internal/ui/input/types"
	"examfinder/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	session    *session.Session
	config     *config.Config
	keys       types.KeyMap
	help       help.Model
	width      int
	height     int
	inputMode  types.Mode
	search     string
	reminder   string
	cursor     int
	status     string
	statusErr  bool
	refreshing bool
	uptime     string
	showHelp   bool
	showReady  bool
}

// NewViewModel creates a new view model
func NewViewModel(s *session.Session, cfg *config.Config, keys types.KeyMap) *ViewModel {
	return &ViewModel{
		session: s,
		config:  cfg,
		keys:    keys,
		help:    help.New(),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// SetInput sets the input mode and the rendered text fields
func (vm *ViewModel) SetInput(mode types.Mode, search, reminder string) {
	vm.inputMode = mode
	vm.search = search
	vm.reminder = reminder
}

// SetCursor sets the highlighted row
func (vm *ViewModel) SetCursor(cursor int) {
	vm.cursor = cursor
}

// SetStatus sets the status line
func (vm *ViewModel) SetStatus(text string, isError bool) {
	vm.status = text
	vm.statusErr = isError
}

// SetRefreshing marks a reload of an already shown dataset
func (vm *ViewModel) SetRefreshing(refreshing bool) {
	vm.refreshing = refreshing
}

// SetUptime sets the formatted uptime
func (vm *ViewModel) SetUptime(uptime string) {
	vm.uptime = uptime
}

// SetShowHelp toggles the full help popup
func (vm *ViewModel) SetShowHelp(show bool) {
	vm.showHelp = show
}

// SetShowReady enables the ready marker
func (vm *ViewModel) SetShowReady(show bool) {
	vm.showReady = show
}

// BuildViewState creates the view state for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	ds := vm.session.Dataset()
	result := vm.session.Result()

	selected := map[string]bool{}
	for _, id := range vm.session.Selected().IDs() {
		selected[id] = true
	}

	helpView := vm.help.ShortHelpView(vm.keys.ShortHelp())
	if vm.showHelp {
		helpView = vm.help.FullHelpView(vm.keys.FullHelp())
	}

	state := views.ViewState{
		Width:         vm.width,
		Height:        vm.height,
		Location:      vm.session.Link(),
		InputMode:     vm.inputMode.String(),
		SearchInput:   vm.search,
		ReminderInput: vm.reminder,
		Query:         vm.session.Text(),
		DatasetStatus: ds.Status,
		DatasetError:  ds.Err,
		Refreshing:    vm.refreshing,
		ResultMode:    string(result.Mode),
		Classes:       result.Classes,
		Exams:         result.Exams,
		Selected:      selected,
		Cursor:        vm.cursor,
		Reminders:     labels(vm.session.Reminders()),
		StatusMessage: vm.status,
		StatusIsError: vm.statusErr,
		Uptime:        vm.uptime,
		ShowHelp:      vm.showHelp,
		HelpView:      helpView,
		ShowReady:     vm.showReady,
	}
	if vm.config == nil || vm.config.UI.ShowProvenance {
		state.Provenance = Provenance(ds)
	}
	return state
}

// Provenance describes where a ready dataset came from
func Provenance(ds domain.Dataset) []string {
	if !ds.Ready() {
		return nil
	}

	var lines []string
	switch {
	case ds.SourceTitle != "" && ds.SourceURL != "":
		lines = append(lines, "Source: "+ds.SourceTitle+" <"+ds.SourceURL+">")
	case ds.SourceTitle != "":
		lines = append(lines, "Source: "+ds.SourceTitle)
	case ds.SourceURL != "":
		lines = append(lines, "Source: "+ds.SourceURL)
	}

	synced := ds.Manifest.GeneratedAt
	if synced == "" && !ds.LoadedAt.IsZero() {
		synced = ds.LoadedAt.Format("2006-01-02 15:04:05")
	}
	if synced != "" {
		lines = append(lines, "Synced at "+synced)
	}
	return lines
}

func labels(offsets []int) string {
	out := ""
	for i, o := range offsets {
		if i > 0 {
			out += ", "
		}
		out += reminder.Label(o) + " before"
	}
	return out
}
