package ui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"examfinder/internal/agenda"
	"examfinder/internal/config"
	"examfinder/internal/domain"
	"examfinder/internal/eventbus"
	"examfinder/internal/reminder"
	"examfinder/internal/search"
	"examfinder/internal/session"
	"examfinder/internal/ui/input"
	inputtypes "examfinder/internal/ui/input/types"
	"examfinder/internal/ui/viewmodels"
	"examfinder/internal/ui/views"
)

// statusTimeout is how long a status message stays visible
const statusTimeout = 4 * time.Second

// Model represents the UI state. It owns the session; nothing else touches
// it while the program runs.
type Model struct {
	session   *session.Session
	bus       eventbus.EventBus
	config    *config.Config
	configSvc config.ConfigService
	logger    zerolog.Logger
	loc       *time.Location
	now       func() time.Time
	since     time.Time

	// UI-specific state not in the session
	width       int
	height      int
	cursor      int
	showHelp    bool
	refreshing  bool
	status      string
	statusErr   bool
	statusSeq   int
	readyMarker bool

	keys         inputtypes.KeyMap
	inputHandler *input.Handler
	viewModel    *viewmodels.ViewModel
	renderer     *views.Renderer
	pager        func(content string) tea.Cmd
}

// Option configures a Model
type Option func(*Model)

// WithConfigService persists reminder edits through svc
func WithConfigService(svc config.ConfigService) Option {
	return func(m *Model) { m.configSvc = svc }
}

// WithLogger sets the model logger
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithLocation sets the time zone exam times are interpreted in
func WithLocation(loc *time.Location) Option {
	return func(m *Model) { m.loc = loc }
}

// WithReadyMarker prints views.ReadyMarker once data is shown
func WithReadyMarker(enabled bool) Option {
	return func(m *Model) { m.readyMarker = enabled }
}

// WithPager replaces the ov pager, for tests
func WithPager(pager func(content string) tea.Cmd) Option {
	return func(m *Model) { m.pager = pager }
}

// NewModel creates a new UI model
func NewModel(s *session.Session, bus eventbus.EventBus, cfg *config.Config, opts ...Option) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	keys := inputtypes.DefaultKeyMap()

	m := &Model{
		session:      s,
		bus:          bus,
		config:       cfg,
		logger:       zerolog.Nop(),
		loc:          time.Local,
		now:          time.Now,
		keys:         keys,
		inputHandler: input.New(keys),
		viewModel:    viewmodels.NewViewModel(s, cfg, keys),
		renderer:     views.NewRenderer(),
		pager:        openPager,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.since = cfg.Since(m.now())

	// a deep link seeds the query before any key is pressed
	m.inputHandler.SetSearchText(s.Text())
	return m
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.inputHandler.Init(), tick())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		ctx := m.inputContext()
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case tickMsg:
		// the uptime readout is derived in View; the session is not involved
		return m, tick()

	case pagerMsg:
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("pager failed")
			return m, m.setStatus(msg.err.Error(), true)
		}
		return m, nil

	case statusMsg:
		return m, m.setStatus(msg.text, msg.isError)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	default:
		// Handle non-keyboard messages for the text inputs (cursor blink)
		return m, m.inputHandler.Update(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetInput(m.inputHandler.CurrentMode(),
		m.inputHandler.SearchInput().View(),
		m.inputHandler.ReminderInput().View())
	m.viewModel.SetCursor(m.cursor)
	m.viewModel.SetStatus(m.status, m.statusErr)
	m.viewModel.SetRefreshing(m.refreshing)
	m.viewModel.SetUptime(FormatUptime(m.now().Sub(m.since)))
	m.viewModel.SetShowHelp(m.showHelp)
	m.viewModel.SetShowReady(m.readyMarker && m.session.Dataset().Status != domain.StatusLoading)

	return m.renderer.Render(m.viewModel.BuildViewState())
}

// Link returns the current location, printed on exit
func (m *Model) Link() string {
	return m.session.Link()
}

// Session returns the model's session
func (m *Model) Session() *session.Session {
	return m.session
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.UpdateTextAction:
		if a.Mode == inputtypes.ModeSearch && a.Text != m.session.Text() {
			m.session.Input(a.Text)
			m.cursor = 0
		}

	case inputtypes.ClearQueryAction:
		m.inputHandler.SetSearchText("")
		m.session.Input("")
		m.cursor = 0

	case inputtypes.ChooseAction:
		return m.choose()

	case inputtypes.ToggleAction:
		return m.toggleCurrent()

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeReminders {
			return m.applyReminders(a.Text)
		}

	case inputtypes.CancelTextAction, inputtypes.ChangeModeAction:
		// handled by the input handler

	case inputtypes.ReloadAction:
		if m.bus == nil {
			return nil
		}
		m.bus.Publish(eventbus.ReloadRequestedEvent{})
		return m.setStatus("Reloading exam schedule...", false)

	case inputtypes.OpenAgendaAction:
		return m.openAgenda()

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// choose picks the class under the cursor in a list, or toggles the exam
// under the cursor in a detail view
func (m *Model) choose() tea.Cmd {
	result := m.session.Result()
	switch result.Mode {
	case search.ModeList:
		if m.cursor < 0 || m.cursor >= len(result.Classes) {
			return nil
		}
		class := result.Classes[m.cursor]
		m.session.ChooseClass(class)
		m.inputHandler.SetSearchText(class)
		m.cursor = 0
		m.logger.Debug().Str("class", class).Msg("class chosen from list")
	case search.ModeDetail:
		return m.toggleCurrent()
	}
	return nil
}

func (m *Model) toggleCurrent() tea.Cmd {
	result := m.session.Result()
	if result.Mode != search.ModeDetail || m.cursor < 0 || m.cursor >= len(result.Exams) {
		return nil
	}
	m.session.Toggle(result.Exams[m.cursor].ID)
	return nil
}

func (m *Model) applyReminders(text string) tea.Cmd {
	offsets, err := reminder.Parse(text)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}

	m.session.SetReminders(offsets)
	m.config.Reminders = m.session.Reminders()

	if m.configSvc != nil {
		if err := m.configSvc.Save(m.config); err != nil {
			m.logger.Error().Err(err).Msg("failed to save reminders")
			return m.setStatus(err.Error(), true)
		}
	}

	if len(m.config.Reminders) == 0 {
		return m.setStatus("Reminders off", false)
	}
	return m.setStatus("Reminders set", false)
}

func (m *Model) openAgenda() tea.Cmd {
	result := m.session.Result()
	if result.Mode != search.ModeDetail {
		return m.setStatus("Choose a class to see its agenda", true)
	}

	entries := agenda.Build(m.session.SelectedExams(), m.session.Reminders(), m.loc)
	return m.pager(agenda.Render(result.Class(), entries))
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.DatasetLoadingEvent:
		if m.session.Dataset().Ready() {
			// keep showing the old data while it reloads
			m.refreshing = true
			return nil
		}
		m.session.SetDataset(domain.LoadingDataset())

	case eventbus.DatasetLoadedEvent:
		m.refreshing = false
		m.session.SetDataset(e.Dataset)
		m.inputHandler.SetSearchText(m.session.Text())
		m.clampCursor()
		return m.setStatus(fmt.Sprintf("Loaded %d exams", len(e.Dataset.Exams)), false)

	case eventbus.DatasetFailedEvent:
		err := e.Err
		if err == nil {
			err = errors.New("unknown error")
		}
		if m.session.Dataset().Ready() {
			m.refreshing = false
			return m.setStatus("Reload failed: "+err.Error(), true)
		}
		m.session.SetDataset(domain.FailedDataset(err))
	}
	return nil
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{
		CursorIndex: m.cursor,
		Items:       m.itemCount(),
		Mode:        string(m.session.Result().Mode),
		Reminders:   reminder.New(m.session.Reminders()...).String(),
	}
}

// itemCount is the number of rows the cursor moves over
func (m *Model) itemCount() int {
	result := m.session.Result()
	switch result.Mode {
	case search.ModeList:
		return len(result.Classes)
	case search.ModeDetail:
		return len(result.Exams)
	default:
		return 0
	}
}

func (m *Model) navigate(direction string) {
	total := m.itemCount()
	if total == 0 {
		m.cursor = 0
		return
	}

	page := m.height - 12
	if page < 1 {
		page = 10
	}

	switch direction {
	case "up":
		m.cursor--
	case "down":
		m.cursor++
	case "pageup":
		m.cursor -= page
	case "pagedown":
		m.cursor += page
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = total - 1
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	total := m.itemCount()
	if m.cursor >= total {
		m.cursor = total - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// setStatus shows text and schedules its removal
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isError
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// tick returns a command that sends a tick message after a delay
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
