package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"outcomepicker/internal/catalog"
	"outcomepicker/internal/config"
	"outcomepicker/internal/domain"
	"outcomepicker/internal/eventbus"
	"outcomepicker/internal/ui/services/navigation"
	"outcomepicker/internal/ui/services/search"
	"outcomepicker/internal/ui/services/selection"
	"outcomepicker/internal/ui/viewmodels"
	"outcomepicker/internal/ui/views"
)

// ReadyMarker is appended to the view when Options.ReadySignal is set
const ReadyMarker = "__READY__"

// Options configures a picker session
type Options struct {
	Source      catalog.Source
	Bus         eventbus.EventBus
	Config      *config.Config
	Preselected []string
	Pager       Pager
	ReadySignal bool
}

// Result is what the picker hands back when it closes
type Result struct {
	Confirmed bool
	IDs       []string
}

// Model is the picker program. State lives in the services, which are created
// when the tray opens and dropped when it closes.
type Model struct {
	source catalog.Source
	bus    eventbus.EventBus
	config *config.Config
	pager  Pager

	preselected []string
	readySignal bool

	keys         KeyMap
	help         help.Model
	input        textinput.Model
	spinner      spinner.Model
	renderer     *views.Renderer
	helpRenderer *HelpRenderer

	// session state, nil while closed
	selection *selection.Service
	search    *search.Service
	nav       *navigation.Service
	viewModel *viewmodels.ViewModel

	sessionID     string
	open          bool
	searchFocused bool
	spinning      bool
	inPagerMode   bool
	debounceToken uint64
	status        string

	width  int
	height int

	result Result
}

// NewModel creates a picker model
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	bus := opts.Bus
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	pager := opts.Pager
	if pager == nil {
		pager = OVPager{}
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type to filter outcomes"
	ti.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		source:       opts.Source,
		bus:          bus,
		config:       cfg,
		pager:        pager,
		preselected:  opts.Preselected,
		readySignal:  opts.ReadySignal,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		input:        ti,
		spinner:      sp,
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		height:       20,
	}
}

// Result returns the outcome of the session; valid once the program has quit
func (m *Model) Result() Result {
	return m.result
}

// Init opens the tray and issues the first search
func (m *Model) Init() tea.Cmd {
	req := m.openTray()
	return tea.Batch(m.fetch(req), m.startSpinner())
}

// openTray creates fresh session state
func (m *Model) openTray() search.Request {
	m.selection = selection.NewService(m.bus)
	m.search = search.NewService(m.bus, m.config.Picker.PageSize)
	m.nav = navigation.NewService(m.bus)
	m.nav.SetViewportHeight(m.height)
	m.viewModel = viewmodels.NewViewModel(m.config, m.selection, m.search, m.nav)

	m.sessionID = uuid.NewString()
	m.open = true
	m.status = ""
	m.result = Result{}

	if len(m.preselected) > 0 {
		m.selection.Select(m.preselected)
	}

	log.Printf("Picker %s opened with %d preselected outcomes", m.sessionID, m.selection.Count())
	m.bus.Publish(eventbus.PickerOpenedEvent{
		SessionID:   m.sessionID,
		Preselected: m.selection.Count(),
	})
	return m.search.SetQuery("")
}

// closeTray records the result and discards session state
func (m *Model) closeTray(confirmed bool) tea.Cmd {
	if !m.open {
		return tea.Quit
	}

	m.result = Result{Confirmed: confirmed}
	if confirmed {
		m.result.IDs = m.selection.Selected()
	}

	log.Printf("Picker %s closed (confirmed=%v, %d selected)", m.sessionID, confirmed, len(m.result.IDs))
	m.bus.Publish(eventbus.PickerClosedEvent{
		SessionID: m.sessionID,
		Confirmed: confirmed,
		Selected:  m.result.IDs,
	})

	m.open = false
	m.selection = nil
	m.search = nil
	m.nav = nil
	m.viewModel = nil
	return tea.Quit
}

// fetch runs a search request against the source
func (m *Model) fetch(req search.Request) tea.Cmd {
	source := m.source
	timeout := m.config.Source.Timeout
	return func() tea.Msg {
		if source == nil {
			return resultsMsg{req: req, err: fmt.Errorf("no outcome source configured")}
		}
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		page, err := source.Search(ctx, catalog.Query{
			Text:     req.Query,
			Page:     req.Page,
			PageSize: req.PageSize,
		})
		return resultsMsg{req: req, page: page, err: err}
	}
}

// startSpinner starts the tick loop unless it is already running
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// startSearch applies a query and fetches its first page
func (m *Model) startSearch(text string) tea.Cmd {
	req := m.search.SetQuery(text)
	m.status = ""
	return tea.Batch(m.fetch(req), m.startSpinner())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-16, 10)
		if m.open {
			m.nav.SetViewportHeight(msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		if !m.open {
			return m, nil
		}
		if m.searchFocused {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)

	case resultsMsg:
		return m, m.handleResults(msg)

	case debounceMsg:
		if !m.open || msg.token != m.debounceToken {
			return m, nil
		}
		return m, m.startSearch(msg.query)

	case spinner.TickMsg:
		if !m.open || !m.search.Loading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerDoneMsg:
		m.inPagerMode = false
		if msg.err != nil {
			log.Printf("Pager error: %v", msg.err)
			m.status = fmt.Sprintf("Pager failed: %v", msg.err)
			m.bus.Publish(eventbus.ErrorEvent{Message: "pager failed", Err: msg.err})
		}
		return m, nil
	}

	if m.searchFocused {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleResults(msg resultsMsg) tea.Cmd {
	if !m.open {
		return nil
	}

	if msg.err != nil {
		if m.search.Fail(msg.req, msg.err) {
			log.Printf("Search for '%s' failed: %v", msg.req.Query, msg.err)
			m.status = "Search failed"
		}
		return nil
	}

	if !m.search.Resolve(msg.req, msg.page) {
		return nil
	}
	m.nav.Reset()
	m.nav.SetCount(len(m.search.Entries()))

	// The page was clamped after the total shrank; load the page we landed on
	if m.search.Clamped() && m.search.Total() > 0 {
		m.status = fmt.Sprintf("Loading page %d", m.search.Page()+1)
		req := m.search.Refresh()
		return tea.Batch(m.fetch(req), m.startSpinner())
	}

	if pages := m.search.PageCount(); pages > 0 {
		m.status = fmt.Sprintf("Results updated for page %d of %d", m.search.Page()+1, pages)
	} else {
		m.status = ""
	}
	return nil
}

// handleSearchKey routes keys while the search box has focus
func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.closeTray(false)

	case msg.Type == tea.KeyEsc:
		m.searchFocused = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		// Apply pending text now instead of waiting for the debounce
		m.searchFocused = false
		m.input.Blur()
		m.debounceToken++
		if strings.TrimSpace(m.input.Value()) == m.search.Query() && !m.search.Loading() {
			return m, nil
		}
		return m, m.startSearch(m.input.Value())
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.debounce(m.input.Value()))
}

// debounce schedules a query; only the newest token is applied
func (m *Model) debounce(text string) tea.Cmd {
	m.debounceToken++
	if m.config.Picker.Debounce <= 0 {
		return m.startSearch(text)
	}
	token := m.debounceToken
	return tea.Tick(m.config.Picker.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{token: token, query: text}
	})
}

// handleKey routes keys in list mode
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	props := m.props()

	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Cancel):
		return m, m.closeTray(false)

	case key.Matches(msg, m.keys.Confirm):
		return m, m.closeTray(true)

	case key.Matches(msg, m.keys.Up):
		m.nav.Navigate(navigation.DirectionUp)
	case key.Matches(msg, m.keys.Down):
		m.nav.Navigate(navigation.DirectionDown)
	case key.Matches(msg, m.keys.PageUp):
		m.nav.Navigate(navigation.DirectionPageUp)
	case key.Matches(msg, m.keys.PageDown):
		m.nav.Navigate(navigation.DirectionPageDown)
	case key.Matches(msg, m.keys.Home):
		m.nav.Navigate(navigation.DirectionHome)
	case key.Matches(msg, m.keys.End):
		m.nav.Navigate(navigation.DirectionEnd)

	case key.Matches(msg, m.keys.Toggle):
		if o, ok := m.current(); ok {
			props.OnToggle(o.ID)
		}

	case key.Matches(msg, m.keys.ToggleAll):
		if !m.search.Loading() {
			props.OnSelectAll()
		}

	case key.Matches(msg, m.keys.PrevPage):
		return m, m.changePage(props, props.View.Page-1)
	case key.Matches(msg, m.keys.NextPage):
		return m, m.changePage(props, props.View.Page+1)

	case key.Matches(msg, m.keys.Search):
		m.searchFocused = true
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Reset):
		m.selection.Reset()
		m.input.SetValue("")
		m.debounceToken++
		return m, m.startSearch("")

	case key.Matches(msg, m.keys.Details):
		o, ok := m.current()
		if !ok {
			return m, nil
		}
		m.inPagerMode = true
		return m, m.pager.Show(m.helpRenderer.RenderOutcomeDetails(o, m.selection.IsSelected(o.ID), m.width))

	case key.Matches(msg, m.keys.Help):
		m.inPagerMode = true
		return m, m.pager.Show(m.helpRenderer.RenderHelpContent(m.keys))
	}
	return m, nil
}

func (m *Model) changePage(props viewmodels.Props, page int) tea.Cmd {
	req, ok := props.OnPage(page)
	if !ok {
		return nil
	}
	m.status = fmt.Sprintf("Loading page %d", req.Page+1)
	return tea.Batch(m.fetch(req), m.startSpinner())
}

// current returns the outcome under the cursor; nothing while a page loads
func (m *Model) current() (domain.Outcome, bool) {
	if m.search.Loading() {
		return domain.Outcome{}, false
	}
	entries := m.search.Entries()
	cursor := m.nav.Cursor()
	if cursor < 0 || cursor >= len(entries) {
		return domain.Outcome{}, false
	}
	return entries[cursor], true
}

func (m *Model) props() viewmodels.Props {
	return m.viewModel.Build(viewmodels.Chrome{
		Width:         m.width,
		Height:        m.height,
		SearchInput:   m.input.View(),
		SearchFocused: m.searchFocused,
		Spinner:       m.spinner.View(),
		Status:        m.status,
		Help:          m.help.View(m.keys),
	})
}

// View renders the tray
func (m *Model) View() string {
	if !m.open {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	out := m.renderer.Render(m.props().View)
	if m.readySignal {
		out += "\n" + ReadyMarker
	}
	return out
}
