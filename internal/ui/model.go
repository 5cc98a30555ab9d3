package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"odsearch/internal/api"
	"odsearch/internal/config"
	"odsearch/internal/domain"
	"odsearch/internal/eventbus"
	"odsearch/internal/router"
	"odsearch/internal/ui/results"
	"odsearch/internal/ui/views"
)

// headerHeight is the number of lines above the page
const headerHeight = 2

// Dependencies are the collaborators of the UI model
type Dependencies struct {
	Config   *config.Config
	Searcher api.Searcher
	Bus      eventbus.Publisher
	Logger   *zap.Logger
	Context  context.Context // cancelled on shutdown, aborts in-flight fetches
}

// Model represents the UI state
type Model struct {
	config *config.Config
	bus    eventbus.Publisher
	logger *zap.Logger

	router  *router.Router
	route   router.Route
	page    *SearchPage
	input   textinput.Model
	editing bool

	width  int
	height int
	help   help.Model
	keys   keyMap
	styles *views.Styles
	status string

	pager *Pager
	popup string // record shown inline when the pager cannot run
}

// NewModel creates a new UI model showing initialPath
func NewModel(deps Dependencies, initialPath string) (*Model, error) {
	if deps.Config == nil {
		deps.Config = config.DefaultConfig()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Context == nil {
		deps.Context = context.Background()
	}

	r := router.New()
	if initialPath == "" {
		initialPath = router.PatternSearch
	}
	route, err := r.Resolve(initialPath)
	if err != nil {
		return nil, err
	}

	styles := views.NewStyles()
	opts := results.Options{
		SurfaceErrors:    deps.Config.Search.SurfaceErrors,
		ShowDescriptions: deps.Config.UI.ShowDescriptions,
		Spinner:          results.SpinnerByName(deps.Config.UI.Spinner),
		Styles:           styles,
		Publisher:        deps.Bus,
		Logger:           deps.Logger,
		Context:          deps.Context,
	}
	searcher := deps.Searcher

	input := textinput.New()
	input.Prompt = "Search: "
	input.PromptStyle = styles.QueryPrompt
	input.Placeholder = "concept or annotation"
	input.CharLimit = 256

	m := &Model{
		config: deps.Config,
		bus:    deps.Bus,
		logger: deps.Logger.Named("ui"),
		router: r,
		route:  route,
		page: NewSearchPage(func(query string) *results.Model {
			return results.New(query, searcher, opts)
		}),
		input:  input,
		help:   help.New(),
		keys:   newKeyMap(),
		styles: styles,
		pager:  NewPager(),
	}
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Route returns the current route
func (m *Model) Route() router.Route {
	return m.route
}

// Page returns the search page
func (m *Model) Page() *SearchPage {
	return m.page
}

// Editing reports whether the query bar has focus
func (m *Model) Editing() bool {
	return m.editing
}

// Init mounts the page for the initial route
func (m *Model) Init() tea.Cmd {
	m.publishRoute()
	cmds := []tea.Cmd{m.page.SetRoute(m.route)}
	if !m.route.HasQuery() {
		cmds = append(cmds, m.startEditing())
	}
	return tea.Batch(cmds...)
}

// Navigate resolves path and moves to its route
func (m *Model) Navigate(path string) tea.Cmd {
	route, err := m.router.Resolve(path)
	if err != nil {
		m.logger.Warn("navigation failed", zap.String("path", path), zap.Error(err))
		return m.setStatus(fmt.Sprintf("Unknown location %s", path))
	}
	if route.Path == m.route.Path {
		return nil
	}
	m.route = route
	m.publishRoute()
	return m.page.SetRoute(route)
}

func (m *Model) publishRoute() {
	m.logger.Debug("route changed", zap.String("path", m.route.Path), zap.String("query", m.route.Query))
	if m.bus != nil {
		m.bus.Publish(domain.RouteChangedEvent{Path: m.route.Path, Query: m.route.Query})
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(m.input.Prompt) - 1
		m.resizePage()
		return m, nil

	case tea.KeyMsg:
		if m.popup != "" {
			switch msg.String() {
			case "esc", "q", "enter":
				m.popup = ""
			case "ctrl+c":
				m.page.Close()
				return m, tea.Quit
			}
			return m, nil
		}
		if m.editing {
			return m, m.handleEditingKey(msg)
		}
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		if m.popup != "" || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.Y < headerHeight {
			return m, nil
		}
		return m, m.page.HandleClick(msg.X, msg.Y-headerHeight)

	case NavigateMsg:
		return m, m.Navigate(msg.Path)

	case results.OpenRecordMsg:
		if !m.pager.Available() {
			m.popup = msg.Content
			return m, nil
		}
		return m, m.pager.showCmd(msg.Title, msg.Content)

	case pagerClosedMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed, falling back to popup", zap.String("title", msg.title), zap.Error(msg.err))
			m.popup = msg.content
			return m, nil
		}
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	// fetch results and spinner ticks belong to the page, cursor blink to the input
	cmds := []tea.Cmd{m.page.Update(msg)}
	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.page.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.Search):
		return m.startEditing()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizePage()
		return nil
	}
	return m.page.Update(msg)
}

func (m *Model) handleEditingKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.page.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.Submit):
		query := strings.TrimSpace(m.input.Value())
		m.stopEditing()
		return m.Navigate(router.Path(query))
	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) startEditing() tea.Cmd {
	m.editing = true
	m.input.SetValue(m.route.Query)
	m.input.CursorEnd()
	m.resizePage()
	return m.input.Focus()
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.resizePage()
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case domain.SearchCompletedEvent:
		if e.Query != m.route.Query {
			return nil
		}
		return m.setStatus(fmt.Sprintf("%d concepts, %d annotations", e.TotalConcepts, e.TotalAnnotations))
	case domain.ConfigSavedEvent:
		return m.setStatus("Config saved to " + e.Path)
	}
	return nil
}

func (m *Model) setStatus(status string) tea.Cmd {
	m.status = status
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) helpView() string {
	if m.editing {
		return m.help.View(editingKeyMap{keys: m.keys})
	}
	return m.help.View(m.keys)
}

func (m *Model) footer() string {
	return m.styles.Status.Render(m.status) + "\n" + m.styles.Help.Render(m.helpView())
}

// resizePage gives the page the space between header and footer
func (m *Model) resizePage() {
	if m.width == 0 {
		return
	}
	h := m.height - headerHeight - lipgloss.Height(m.footer())
	if h < 1 {
		h = 1
	}
	m.page.SetSize(m.width, h)
}

func (m *Model) header() string {
	title := m.styles.Title.Render("odsearch") + "  " + m.styles.Dim.Render(m.route.Path)
	if m.editing {
		return title + "\n" + m.input.View()
	}
	if m.route.HasQuery() {
		return title + "\n" + m.styles.QueryPrompt.Render("Search: ") + m.styles.Query.Render(m.route.Query)
	}
	return title + "\n" + m.styles.Dim.Render("Press / to search.")
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	footer := m.footer()
	bodyHeight := m.height - headerHeight - lipgloss.Height(footer)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	body := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(m.page.View())

	screen := lipgloss.JoinVertical(lipgloss.Left, m.header(), body, footer)
	if m.popup != "" {
		hint := m.styles.Dim.Render("esc to close")
		return views.NewPopupRenderer(m.styles).RenderPopupOverlay(screen, m.popup+"\n\n"+hint, m.width, m.height)
	}
	return screen
}

// ErrUnknownPath is returned by ResolveStartPath for unroutable arguments
var ErrUnknownPath = errors.New("unknown path")

// ResolveStartPath turns a command-line argument into a route path. Arguments
// starting with "/" are taken as paths, anything else as a query.
func ResolveStartPath(arg string) (string, error) {
	if arg == "" {
		return router.PatternSearch, nil
	}
	if strings.HasPrefix(arg, "/") {
		if _, err := router.New().Resolve(arg); err != nil {
			return "", fmt.Errorf("%w: %s", ErrUnknownPath, arg)
		}
		return arg, nil
	}
	return router.Path(arg), nil
}
