package results

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"odsearch/internal/api"
	"odsearch/internal/domain"
	"odsearch/internal/eventbus"
	"odsearch/internal/ui/views"
)

// generations is shared by all models so a remounted view never accepts
// results addressed to an earlier instance
var generations atomic.Uint64

// Options configures a results Model
type Options struct {
	// SurfaceErrors moves a failed search to PhaseFailed instead of
	// leaving the spinner up
	SurfaceErrors    bool
	ShowDescriptions bool
	Spinner          spinner.Spinner
	Styles           *views.Styles
	Publisher        eventbus.Publisher
	Logger           *zap.Logger
	Context          context.Context // parent of every fetch, defaults to Background
}

// Model fetches and displays the concept and annotation results for one query
type Model struct {
	query    string
	searcher api.Searcher
	opts     Options
	logger   *zap.Logger
	keys     KeyMap
	renderer *views.ResultsRenderer

	state      State
	generation uint64
	pending    map[domain.Schema]bool
	failures   int
	cancel     context.CancelFunc

	spinner spinner.Model
	cursor  map[domain.Tab]int
	offset  map[domain.Tab]int
	width   int
	height  int
}

// New creates a results model for query. Call Init to start fetching.
func New(query string, searcher api.Searcher, opts Options) *Model {
	if opts.Styles == nil {
		opts.Styles = views.NewStyles()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if len(opts.Spinner.Frames) == 0 {
		opts.Spinner = spinner.Dot
	}

	return &Model{
		query:    query,
		searcher: searcher,
		opts:     opts,
		logger:   opts.Logger.Named("results"),
		keys:     DefaultKeyMap(),
		renderer: views.NewResultsRenderer(opts.Styles),
		state:    newState(),
		pending:  map[domain.Schema]bool{},
		spinner: spinner.New(
			spinner.WithSpinner(opts.Spinner),
			spinner.WithStyle(opts.Styles.Spinner),
		),
		cursor: map[domain.Tab]int{},
		offset: map[domain.Tab]int{},
	}
}

// SpinnerByName maps a configured spinner name to its animation
func SpinnerByName(name string) spinner.Spinner {
	switch name {
	case "line":
		return spinner.Line
	case "minidot":
		return spinner.MiniDot
	case "points":
		return spinner.Points
	default:
		return spinner.Dot
	}
}

// Init starts the first search
func (m *Model) Init() tea.Cmd {
	return m.search()
}

// Query returns the query currently shown
func (m *Model) Query() string {
	return m.query
}

// State returns a snapshot of the view state
func (m *Model) State() State {
	return m.state
}

// Keys returns the active key bindings
func (m *Model) Keys() KeyMap {
	return m.keys
}

// SetQuery restarts the search when q differs from the current query
func (m *Model) SetQuery(q string) tea.Cmd {
	if q == m.query {
		return nil
	}
	m.query = q
	return m.search()
}

// SetSize sets the area available to the view
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scroll(m.state.ActiveTab)
}

// Close abandons any in-flight fetches. Their results are discarded.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.generation = 0
	m.pending = map[domain.Schema]bool{}
}

// search starts a new cycle: both fetches run concurrently and the spinner
// shows until both have returned
func (m *Model) search() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(m.opts.Context)
	m.cancel = cancel
	m.generation = generations.Add(1)
	m.pending = map[domain.Schema]bool{
		domain.SchemaConcept:    true,
		domain.SchemaAnnotation: true,
	}
	m.failures = 0
	m.state.Phase = domain.PhaseLoading
	m.state.Err = nil

	m.logger.Debug("search started", zap.String("query", m.query), zap.Uint64("generation", m.generation))
	m.publish(domain.SearchStartedEvent{Query: m.query, Generation: m.generation})

	return tea.Batch(
		m.spinner.Tick,
		fetchConcepts(ctx, m.searcher, m.query, m.generation),
		fetchAnnotations(ctx, m.searcher, m.query, m.generation),
	)
}

func fetchConcepts(ctx context.Context, s api.Searcher, query string, generation uint64) tea.Cmd {
	return func() tea.Msg {
		concepts, err := s.SearchConcepts(ctx, query)
		return conceptsFetchedMsg{generation: generation, concepts: concepts, err: err}
	}
}

func fetchAnnotations(ctx context.Context, s api.Searcher, query string, generation uint64) tea.Cmd {
	return func() tea.Msg {
		annotations, err := s.SearchAnnotations(ctx, query)
		return annotationsFetchedMsg{generation: generation, annotations: annotations, err: err}
	}
}

// Update handles fetch results, spinner ticks and keys
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.state.Loading() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case conceptsFetchedMsg:
		if !m.accepts(msg.generation) {
			return nil
		}
		delete(m.pending, domain.SchemaConcept)
		if msg.err != nil {
			return m.fail(domain.SchemaConcept, msg.err)
		}
		if msg.concepts == nil {
			msg.concepts = []domain.Concept{}
		}
		m.state.Concepts = msg.concepts
		m.state.TotalConcepts = len(msg.concepts)
		m.resetCursor(domain.TabConcepts)
		m.publish(domain.ResultsFetchedEvent{
			Query: m.query, Generation: m.generation,
			Schema: domain.SchemaConcept, Count: m.state.TotalConcepts,
		})
		return m.settle()

	case annotationsFetchedMsg:
		if !m.accepts(msg.generation) {
			return nil
		}
		delete(m.pending, domain.SchemaAnnotation)
		if msg.err != nil {
			return m.fail(domain.SchemaAnnotation, msg.err)
		}
		if msg.annotations == nil {
			msg.annotations = []domain.Annotation{}
		}
		m.state.Annotations = msg.annotations
		m.state.TotalAnnotations = len(msg.annotations)
		m.resetCursor(domain.TabAnnotations)
		m.publish(domain.ResultsFetchedEvent{
			Query: m.query, Generation: m.generation,
			Schema: domain.SchemaAnnotation, Count: m.state.TotalAnnotations,
		})
		return m.settle()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return nil
}

// accepts reports whether a fetch result belongs to the running cycle
func (m *Model) accepts(generation uint64) bool {
	if generation == 0 || generation != m.generation {
		m.logger.Debug("discarding stale result", zap.Uint64("generation", generation), zap.Uint64("current", m.generation))
		return false
	}
	return m.state.Phase == domain.PhaseLoading
}

// settle leaves the loading phase once both fetches succeeded
func (m *Model) settle() tea.Cmd {
	if len(m.pending) > 0 {
		return nil
	}
	m.release()
	if m.failures > 0 {
		// a failed fetch keeps the spinner up unless errors are surfaced
		return nil
	}
	m.state.Phase = domain.PhaseLoaded
	m.logger.Debug("search completed",
		zap.String("query", m.query),
		zap.Int("concepts", m.state.TotalConcepts),
		zap.Int("annotations", m.state.TotalAnnotations),
	)
	m.publish(domain.SearchCompletedEvent{
		Query:            m.query,
		Generation:       m.generation,
		TotalConcepts:    m.state.TotalConcepts,
		TotalAnnotations: m.state.TotalAnnotations,
	})
	return nil
}

func (m *Model) fail(schema domain.Schema, err error) tea.Cmd {
	m.failures++
	m.logger.Warn("fetch failed",
		zap.String("query", m.query),
		zap.String("schema", string(schema)),
		zap.Error(err),
	)
	m.publish(domain.FetchFailedEvent{Query: m.query, Generation: m.generation, Schema: schema, Err: err})

	if m.opts.SurfaceErrors {
		m.state.Phase = domain.PhaseFailed
		m.state.Err = fmt.Errorf("%s search: %w", schema, err)
		m.release()
		return nil
	}
	return m.settle()
}

// release frees the cycle's context once no fetch needs it
func (m *Model) release() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Retry restarts a failed search
func (m *Model) Retry() tea.Cmd {
	if m.state.Phase != domain.PhaseFailed {
		return nil
	}
	return m.search()
}

// SelectTab activates tab unless it is disabled. Reports whether it changed.
func (m *Model) SelectTab(tab domain.Tab) bool {
	if m.state.Phase != domain.PhaseLoaded || m.state.TabDisabled(tab) || tab == m.state.ActiveTab {
		return false
	}
	m.state.ActiveTab = tab
	m.scroll(tab)
	return true
}

func (m *Model) cycleTab(delta int) {
	current := 0
	for i, t := range domain.Tabs {
		if t == m.state.ActiveTab {
			current = i
		}
	}
	n := len(domain.Tabs)
	for step := 1; step < n; step++ {
		if m.SelectTab(domain.Tabs[((current+delta*step)%n+n)%n]) {
			return
		}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.state.Phase {
	case domain.PhaseFailed:
		if key.Matches(msg, m.keys.Retry) {
			return m.Retry()
		}
		return nil
	case domain.PhaseLoaded:
	default:
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.NextTab):
		m.cycleTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.cycleTab(-1)
	case key.Matches(msg, m.keys.ConceptsTab):
		m.SelectTab(domain.TabConcepts)
	case key.Matches(msg, m.keys.AnnotationsTab):
		m.SelectTab(domain.TabAnnotations)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Open):
		return m.openSelected()
	}
	return nil
}

// HandleClick handles a left click at view-relative coordinates
func (m *Model) HandleClick(x, y int) tea.Cmd {
	if m.state.Phase != domain.PhaseLoaded {
		return nil
	}
	tabs := m.tabStates()
	barHeight := m.renderer.TabBarHeight(tabs)
	if y < barHeight {
		if tab, ok := m.renderer.TabAt(tabs, x); ok {
			m.SelectTab(tab)
		}
		return nil
	}

	// rows start below the tab bar
	tab := m.state.ActiveTab
	rows := m.rows(tab)
	line := barHeight
	for i := m.offset[tab]; i < len(rows); i++ {
		h := views.RowHeight(rows[i], m.opts.ShowDescriptions)
		if y < line+h {
			if m.cursor[tab] == i {
				return m.openSelected()
			}
			m.cursor[tab] = i
			m.scroll(tab)
			return nil
		}
		line += h
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	tab := m.state.ActiveTab
	n := m.state.Len(tab)
	if n == 0 {
		return
	}
	c := m.cursor[tab] + delta
	if c < 0 {
		c = 0
	}
	if c >= n {
		c = n - 1
	}
	m.cursor[tab] = c
	m.scroll(tab)
}

func (m *Model) resetCursor(tab domain.Tab) {
	m.cursor[tab] = 0
	m.offset[tab] = 0
}

func (m *Model) scroll(tab domain.Tab) {
	height := m.listHeight()
	m.offset[tab] = views.ScrollOffset(m.rows(tab), m.cursor[tab], m.offset[tab], height, m.opts.ShowDescriptions)
}

func (m *Model) listHeight() int {
	if m.height <= 0 {
		return 0
	}
	h := m.height - m.renderer.TabBarHeight(m.tabStates())
	if h < 1 {
		h = 1
	}
	return h
}

// Selected returns the raw record and title under the cursor
func (m *Model) Selected() (title string, raw json.RawMessage, ok bool) {
	tab := m.state.ActiveTab
	i := m.cursor[tab]
	switch tab {
	case domain.TabAnnotations:
		if i >= len(m.state.Annotations) {
			return "", nil, false
		}
		a := m.state.Annotations[i]
		return a.FullName(), a.Raw, true
	default:
		if i >= len(m.state.Concepts) {
			return "", nil, false
		}
		c := m.state.Concepts[i]
		return c.FullName(), c.Raw, true
	}
}

func (m *Model) openSelected() tea.Cmd {
	title, raw, ok := m.Selected()
	if !ok {
		return nil
	}
	content := string(raw)
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err == nil {
		content = buf.String()
	}
	return func() tea.Msg {
		return OpenRecordMsg{Title: title, Content: title + "\n\n" + content + "\n"}
	}
}

func (m *Model) rows(tab domain.Tab) []views.Row {
	if tab == domain.TabAnnotations {
		rows := make([]views.Row, len(m.state.Annotations))
		for i, a := range m.state.Annotations {
			rows[i] = views.AnnotationRow(a)
		}
		return rows
	}
	rows := make([]views.Row, len(m.state.Concepts))
	for i, c := range m.state.Concepts {
		rows[i] = views.ConceptRow(c)
	}
	return rows
}

func (m *Model) tabStates() []views.TabState {
	tabs := make([]views.TabState, len(domain.Tabs))
	for i, t := range domain.Tabs {
		tabs[i] = views.TabState{
			Tab:      t,
			Count:    m.state.Count(t),
			Active:   t == m.state.ActiveTab,
			Disabled: m.state.TabDisabled(t),
		}
	}
	return tabs
}

// View renders the spinner while loading, otherwise the tabbed results
func (m *Model) View() string {
	state := views.ResultsViewState{
		Width:            m.width,
		Height:           m.height,
		Loading:          m.state.Loading(),
		Spinner:          m.spinner.View(),
		ShowDescriptions: m.opts.ShowDescriptions,
	}
	if m.state.Err != nil {
		state.Err = m.state.Err.Error()
	}
	if m.state.Phase == domain.PhaseLoaded {
		tab := m.state.ActiveTab
		state.Tabs = m.tabStates()
		state.Rows = m.rows(tab)
		state.Cursor = m.cursor[tab]
		state.Offset = m.offset[tab]
	}
	return m.renderer.Render(state)
}

func (m *Model) publish(event domain.DomainEvent) {
	if m.opts.Publisher != nil {
		m.opts.Publisher.Publish(event)
	}
}
