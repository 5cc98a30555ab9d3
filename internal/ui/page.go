package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"odsearch/internal/router"
	"odsearch/internal/ui/results"
)

// ResultsFactory builds the results view for a query
type ResultsFactory func(query string) *results.Model

// SearchPage binds the results view to the route. The view is mounted while
// the route carries a query and unmounted otherwise.
type SearchPage struct {
	factory ResultsFactory
	results *results.Model
	width   int
	height  int
}

// NewSearchPage creates an unmounted page
func NewSearchPage(factory ResultsFactory) *SearchPage {
	return &SearchPage{factory: factory}
}

// SetRoute mounts, updates or unmounts the results view for route
func (p *SearchPage) SetRoute(route router.Route) tea.Cmd {
	if !route.HasQuery() {
		p.unmount()
		return nil
	}
	if p.results == nil {
		p.results = p.factory(route.Query)
		p.results.SetSize(p.width, p.height)
		return p.results.Init()
	}
	return p.results.SetQuery(route.Query)
}

func (p *SearchPage) unmount() {
	if p.results != nil {
		p.results.Close()
		p.results = nil
	}
}

// Mounted reports whether a results view is shown
func (p *SearchPage) Mounted() bool {
	return p.results != nil
}

// Results returns the mounted view, or nil
func (p *SearchPage) Results() *results.Model {
	return p.results
}

// SetSize sets the area available to the page
func (p *SearchPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	if p.results != nil {
		p.results.SetSize(width, height)
	}
}

// Update forwards msg to the mounted view
func (p *SearchPage) Update(msg tea.Msg) tea.Cmd {
	if p.results == nil {
		return nil
	}
	return p.results.Update(msg)
}

// HandleClick forwards a page-relative click
func (p *SearchPage) HandleClick(x, y int) tea.Cmd {
	if p.results == nil {
		return nil
	}
	return p.results.HandleClick(x, y)
}

// View renders the mounted view, or nothing
func (p *SearchPage) View() string {
	if p.results == nil {
		return ""
	}
	return p.results.View()
}

// Close unmounts the page
func (p *SearchPage) Close() {
	p.unmount()
}
