package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"odsearch/internal/domain"
)

// TabState is one entry of the tab bar
type TabState struct {
	Tab      domain.Tab
	Count    int
	Active   bool
	Disabled bool
}

// Row is one rendered search result
type Row struct {
	Kind        string
	Language    string // empty for concepts
	Name        string
	Description string
}

// ConceptRow converts a concept into a row
func ConceptRow(c domain.Concept) Row {
	return Row{Kind: c.Kind, Name: c.FullName(), Description: c.Description}
}

// AnnotationRow converts an annotation into a row
func AnnotationRow(a domain.Annotation) Row {
	return Row{Kind: a.Kind, Language: a.Language, Name: a.FullName(), Description: a.Description}
}

// ResultsViewState contains all the state needed to render search results
type ResultsViewState struct {
	Width            int
	Height           int
	Loading          bool
	Spinner          string
	Err              string
	Tabs             []TabState
	Rows             []Row // rows of the active tab
	Cursor           int
	Offset           int
	ShowDescriptions bool
}

// ResultsRenderer draws the tabbed result view
type ResultsRenderer struct {
	styles *Styles
}

// NewResultsRenderer creates a results renderer
func NewResultsRenderer(styles *Styles) *ResultsRenderer {
	return &ResultsRenderer{styles: styles}
}

// Render produces the results view. While loading only the spinner is shown.
func (r *ResultsRenderer) Render(state ResultsViewState) string {
	if state.Loading {
		return state.Spinner
	}
	if state.Err != "" {
		return r.styles.StatusError.Render("Search failed: "+state.Err) + "\n" +
			r.styles.Dim.Render("Press r to retry.")
	}

	tabBar := r.RenderTabBar(state.Tabs, state.Width)
	listHeight := state.Height - lipgloss.Height(tabBar)
	return tabBar + "\n" + r.renderList(state, listHeight)
}

// renderTab renders a single tab header
func (r *ResultsRenderer) renderTab(t TabState) string {
	label := fmt.Sprintf("%s %s", SchemaGlyph(t.Tab.Schema()), t.Tab.Title())
	badge := r.styles.Badge
	if t.Count == 0 {
		badge = r.styles.BadgeEmpty
	}
	content := label + badge.Render(fmt.Sprintf("%d", t.Count))

	switch {
	case t.Active:
		return r.styles.TabActive.Render(content)
	case t.Disabled:
		return r.styles.TabDisabled.Render(content)
	default:
		return r.styles.TabInactive.Render(content)
	}
}

// RenderTabBar renders the tab headers padded to width
func (r *ResultsRenderer) RenderTabBar(tabs []TabState, width int) string {
	rendered := make([]string, 0, len(tabs)+1)
	for _, t := range tabs {
		rendered = append(rendered, r.renderTab(t))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, rendered...)
	if gap := width - lipgloss.Width(row); gap > 0 {
		row = lipgloss.JoinHorizontal(lipgloss.Bottom, row, r.styles.TabGap.Render(strings.Repeat(" ", gap)))
	}
	return row
}

// TabAt returns the tab whose header covers column x
func (r *ResultsRenderer) TabAt(tabs []TabState, x int) (domain.Tab, bool) {
	if x < 0 {
		return "", false
	}
	left := 0
	for _, t := range tabs {
		w := lipgloss.Width(r.renderTab(t))
		if x < left+w {
			return t.Tab, true
		}
		left += w
	}
	return "", false
}

// TabBarHeight returns how many lines the tab bar occupies
func (r *ResultsRenderer) TabBarHeight(tabs []TabState) int {
	return lipgloss.Height(r.RenderTabBar(tabs, 0))
}

func (r *ResultsRenderer) renderList(state ResultsViewState, height int) string {
	if len(state.Rows) == 0 {
		return r.styles.Dim.Render("No results.")
	}

	var lines []string
	used := 0
	for i := state.Offset; i < len(state.Rows); i++ {
		row := state.Rows[i]
		h := RowHeight(row, state.ShowDescriptions)
		if height > 0 && used+h > height && i > state.Offset {
			break
		}
		lines = append(lines, r.RenderRow(row, i == state.Cursor, state.ShowDescriptions, state.Width))
		used += h
	}
	return strings.Join(lines, "\n")
}

// RenderRow renders a result: kind glyph, language glyph for annotations, full name and description
func (r *ResultsRenderer) RenderRow(row Row, selected, showDescription bool, width int) string {
	prefix := "  "
	if selected {
		prefix = r.styles.Cursor.Render("> ")
	}

	parts := []string{r.styles.Kind.Render(KindGlyph(row.Kind))}
	if row.Language != "" {
		parts = append(parts, r.styles.Language.Render(LanguageGlyph(row.Language)))
	}
	name := r.styles.Name.Render(row.Name)
	if selected {
		name = r.styles.Highlight.Render(row.Name)
	}
	parts = append(parts, name)
	line := prefix + strings.Join(parts, " ")

	if showDescription && row.Description != "" {
		desc := strings.Join(strings.Fields(row.Description), " ")
		style := r.styles.Description
		if width > 0 {
			style = style.MaxWidth(width)
		}
		line += "\n" + style.Render(desc)
	}
	return line
}

// RowHeight returns the number of lines a row occupies
func RowHeight(row Row, showDescription bool) int {
	if showDescription && row.Description != "" {
		return 2
	}
	return 1
}

// ScrollOffset returns the first visible row so that cursor fits in height lines
func ScrollOffset(rows []Row, cursor, offset, height int, showDescription bool) int {
	if cursor < 0 || len(rows) == 0 {
		return 0
	}
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if offset > cursor {
		offset = cursor
	}
	if offset < 0 {
		offset = 0
	}
	if height <= 0 {
		return offset
	}
	for offset < cursor {
		used := 0
		for i := offset; i <= cursor; i++ {
			used += RowHeight(rows[i], showDescription)
		}
		if used <= height {
			break
		}
		offset++
	}
	return offset
}

// RenderReport renders every tab with its full list, for non-interactive output
func (r *ResultsRenderer) RenderReport(tabs []TabState, lists map[domain.Tab][]Row, showDescription bool) string {
	var b strings.Builder
	b.WriteString(r.RenderTabBar(tabs, 0))
	for _, t := range tabs {
		b.WriteString("\n\n")
		b.WriteString(r.styles.Title.Render(fmt.Sprintf("%s %s (%d)", SchemaGlyph(t.Tab.Schema()), t.Tab.Title(), t.Count)))
		rows := lists[t.Tab]
		if len(rows) == 0 {
			b.WriteString("\n")
			b.WriteString(r.styles.Dim.Render("No results."))
			continue
		}
		for _, row := range rows {
			b.WriteString("\n")
			b.WriteString(r.RenderRow(row, false, showDescription, 0))
		}
	}
	b.WriteString("\n")
	return b.String()
}
