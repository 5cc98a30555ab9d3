package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay centers a popup over the greyed-out main content
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, width, height int) string {
	maxW := width - 6 // keep a small margin
	maxH := height - 2
	if maxW < 10 {
		maxW = 10
	}
	if maxH < 3 {
		maxH = 3
	}

	body := lipgloss.NewStyle().MaxWidth(maxW - 4).Render(popupContent)
	styled := pr.styles.Popup.Render(body)
	styled = lipgloss.NewStyle().MaxHeight(maxH).Render(styled)
	modalH := lipgloss.Height(styled)

	base := strings.Split(desaturateANSI(mainContent), "\n")
	for len(base) < height {
		base = append(base, "")
	}

	y := (height - modalH) / 2
	if y < 0 {
		y = 0
	}
	for i, line := range strings.Split(styled, "\n") {
		row := y + i
		if row >= len(base) {
			break
		}
		base[row] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}
	return strings.Join(base, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	plain := ansiRE.ReplaceAllString(s, "")
	return lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(plain)
}
