package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/crateview/internal/engine"
)

// renderPopup renders a modal message over the whole screen. Inspected
// records are syntax highlighted.
func (m Model) renderPopup(snap engine.Snapshot) string {
	width, height := m.modalSize()
	popup := snap.Popup

	titleStyle := styleTitle
	borderColor := colorBlue
	if popup.Title == "Error" {
		titleStyle = styleError.Bold(true)
		borderColor = colorRed
	}

	content := popup.Message
	if popup.JSON {
		content = highlightJSON(content)
	} else {
		content = lipgloss.NewStyle().Width(m.popupView.Width).Render(content)
	}

	view := m.popupView
	view.SetContent(content)
	view.SetYOffset(popup.Scroll)

	footer := styleSubtle.Render("↑/↓ scroll [Enter/ESC] close")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width - 2).
		Height(height - 2).
		Padding(1, 2).
		Render(titleStyle.Render(popup.Title) + "\n\n" + view.View() + "\n\n" + footer)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// highlightJSON colors a JSON document for the terminal. The plain text is
// returned if highlighting fails.
func highlightJSON(src string) string {
	var b strings.Builder
	if err := quick.Highlight(&b, src, "json", "terminal256", "monokai"); err != nil {
		return src
	}
	return strings.TrimRight(b.String(), "\n")
}
