package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/crateview/internal/engine"
	"github.com/studiowebux/crateview/internal/keybinds"
	"github.com/studiowebux/crateview/internal/mode"
)

// helpLines lists the bindings reachable in mode k, one per line
func helpLines(keys *keybinds.Registry, k mode.Kind) []string {
	bindings := keys.ListBindings(k)
	lines := make([]string, 0, len(bindings))
	for _, b := range bindings {
		lines = append(lines, fmt.Sprintf("%-14s %s", b.Chord, keybinds.Describe(b.Action)))
	}
	return lines
}

// helpLineCounts bounds help scrolling per mode
func helpLineCounts(keys *keybinds.Registry) map[mode.Kind]int {
	counts := make(map[mode.Kind]int, len(mode.Kinds))
	for _, k := range mode.Kinds {
		counts[k] = len(helpLines(keys, k))
	}
	return counts
}

// renderHelp renders the key binding reference for the mode help was
// opened from
func (m Model) renderHelp(snap engine.Snapshot) string {
	width, height := m.modalSize()

	var header strings.Builder
	header.WriteString(styleTitle.Render("Key Bindings: " + snap.HelpMode.Title()))
	if m.update != nil && m.update.Available {
		header.WriteString("\n" + styleWarning.Render(fmt.Sprintf(
			"Update available: v%s -> v%s (%s)", m.update.Current, m.update.Latest, m.update.URL)))
	}

	view := m.helpView
	view.SetContent(strings.Join(helpLines(m.keys, snap.HelpMode), "\n"))
	view.SetYOffset(snap.HelpScroll)

	footer := styleSubtle.Render(fmt.Sprintf("↑/↓ scroll [ESC] close   crateview %s", m.version))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(width - 2).
		Height(height - 2).
		Padding(1, 2).
		Render(header.String() + "\n\n" + view.View() + "\n\n" + footer)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
