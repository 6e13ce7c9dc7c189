package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/studiowebux/crateview/internal/engine"
	"github.com/studiowebux/crateview/internal/mode"
	"github.com/studiowebux/crateview/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"} // Dark blue / Blue
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleTabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan).
			Underline(true)

	styleTab = lipgloss.NewStyle().
			Foreground(colorGray)
)

var spinnerFrames = spinner.Dot.Frames

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	snap := m.state.Snapshot()

	switch snap.Mode.Kind() {
	case mode.Popup:
		return m.renderPopup(snap)
	case mode.Help:
		return m.renderHelp(snap)
	}

	var body string
	if m.screen() == mode.Summary {
		body = m.renderSummary(snap)
	} else {
		body = m.renderPicker(snap)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTabs(snap),
		lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body),
		m.renderPrompt(snap),
		m.renderStatusBar(snap),
	)
}

// renderTabs renders the screen tabs with the version on the right
func (m Model) renderTabs(snap engine.Snapshot) string {
	tabs := []struct {
		label  string
		active bool
	}{
		{"Crates", m.screen().IsPicker()},
		{"Summary", m.screen() == mode.Summary},
	}

	var parts []string
	for _, tab := range tabs {
		if tab.active {
			parts = append(parts, styleTabActive.Render(tab.label))
		} else {
			parts = append(parts, styleTab.Render(tab.label))
		}
	}
	left := strings.Join(parts, styleSubtle.Render(" | "))

	right := styleSubtle.Render("crateview " + m.version)
	if snap.Loading {
		right = styleWarning.Render(spinnerFrames[snap.Spinner%len(spinnerFrames)]) + " " + right
	}

	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", spacing) + right
}

// renderPicker renders the crate table and, when shown, the info pane
func (m Model) renderPicker(snap engine.Snapshot) string {
	var b strings.Builder
	b.WriteString(styleSubtle.Render(m.tableRow("Name", "Version", "Downloads", "Updated", "Description")))

	switch {
	case len(snap.Rows) == 0 && snap.Loading:
		b.WriteString("\n" + styleSubtle.Render("Loading..."))
	case len(snap.Rows) == 0 && snap.Filter != "":
		b.WriteString("\n" + styleSubtle.Render(fmt.Sprintf("No crates on this page match %q", snap.Filter)))
	case len(snap.Rows) == 0:
		b.WriteString("\n" + styleSubtle.Render("No crates"))
	}

	for i := snap.Start; i < snap.End && i < len(snap.Rows); i++ {
		c := snap.Rows[i]
		line := m.tableRow(
			c.Name,
			c.MaxVersion,
			humanize.Comma(int64(c.Downloads)),
			humanize.Time(c.UpdatedAt),
			c.Description,
		)
		if i == snap.Selected {
			line = styleSelected.Render(line)
		}
		b.WriteString("\n" + line)
	}

	listHeight := m.listRows() + HeaderHeight
	list := lipgloss.NewStyle().Height(listHeight).MaxHeight(listHeight).Render(b.String())

	if m.screen() != mode.PickerShowInfo {
		return list
	}
	return lipgloss.JoinVertical(lipgloss.Left, list, m.renderInfo(snap))
}

// tableRow lays out one row of the crate table across the full width
func (m Model) tableRow(name, version, downloads, updated, description string) string {
	rest := m.width - ColumnName - ColumnVersion - ColumnDownloads - ColumnUpdated - 4
	return fit(name, ColumnName) + " " +
		fit(version, ColumnVersion) + " " +
		fitRight(downloads, ColumnDownloads) + " " +
		fit(updated, ColumnUpdated) + " " +
		fit(description, rest)
}

// renderInfo renders the selected crate's detail pane
func (m Model) renderInfo(snap engine.Snapshot) string {
	room := m.infoHeight() - 2
	lines, versions := infoLines(snap)
	if len(lines) > room {
		lines = lines[:room]
	}
	lines = append(lines, versions[:min(len(versions), room-len(lines))]...)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(m.width - 2).
		Height(room).
		Render(strings.Join(lines, "\n"))
}

// infoLines returns the crate facts and the version list starting at the
// scroll position
func infoLines(snap engine.Snapshot) ([]string, []string) {
	if snap.Crate == nil {
		return []string{styleSubtle.Render("No crate selected")}, nil
	}

	c := *snap.Crate
	if snap.Detail != nil {
		c = snap.Detail.Crate
	}

	lines := []string{
		styleTitle.Render(c.Name) + " " + styleSubtle.Render(c.MaxVersion),
	}
	if c.Description != "" {
		lines = append(lines, strings.TrimSpace(c.Description))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Downloads: %s (recent %s)", humanize.Comma(int64(c.Downloads)), humanize.Comma(int64(c.RecentDownloads))),
		fmt.Sprintf("Created: %s   Updated: %s", humanize.Time(c.CreatedAt), humanize.Time(c.UpdatedAt)),
	)
	for _, link := range []struct{ label, url string }{
		{"Homepage", c.Homepage},
		{"Repository", c.Repository},
		{"Documentation", c.Documentation},
	} {
		if link.url != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", link.label, link.url))
		}
	}

	if snap.Detail == nil {
		if snap.Loading {
			lines = append(lines, "", styleSubtle.Render("Loading details..."))
		}
		return lines, nil
	}

	d := snap.Detail
	if len(d.Keywords) > 0 {
		names := make([]string, len(d.Keywords))
		for i, k := range d.Keywords {
			names[i] = k.Keyword
		}
		lines = append(lines, "Keywords: "+strings.Join(names, ", "))
	}
	if len(d.Categories) > 0 {
		names := make([]string, len(d.Categories))
		for i, cat := range d.Categories {
			names[i] = cat.Category
		}
		lines = append(lines, "Categories: "+strings.Join(names, ", "))
	}

	lines = append(lines, "", styleTitle.Render(fmt.Sprintf("Versions (%d)", len(d.Versions))))
	start := min(snap.InfoScroll, max(len(d.Versions)-1, 0))
	end := min(start+InfoVersionLimit, len(d.Versions))
	versions := make([]string, 0, end-start)
	for _, v := range d.Versions[start:end] {
		versions = append(versions, versionLine(v))
	}
	return lines, versions
}

func versionLine(v types.Version) string {
	line := fmt.Sprintf("  %s %s %s",
		fit(v.Num, ColumnVersion),
		fitRight(humanize.Comma(int64(v.Downloads)), ColumnDownloads),
		humanize.Time(v.CreatedAt),
	)
	if v.Yanked {
		line += " " + styleError.Render("yanked")
	}
	return line
}

// renderSummary renders the registry front page
func (m Model) renderSummary(snap engine.Snapshot) string {
	if snap.Summary == nil {
		if snap.Loading {
			return styleSubtle.Render("Loading summary...")
		}
		return styleSubtle.Render("Summary unavailable")
	}

	header := fmt.Sprintf("%s crates   %s downloads",
		styleTitle.Render(humanize.Comma(int64(snap.Summary.NumCrates))),
		styleTitle.Render(humanize.Comma(int64(snap.Summary.NumDownloads))),
	)

	var tabs []string
	for _, section := range engine.Sections() {
		if section == snap.SummarySection {
			tabs = append(tabs, styleTabActive.Render(section.String()))
		} else {
			tabs = append(tabs, styleTab.Render(section.String()))
		}
	}

	height := max(m.bodyHeight()-3, 1)
	offset := max(snap.SummarySelected-height+1, 0)
	end := min(offset+height, len(snap.SummaryItems))

	rest := max(m.width-ColumnName-ColumnDownloads-2, 0)
	var rows []string
	for i := offset; i < end; i++ {
		item := snap.SummaryItems[i]
		line := fit(item.Label, ColumnName) + " " + fitRight(item.Detail, ColumnDownloads) + " "
		if item.Crate != nil {
			line += fit(item.Crate.Description, rest)
		} else {
			line += strings.Repeat(" ", rest)
		}
		if i == snap.SummarySelected {
			line = styleSelected.Render(line)
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		rows = append(rows, styleSubtle.Render("Nothing here"))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		strings.Join(tabs, styleSubtle.Render(" | ")),
		"",
		strings.Join(rows, "\n"),
	)
}

// renderPrompt renders the search or filter prompt, or the active query
func (m Model) renderPrompt(snap engine.Snapshot) string {
	switch snap.Mode.Kind() {
	case mode.Search:
		line := styleTitle.Render("Search: ") + m.input.View() +
			styleSubtle.Render(" sort: "+snap.DraftSort.Label())
		if len(snap.Suggestions) > 0 {
			line += styleSubtle.Render("  " + strings.Join(snap.Suggestions, " · "))
		}
		return fit(line, m.width)
	case mode.Filter:
		return fit(styleTitle.Render("Filter: ")+m.input.View(), m.width)
	}

	var parts []string
	if snap.Query != "" {
		parts = append(parts, "Query: "+snap.Query)
	}
	if snap.Filter != "" {
		parts = append(parts, "Filter: "+snap.Filter)
	}
	return styleSubtle.Render(fit(strings.Join(parts, "   "), m.width))
}

// renderStatusBar renders the status bar
func (m Model) renderStatusBar(snap engine.Snapshot) string {
	left := styleTitle.Render(snap.Mode.Kind().Title())
	if m.screen().IsPicker() {
		left += fmt.Sprintf("  %s  %s  Sort: %s", snap.PageLabel, snap.ResultsLabel, snap.Sort.Label())
	}
	if pending := m.chords.Pending(); len(pending) > 0 {
		left += "  " + styleWarning.Render(strings.Join(pending, " ")+" …")
	}

	var right string
	switch {
	case snap.Err != "":
		right = styleError.Render(snap.Err)
	case m.statusMsg != "" && m.statusErr:
		right = styleError.Render(m.statusMsg)
	case m.statusMsg != "":
		right = styleSuccess.Render(m.statusMsg)
	case m.update != nil && m.update.Available:
		right = styleWarning.Render("Update available: v" + m.update.Latest)
	default:
		right = styleSubtle.Render("? help | / search | q quit")
	}

	room := m.width - lipgloss.Width(left) - 1
	if lipgloss.Width(right) > room {
		right = fit(right, max(room, 0))
	}
	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", spacing) + right
}

// fit truncates or pads s to exactly width cells
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if lipgloss.Width(s) > width {
		s = truncate(s, width)
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

// fitRight is fit with the text aligned right
func fitRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		s = truncate(s, width)
	}
	return strings.Repeat(" ", width-lipgloss.Width(s)) + s
}

// truncate cuts s to width cells, ending with an ellipsis. Styled text
// keeps its escape sequences intact.
func truncate(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}
