package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"docfind/internal/results"
)

var sortKeys = []results.SortKey{
	results.SortRelevance,
	results.SortDate,
	results.SortType,
	results.SortTitle,
}

// filterNames is the filter cycle: all, the configured categories, then the
// fallback bucket.
func (m Model) filterNames() []string {
	names := []string{results.FilterAll}
	for _, c := range m.cfg.Categories {
		names = append(names, c.Name)
	}
	return append(names, results.FilterOther)
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.searchFocus {
	case focusQuery:
		return m.updateQueryInput(msg)
	case focusProject:
		return m.updateProjectInput(msg)
	default:
		return m.updateResultsPane(msg)
	}
}

func (m Model) updateQueryInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	open := len(m.suggestions) > 0
	switch msg.String() {
	case "enter":
		if open && m.suggestIdx >= 0 {
			m.queryInput.SetValue(m.suggestions[m.suggestIdx])
			m.queryInput.CursorEnd()
			m.closeSuggestions()
			return m, nil
		}
		return m.submitSearch()
	case "esc":
		if open {
			m.closeSuggestions()
			return m, nil
		}
		m.queryInput.SetValue("")
		m.projectInput.SetValue("")
		return m, nil
	case "down":
		if open && m.suggestIdx < len(m.suggestions)-1 {
			m.suggestIdx++
		}
		return m, nil
	case "up":
		if open && m.suggestIdx >= 0 {
			m.suggestIdx--
		}
		return m, nil
	case "tab":
		m.searchFocus = focusProject
		m.queryInput.Blur()
		m.projectInput.Focus()
		m.closeSuggestions()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.queryInput.Value()
	m.queryInput, cmd = m.queryInput.Update(msg)
	if m.queryInput.Value() != before {
		m.suggestions = m.recorder.Suggest(m.queryInput.Value(), m.cfg.Suggestions)
		m.suggestIdx = -1
	}
	return m, cmd
}

func (m Model) updateProjectInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submitSearch()
	case "tab":
		m.projectInput.Blur()
		if m.hasSearched {
			m.searchFocus = focusResults
		} else {
			m.searchFocus = focusQuery
			m.queryInput.Focus()
		}
		return m, nil
	case "esc":
		m.projectInput.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.projectInput, cmd = m.projectInput.Update(msg)
	return m, cmd
}

func (m Model) updateResultsPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "esc":
		m.searchFocus = focusQuery
		m.queryInput.Focus()
		return m, nil
	case "left", "h":
		m.presenter.PrevPage()
		m.refreshResultsView()
		return m, nil
	case "right", "l":
		m.presenter.NextPage()
		m.refreshResultsView()
		return m, nil
	case "f":
		names := m.filterNames()
		m.filterIdx = (m.filterIdx + 1) % len(names)
		m.presenter.SetFilter(names[m.filterIdx])
		m.refreshResultsView()
		return m, nil
	case "s":
		m.sortIdx = (m.sortIdx + 1) % len(sortKeys)
		m.presenter.SetSort(sortKeys[m.sortIdx])
		m.refreshResultsView()
		return m, nil
	}
	var cmd tea.Cmd
	m.resultsView, cmd = m.resultsView.Update(msg)
	return m, cmd
}

func (m Model) submitSearch() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.queryInput.Value())
	if query == "" || m.searching {
		return m, nil
	}
	if err := m.recorder.Record(query); err != nil {
		m.logger.Warn("could not persist search history")
	}
	m.closeSuggestions()
	m.searching = true
	m.searchErr = ""
	return m, m.searchCmd(query, strings.TrimSpace(m.projectInput.Value()))
}

func (m *Model) closeSuggestions() {
	m.suggestions = nil
	m.suggestIdx = -1
}

func (m *Model) refreshResultsView() {
	m.resultsView.SetContent(m.renderResults())
	m.resultsView.GotoTop()
}

func (m Model) renderResults() string {
	if !m.hasSearched {
		return subtleStyle.Render("Type a query and press Enter to search.")
	}
	view := m.presenter.View()
	if view.FilteredCount == 0 {
		return "No results found.\n" + subtleStyle.Render("Try different search terms or another category filter.")
	}

	var b strings.Builder

	if view.ShowFeatured() {
		top := *view.TopResult
		card := fmt.Sprintf("%s\n%s  %s  %.1f%% match\n%s\n%s",
			titleStyle.Render("Top result: "+top.Title),
			top.Number, top.DocType, top.RelevancePercent(),
			truncate(top.Snippet, 200),
			subtleStyle.Render(m.backend.DocumentFileURL(top.DocumentID)))
		b.WriteString(featuredStyle.Render(card))
		b.WriteString("\n\n")
	}

	for i, row := range view.Rows {
		line1 := fmt.Sprintf("%2d. %s", view.Start+i+1, titleStyle.Render(row.Title))
		line2 := fmt.Sprintf("    %s · %s · rev %s · %s · %.1f%%",
			orDash(row.Number), orDash(row.DocType), orDash(row.Revision),
			formatDate(row.DateModified), row.RelevancePercent())
		b.WriteString(line1 + "\n" + subtleStyle.Render(line2) + "\n")
		if row.Snippet != "" {
			b.WriteString("    " + truncate(row.Snippet, 120) + "\n")
		}
	}

	if view.TotalPages > 1 {
		b.WriteString("\n" + m.renderPager(view))
	}
	return b.String()
}

func (m Model) renderPager(view results.View) string {
	var parts []string
	for _, page := range results.PageWindow(view.Page, view.TotalPages) {
		if page == results.Ellipsis {
			parts = append(parts, "...")
			continue
		}
		label := fmt.Sprintf("%d", page)
		if page == view.Page {
			label = selectedStyle.Render("[" + label + "]")
		}
		parts = append(parts, label)
	}
	shownFrom := view.Start + 1
	shownTo := view.Start + len(view.Rows)
	return fmt.Sprintf("%s  %s",
		strings.Join(parts, " "),
		subtleStyle.Render(fmt.Sprintf("showing %d-%d of %d", shownFrom, shownTo, view.FilteredCount)))
}

func (m Model) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return ""
	}
	var lines []string
	for i, s := range m.suggestions {
		line := "  " + s
		if m.recorder.Contains(s) {
			line += " " + badgeStyle.Render("(recent)")
		}
		if i == m.suggestIdx {
			line = selectedStyle.Render("> " + s)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewSearch() string {
	header := titleStyle.Render("docfind") + "  " + m.tabs()

	inputs := m.queryInput.View() + "\n" + m.projectInput.View()
	if sugg := m.renderSuggestions(); sugg != "" {
		inputs += "\n" + sugg
	}

	status := m.searchStatus()

	view := m.presenter.View()
	counts := ""
	if m.hasSearched {
		counts = subtleStyle.Render(fmt.Sprintf(
			"filter: %s · sort: %s · %d results",
			m.presenter.Filter(), m.presenter.Sort(), view.FilteredCount))
	}

	return header + "\n" +
		inputBoxStyle.Render(inputs) + "\n" +
		counts + "\n" +
		boxStyle.Render(m.resultsView.View()) + "\n" +
		status
}

func (m Model) searchStatus() string {
	switch {
	case m.searching:
		return m.spin.View() + " searching..."
	case m.searchErr != "":
		return errorStyle.Render("Search failed: "+m.searchErr) + subtleStyle.Render("  (Enter to retry)")
	case m.searchFocus == focusResults:
		return statusStyle.Render("results: ←/→ pages · f filter · s sort · Tab back to input")
	default:
		return statusStyle.Render("Enter search · Esc clear · ↑/↓ suggestions · Tab project/results")
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
