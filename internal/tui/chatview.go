package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"docfind/internal/chat"
	"docfind/internal/domain"
)

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.chatFocus == focusTranscript {
		return m.updateTranscriptPane(msg)
	}

	starters := m.cfg.Chat.StarterPrompts
	showStarters := m.transcript.Fresh() && len(starters) > 0

	switch msg.String() {
	case "enter":
		if showStarters && m.starterIdx >= 0 {
			m.chatInput.SetValue(starters[m.starterIdx])
			m.chatInput.CursorEnd()
			m.starterIdx = -1
			return m, nil
		}
		return m.submitChat()
	case "up":
		if showStarters {
			if m.starterIdx > 0 {
				m.starterIdx--
			}
			return m, nil
		}
	case "down":
		if showStarters {
			if m.starterIdx < len(starters)-1 {
				m.starterIdx++
			}
			return m, nil
		}
	case "tab":
		m.chatFocus = focusTranscript
		m.chatInput.Blur()
		m.turnCursor = m.transcript.Len() - 1
		m.refreshChatView()
		return m, nil
	case "ctrl+d":
		choices := m.cfg.Chat.DocChoices
		m.maxDocsIdx = (m.maxDocsIdx + 1) % len(choices)
		return m, nil
	}

	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m Model) updateTranscriptPane(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "esc":
		m.chatFocus = focusChatInput
		m.chatInput.Focus()
		m.refreshChatView()
		return m, nil
	case "up", "k":
		if m.turnCursor > 0 {
			m.turnCursor--
			m.refreshChatView()
		}
		return m, nil
	case "down", "j":
		if m.turnCursor < m.transcript.Len()-1 {
			m.turnCursor++
			m.refreshChatView()
		}
		return m, nil
	case "enter", "v":
		turns := m.transcript.Turns()
		if m.turnCursor >= 0 && m.turnCursor < len(turns) {
			m.transcript.ToggleSources(turns[m.turnCursor].ID)
			m.refreshChatView()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.chatView, cmd = m.chatView.Update(msg)
	return m, cmd
}

// submitChat appends the user turn and fires the request. Submission while a
// request is outstanding is rejected by the transcript itself.
func (m Model) submitChat() (tea.Model, tea.Cmd) {
	question := m.chatInput.Value()
	turn, ok := m.transcript.Submit(question)
	if !ok {
		return m, nil
	}
	m.chatInput.SetValue("")
	m.starterIdx = -1
	m.refreshChatView()
	m.chatView.GotoBottom()

	// History up to but not including the turn just added.
	hist := m.transcript.History()
	hist = hist[:len(hist)-1]
	return m, m.chatCmd(turn.Content, m.maxDocs(), hist)
}

func (m Model) maxDocs() int {
	choices := m.cfg.Chat.DocChoices
	if m.maxDocsIdx >= 0 && m.maxDocsIdx < len(choices) {
		return choices[m.maxDocsIdx]
	}
	return m.cfg.Chat.MaxContextDocs
}

func (m *Model) refreshChatView() {
	m.chatView.SetContent(m.renderTranscript())
}

func (m Model) renderTranscript() string {
	var b strings.Builder
	turns := m.transcript.Turns()
	for i, turn := range turns {
		cursor := "  "
		if m.chatFocus == focusTranscript && i == m.turnCursor {
			cursor = selectedStyle.Render("> ")
		}
		speaker := userTurnStyle.Render("you")
		if turn.Role == domain.RoleAssistant {
			speaker = asstTurnStyle.Render("assistant")
		}
		b.WriteString(fmt.Sprintf("%s%s  %s\n", cursor, speaker,
			subtleStyle.Render(turn.Timestamp.Format("15:04:05"))))
		b.WriteString(chat.RenderMarkup(turn.Content) + "\n")

		if len(turn.Sources) > 0 {
			if m.transcript.SourcesVisible(turn.ID) {
				b.WriteString(subtleStyle.Render(fmt.Sprintf("  sources (%d):", len(turn.Sources))) + "\n")
				for _, src := range turn.Sources {
					b.WriteString(fmt.Sprintf("   - %s · %s · %.1f%%\n",
						src.Title, orDash(src.Number), src.RelevancePercent()))
					if src.Snippet != "" {
						b.WriteString("     " + subtleStyle.Render(truncate(src.Snippet, 150)) + "\n")
					}
				}
			} else {
				b.WriteString(subtleStyle.Render(fmt.Sprintf("  [%d sources hidden · select turn and press v]", len(turn.Sources))) + "\n")
			}
		}
		b.WriteString("\n")
	}
	if m.transcript.InFlight() {
		b.WriteString(m.spin.View() + " thinking...\n")
	}
	return b.String()
}

func (m Model) viewChat() string {
	header := titleStyle.Render("docfind") + "  " + m.tabs()

	var starterBlock string
	if m.transcript.Fresh() && len(m.cfg.Chat.StarterPrompts) > 0 && m.chatFocus == focusChatInput {
		var lines []string
		lines = append(lines, subtleStyle.Render("Suggested questions (↑/↓, Enter to pick):"))
		for i, s := range m.cfg.Chat.StarterPrompts {
			if i == m.starterIdx {
				lines = append(lines, selectedStyle.Render("> "+s))
			} else {
				lines = append(lines, "  "+s)
			}
		}
		starterBlock = strings.Join(lines, "\n") + "\n"
	}

	status := statusStyle.Render(fmt.Sprintf(
		"Enter send · ^D context docs: %d · Tab transcript", m.maxDocs()))
	if m.transcript.InFlight() {
		status = m.spin.View() + " waiting for answer..."
	}

	return header + "\n" +
		boxStyle.Render(m.chatView.View()) + "\n" +
		starterBlock +
		inputBoxStyle.Render(m.chatInput.View()) + "\n" +
		status
}
