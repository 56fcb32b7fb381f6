package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"docfind/internal/upload"
)

func (m Model) updateUpload(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.metaFocus = !m.metaFocus
		if m.metaFocus {
			m.pathInput.Blur()
			m.metaInput.Focus()
		} else {
			m.metaInput.Blur()
			m.pathInput.Focus()
		}
		return m, nil
	case "enter":
		return m.submitUpload()
	case "esc":
		m.pathInput.SetValue("")
		m.metaInput.SetValue("")
		m.upErr = ""
		m.upResult = nil
		return m, nil
	}

	var cmd tea.Cmd
	if m.metaFocus {
		m.metaInput, cmd = m.metaInput.Update(msg)
	} else {
		m.pathInput, cmd = m.pathInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitUpload() (tea.Model, tea.Cmd) {
	if m.uploading {
		return m, nil
	}
	form := upload.Form{
		Path:     strings.TrimSpace(m.pathInput.Value()),
		Metadata: m.metaInput.Value(),
	}
	// Validation errors are shown inline without a network round-trip.
	if err := form.Validate(); err != nil {
		m.upErr = err.Error()
		return m, nil
	}
	m.uploading = true
	m.upErr = ""
	m.upResult = nil
	return m, m.uploadCmd(form)
}

func (m Model) viewUpload() string {
	header := titleStyle.Render("docfind") + "  " + m.tabs()

	form := m.pathInput.View() + "\n" + m.metaInput.View()

	var feedback string
	switch {
	case m.uploading:
		feedback = m.spin.View() + " uploading..."
	case m.upErr != "":
		feedback = errorStyle.Render("Upload failed: " + m.upErr)
	case m.upResult != nil:
		r := m.upResult
		feedback = statusStyle.Render("Document uploaded") + "\n" +
			fmt.Sprintf("  id: %s\n  chunks: %d\n  characters: %d\n  file: %s",
				r.DocumentID, r.ChunksCreated, r.TextLength, r.Filename)
	}

	help := subtleStyle.Render("Supported: PDF, TXT, DOCX, JSON · metadata is an optional JSON object") + "\n" +
		statusStyle.Render("Enter upload · Tab switch field · Esc clear")

	return header + "\n" +
		inputBoxStyle.Render(form) + "\n" +
		feedback + "\n" +
		help
}
