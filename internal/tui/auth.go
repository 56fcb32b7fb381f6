package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docfind/internal/session"
)

func (m Model) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "l":
		m.screen = screenLogin
		m.authFocus = 0
		m.authErr = ""
		m.emailInput.Focus()
		return m, nil
	case "r":
		m.screen = screenRegister
		m.authFocus = 0
		m.authErr = ""
		m.emailInput.Focus()
		return m, nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fieldCount := 2 // login: email, password
	if m.screen == screenRegister {
		fieldCount = 4 // email, name, password, confirm
	}

	switch msg.String() {
	case "esc":
		m.screen = screenLanding
		m.clearAuthInputs()
		return m, nil
	case "tab", "down":
		m.authFocus = (m.authFocus + 1) % fieldCount
		m.applyAuthFocus()
		return m, nil
	case "shift+tab", "up":
		m.authFocus = (m.authFocus - 1 + fieldCount) % fieldCount
		m.applyAuthFocus()
		return m, nil
	case "enter":
		if m.authFocus < fieldCount-1 {
			m.authFocus++
			m.applyAuthFocus()
			return m, nil
		}
		return m.submitAuth()
	}

	var cmd tea.Cmd
	model := m.updateAuthInput(msg, &cmd)
	return model, cmd
}

func (m Model) updateAuthInput(msg tea.Msg, cmd *tea.Cmd) Model {
	switch m.authFocusField() {
	case "email":
		m.emailInput, *cmd = m.emailInput.Update(msg)
	case "name":
		m.nameInput, *cmd = m.nameInput.Update(msg)
	case "password":
		m.passInput, *cmd = m.passInput.Update(msg)
	case "confirm":
		m.confirmInput, *cmd = m.confirmInput.Update(msg)
	}
	return m
}

func (m Model) authFocusField() string {
	if m.screen == screenRegister {
		switch m.authFocus {
		case 0:
			return "email"
		case 1:
			return "name"
		case 2:
			return "password"
		default:
			return "confirm"
		}
	}
	if m.authFocus == 0 {
		return "email"
	}
	return "password"
}

func (m *Model) applyAuthFocus() {
	m.emailInput.Blur()
	m.nameInput.Blur()
	m.passInput.Blur()
	m.confirmInput.Blur()
	switch m.authFocusField() {
	case "email":
		m.emailInput.Focus()
	case "name":
		m.nameInput.Focus()
	case "password":
		m.passInput.Focus()
	case "confirm":
		m.confirmInput.Focus()
	}
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.authBusy {
		return m, nil
	}
	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passInput.Value()

	if m.screen == screenRegister {
		fullName := strings.TrimSpace(m.nameInput.Value())
		if err := session.ValidateRegistration(email, fullName, password, m.confirmInput.Value()); err != nil {
			m.authErr = err.Error()
			return m, nil
		}
		m.authBusy = true
		m.authErr = ""
		return m, m.registerCmd(email, password, fullName)
	}

	if err := session.ValidateLogin(email, password); err != nil {
		m.authErr = err.Error()
		return m, nil
	}
	m.authBusy = true
	m.authErr = ""
	return m, m.loginCmd(email, password)
}

func (m *Model) clearAuthInputs() {
	m.emailInput.SetValue("")
	m.nameInput.SetValue("")
	m.passInput.SetValue("")
	m.confirmInput.SetValue("")
	m.authFocus = 0
	m.authErr = ""
	m.emailInput.Focus()
	m.nameInput.Blur()
	m.passInput.Blur()
	m.confirmInput.Blur()
}

func (m Model) viewLanding() string {
	if m.session.Status() == session.Verifying {
		return "\n  " + m.spin.View() + " checking stored session..."
	}
	body := titleStyle.Render("docfind") + "\n\n" +
		"Search, ask and upload project documents from your terminal.\n\n" +
		statusStyle.Render("Enter") + " sign in    " +
		statusStyle.Render("r") + " register    " +
		statusStyle.Render("q") + " quit"
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func (m Model) viewLogin() string {
	form := m.emailInput.View() + "\n" + m.passInput.View()
	return m.viewAuthScreen("Sign in", form)
}

func (m Model) viewRegister() string {
	form := m.emailInput.View() + "\n" + m.nameInput.View() + "\n" +
		m.passInput.View() + "\n" + m.confirmInput.View()
	return m.viewAuthScreen("Create account", form)
}

func (m Model) viewAuthScreen(title, form string) string {
	status := statusStyle.Render("Enter next/submit · Tab fields · Esc back")
	if m.authBusy {
		status = m.spin.View() + " contacting backend..."
	}
	errLine := ""
	if m.authErr != "" {
		errLine = errorStyle.Render(m.authErr) + "\n"
	}
	body := titleStyle.Render(title) + "\n\n" +
		inputBoxStyle.Render(form) + "\n" +
		errLine + status
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}
