package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/neetharmaliackal/fittrack-pro-02/internal/api"
	"github.com/neetharmaliackal/fittrack-pro-02/internal/domain"
)

const (
	registerFallbackNotice = "Registration failed"
	registeredNotice       = "Account created successfully! Please login."

	noticeFillAllFields    = "Please fill in all fields"
	noticePasswordMismatch = "Passwords do not match"
	noticePasswordTooShort = "Password must be at least 8 characters"
)

type registerDoneMsg struct {
	err error
}

// registerModel is the sign-up form. All checks run client-side before any
// request is made, and in a fixed order: completeness, password match,
// password length. A successful registration does not log the user in; it
// sends them to the login screen instead.
type registerModel struct {
	client *api.Client
	logger *slog.Logger

	inputs []textinput.Model
	focus  int

	submitting bool
	notice     string
	noticeErr  bool
}

const (
	fieldUsername = iota
	fieldEmail
	fieldFirstName
	fieldLastName
	fieldPassword
	fieldPassword2
	fieldCount
)

func newRegisterModel(client *api.Client, logger *slog.Logger) registerModel {
	placeholders := [fieldCount]string{
		fieldUsername:  "Username",
		fieldEmail:     "Email",
		fieldFirstName: "First name",
		fieldLastName:  "Last name",
		fieldPassword:  "Password",
		fieldPassword2: "Confirm password",
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = 150
		input.Width = 32
		if i == fieldPassword || i == fieldPassword2 {
			input.EchoMode = textinput.EchoPassword
		}
		inputs[i] = input
	}
	inputs[fieldUsername].Focus()

	return registerModel{client: client, logger: logger, inputs: inputs}
}

func (m registerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch typed := msg.(type) {
	case registerDoneMsg:
		m.submitting = false
		if typed.err != nil {
			m.notice = noticeFromErr(typed.err, registerFallbackNotice)
			m.noticeErr = true
			return m, nil
		}
		return m, navigateWithNotice(screenLogin, registeredNotice)

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch typed.String() {
		case "esc":
			return m, navigateTo(screenLanding)
		case "tab", "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	payload := domain.RegisterPayload{
		Username:  strings.TrimSpace(m.inputs[fieldUsername].Value()),
		Email:     strings.TrimSpace(m.inputs[fieldEmail].Value()),
		FirstName: strings.TrimSpace(m.inputs[fieldFirstName].Value()),
		LastName:  strings.TrimSpace(m.inputs[fieldLastName].Value()),
		Password:  m.inputs[fieldPassword].Value(),
		Password2: m.inputs[fieldPassword2].Value(),
	}

	if notice, ok := checkRegisterPayload(payload); !ok {
		m.notice = notice
		m.noticeErr = true
		return m, nil
	}

	m.submitting = true
	m.notice = ""
	return m, m.registerCmd(payload)
}

// checkRegisterPayload mirrors the pre-flight checks the server would reject
// anyway, so obvious mistakes never cost a round trip. The order of checks is
// part of the contract: a half-empty form reports completeness first.
func checkRegisterPayload(p domain.RegisterPayload) (string, bool) {
	for _, v := range []string{p.Username, p.Email, p.FirstName, p.LastName, p.Password, p.Password2} {
		if strings.TrimSpace(v) == "" {
			return noticeFillAllFields, false
		}
	}
	if p.Password != p.Password2 {
		return noticePasswordMismatch, false
	}
	if len(p.Password) < 8 {
		return noticePasswordTooShort, false
	}
	return "", true
}

func (m *registerModel) setFocus(focus int) {
	m.inputs[m.focus].Blur()
	m.focus = focus
	m.inputs[m.focus].Focus()
}

func (m registerModel) registerCmd(payload domain.RegisterPayload) tea.Cmd {
	return func() tea.Msg {
		return registerDoneMsg{err: m.client.Register(context.Background(), payload)}
	}
}

func (m registerModel) View() string {
	lines := []string{titleStyle.Render("Get Started"), ""}

	labels := [fieldCount]string{
		fieldUsername:  "Username",
		fieldEmail:     "Email",
		fieldFirstName: "First name",
		fieldLastName:  "Last name",
		fieldPassword:  "Password",
		fieldPassword2: "Confirm password",
	}
	for i, input := range m.inputs {
		label := labelStyle.Render(labels[i])
		if i == m.focus {
			label = focusStyle.Render(labels[i])
		}
		lines = append(lines, label, input.View(), "")
	}

	if m.submitting {
		lines = append(lines, mutedStyle.Render("Creating account..."), "")
	}
	if m.notice != "" {
		style := successStyle
		if m.noticeErr {
			style = errorStyle
		}
		lines = append(lines, style.Render(m.notice), "")
	}

	lines = append(lines, helpStyle.Render("tab: next field  enter: create account  esc: back"))
	return strings.Join(lines, "\n") + "\n"
}
