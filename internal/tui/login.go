package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/neetharmaliackal/fittrack-pro-02/internal/api"
	"github.com/neetharmaliackal/fittrack-pro-02/internal/domain"
	"github.com/neetharmaliackal/fittrack-pro-02/internal/session"
	apperrors "github.com/neetharmaliackal/fittrack-pro-02/pkg/errors"
)

const loginFallbackNotice = "Login failed"

type loginDoneMsg struct {
	tokens domain.AuthTokens
	err    error
}

// loginModel is the sign-in form. A failed attempt leaves the session
// untouched and shows the server's message; a successful one stores the token
// pair and moves on to the dashboard.
type loginModel struct {
	store  *session.Store
	client *api.Client
	logger *slog.Logger

	username textinput.Model
	password textinput.Model
	focus    int

	submitting bool
	notice     string
	noticeErr  bool
}

func newLoginModel(ctx context.Context, client *api.Client, logger *slog.Logger) loginModel {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 150
	username.Width = 32
	username.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.Width = 32
	password.EchoMode = textinput.EchoPassword

	return loginModel{
		store:    sessionFrom(ctx),
		client:   client,
		logger:   logger,
		username: username,
		password: password,
	}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch typed := msg.(type) {
	case loginDoneMsg:
		m.submitting = false
		if typed.err != nil {
			m.notice = noticeFromErr(typed.err, loginFallbackNotice)
			m.noticeErr = true
			return m, nil
		}
		if err := m.store.Login(typed.tokens); err != nil {
			m.logger.Warn("could not persist session", slog.String("error", err.Error()))
		}
		return m, navigateTo(screenActivities)

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch typed.String() {
		case "esc":
			return m, navigateTo(screenLanding)
		case "tab", "down":
			m.setFocus((m.focus + 1) % 2)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + 1) % 2)
			return m, nil
		case "enter":
			m.submitting = true
			m.notice = ""
			payload := domain.LoginPayload{
				Username: strings.TrimSpace(m.username.Value()),
				Password: m.password.Value(),
			}
			return m, m.loginCmd(payload)
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *loginModel) setFocus(focus int) {
	m.focus = focus
	if focus == 0 {
		m.username.Focus()
		m.password.Blur()
	} else {
		m.username.Blur()
		m.password.Focus()
	}
}

func (m loginModel) loginCmd(payload domain.LoginPayload) tea.Cmd {
	return func() tea.Msg {
		tokens, err := m.client.Login(context.Background(), payload)
		return loginDoneMsg{tokens: tokens, err: err}
	}
}

func (m loginModel) View() string {
	lines := []string{
		titleStyle.Render("Sign In"),
		"",
		labelStyle.Render("Username"),
		m.username.View(),
		"",
		labelStyle.Render("Password"),
		m.password.View(),
		"",
	}

	if m.submitting {
		lines = append(lines, mutedStyle.Render("Signing in..."), "")
	}
	if m.notice != "" {
		style := successStyle
		if m.noticeErr {
			style = errorStyle
		}
		lines = append(lines, style.Render(m.notice), "")
	}

	lines = append(lines, helpStyle.Render("tab: next field  enter: sign in  esc: back"))
	return strings.Join(lines, "\n") + "\n"
}

// noticeFromErr extracts the user-facing message from an API call failure.
// The server's own message wins when one was parsed out of the response.
func noticeFromErr(err error, fallback string) string {
	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
