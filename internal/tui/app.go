// Package tui implements the terminal screens: a landing menu, login and
// registration forms, and the activities dashboard. One model per screen,
// composed under a root App model that owns navigation between them.
package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neetharmaliackal/fittrack-pro-02/internal/api"
	"github.com/neetharmaliackal/fittrack-pro-02/internal/session"
)

type screen int

const (
	screenLanding screen = iota
	screenLogin
	screenRegister
	screenActivities
)

// navigateMsg switches the active screen. An optional notice is shown on the
// target screen, e.g. the confirmation after a successful registration.
type navigateMsg struct {
	to     screen
	notice string
}

func navigateTo(to screen) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

func navigateWithNotice(to screen, notice string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to, notice: notice} }
}

// App is the root model. It routes every message to the active screen only,
// so a completion message from a screen the user has already left is
// discarded rather than applied.
type App struct {
	ctx    context.Context
	client *api.Client
	logger *slog.Logger

	screen     screen
	landing    landingModel
	login      loginModel
	register   registerModel
	activities activitiesModel

	// gen stamps each Activities visit so completion messages from a visit
	// the user has already left are recognized and dropped.
	gen int

	width    int
	height   int
	quitting bool
}

// NewApp builds the root model. ctx must carry the session store, see
// session.NewContext.
func NewApp(ctx context.Context, client *api.Client, logger *slog.Logger) App {
	return App{
		ctx:        ctx,
		client:     client,
		logger:     logger,
		screen:     screenLanding,
		landing:    newLandingModel(ctx),
		login:      newLoginModel(ctx, client, logger),
		register:   newRegisterModel(client, logger),
		activities: newActivitiesModel(ctx, client, logger, 0),
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, client *api.Client, logger *slog.Logger) error {
	program := tea.NewProgram(NewApp(ctx, client, logger), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m App) Init() tea.Cmd {
	return nil
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil

	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case navigateMsg:
		return m.navigate(typed)
	}

	return m.routeToScreen(msg)
}

func (m App) navigate(msg navigateMsg) (tea.Model, tea.Cmd) {
	m.screen = msg.to
	switch msg.to {
	case screenLanding:
		m.landing = newLandingModel(m.ctx)
		return m, nil
	case screenLogin:
		m.login = newLoginModel(m.ctx, m.client, m.logger)
		m.login.notice = msg.notice
		return m, m.login.Init()
	case screenRegister:
		m.register = newRegisterModel(m.client, m.logger)
		return m, m.register.Init()
	case screenActivities:
		m.gen++
		m.activities = newActivitiesModel(m.ctx, m.client, m.logger, m.gen)
		return m, m.activities.Init()
	}
	return m, nil
}

func (m App) routeToScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenLanding:
		m.landing, cmd = m.landing.Update(msg)
	case screenLogin:
		m.login, cmd = m.login.Update(msg)
	case screenRegister:
		m.register, cmd = m.register.Update(msg)
	case screenActivities:
		m.activities, cmd = m.activities.Update(msg)
	}
	return m, cmd
}

func (m App) View() string {
	if m.quitting {
		return "bye\n"
	}
	switch m.screen {
	case screenLogin:
		return m.login.View()
	case screenRegister:
		return m.register.View()
	case screenActivities:
		return m.activities.View()
	default:
		return m.landing.View()
	}
}

// sessionFrom resolves the store carried by the program context. A missing
// store is a wiring bug in main, not a user-facing state.
func sessionFrom(ctx context.Context) *session.Store {
	store, err := session.FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return store
}
