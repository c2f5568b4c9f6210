package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neetharmaliackal/fittrack-pro-02/internal/session"
)

type menuEntry struct {
	label string
	to    screen
}

// landingModel is the entry screen: a title, a tagline and a small menu that
// adapts to whether a session is held.
type landingModel struct {
	store  *session.Store
	cursor int
	menu   []menuEntry
}

func newLandingModel(ctx context.Context) landingModel {
	store := sessionFrom(ctx)
	m := landingModel{store: store}
	if store.IsAuthenticated() {
		m.menu = []menuEntry{
			{label: "Go to Dashboard", to: screenActivities},
		}
	} else {
		m.menu = []menuEntry{
			{label: "Sign In", to: screenLogin},
			{label: "Get Started", to: screenRegister},
		}
	}
	return m
}

func (m landingModel) Update(msg tea.Msg) (landingModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.menu)-1 {
			m.cursor++
		}
	case "enter":
		return m, navigateTo(m.menu[m.cursor].to)
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m landingModel) View() string {
	lines := []string{
		titleStyle.Render("FitTrack Pro"),
		"",
		"Track your workouts, meals and steps.",
		"",
	}

	if identity := m.store.Identity(); identity.Username != "" {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("Signed in as %s", identity.Username)), "")
	}

	for i, entry := range m.menu {
		marker := "  "
		label := entry.label
		if i == m.cursor {
			marker = "> "
			label = selectedStyle.Render(label)
		}
		lines = append(lines, marker+label)
	}

	lines = append(lines, "", helpStyle.Render("up/down: select  enter: open  q: quit"))
	return strings.Join(lines, "\n") + "\n"
}
