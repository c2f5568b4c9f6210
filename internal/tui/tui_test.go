package tui

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neetharmaliackal/fittrack-pro-02/internal/api"
	"github.com/neetharmaliackal/fittrack-pro-02/internal/session"
	"github.com/neetharmaliackal/fittrack-pro-02/internal/testsupport"
	"github.com/neetharmaliackal/fittrack-pro-02/pkg/httpclient"
)

func testEnv(t *testing.T) (context.Context, *session.Store, *api.Client, *testsupport.Server) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := testsupport.New(t)
	store := session.Open(filepath.Join(t.TempDir(), session.StorageFilename), log)
	hc := httpclient.New(httpclient.Config{Timeout: 5 * time.Second, MaxConnsPerHost: 5})
	client := api.New(server.URL(), hc, store.AccessToken, log)
	return session.NewContext(context.Background(), store), store, client, server
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)
