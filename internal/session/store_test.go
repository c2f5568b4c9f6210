package session

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neetharmaliackal/fittrack-pro-02/internal/domain"
	"github.com/neetharmaliackal/fittrack-pro-02/pkg/logger"
)

func testLogger() *slog.Logger {
	return logger.NewWithWriter("session-test", "error", io.Discard)
}

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), StorageFilename)
}

func TestOpen_NoStoredSession(t *testing.T) {
	s := Open(storePath(t), testLogger())

	assert.False(t, s.IsAuthenticated())
	_, ok := s.AccessToken()
	assert.False(t, ok)
}

func TestOpen_MalformedFile_TreatedAsLoggedOut(t *testing.T) {
	path := storePath(t)
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	s := Open(path, testLogger())

	assert.False(t, s.IsAuthenticated())

	// The bad value is discarded but storage is not rewritten.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{not json`, string(raw))
}

func TestLogin_SetsMemoryAndDisk(t *testing.T) {
	path := storePath(t)
	s := Open(path, testLogger())

	tokens := domain.AuthTokens{Access: "A", Refresh: "R"}
	require.NoError(t, s.Login(tokens))

	assert.True(t, s.IsAuthenticated())
	access, ok := s.AccessToken()
	require.True(t, ok)
	assert.Equal(t, "A", access)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"access":"A","refresh":"R"}`, string(raw))
}

func TestLogin_CreatesStateDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", StorageFilename)
	s := Open(path, testLogger())

	require.NoError(t, s.Login(domain.AuthTokens{Access: "A", Refresh: "R"}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLogout_ClearsMemoryAndDisk(t *testing.T) {
	path := storePath(t)
	s := Open(path, testLogger())
	require.NoError(t, s.Login(domain.AuthTokens{Access: "A", Refresh: "R"}))

	s.Logout()

	assert.False(t, s.IsAuthenticated())
	_, ok := s.AccessToken()
	assert.False(t, ok)
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLogout_Idempotent(t *testing.T) {
	s := Open(storePath(t), testLogger())

	s.Logout()
	s.Logout()

	assert.False(t, s.IsAuthenticated())
}

func TestOpen_RehydratesPersistedSession(t *testing.T) {
	path := storePath(t)
	first := Open(path, testLogger())
	require.NoError(t, first.Login(domain.AuthTokens{Access: "A", Refresh: "R"}))

	// A fresh store over the same file reproduces the authenticated state.
	second := Open(path, testLogger())

	assert.True(t, second.IsAuthenticated())
	tokens, ok := second.Tokens()
	require.True(t, ok)
	assert.Equal(t, domain.AuthTokens{Access: "A", Refresh: "R"}, tokens)
}

func TestTokens_CopyNotHeldReference(t *testing.T) {
	s := Open(storePath(t), testLogger())
	require.NoError(t, s.Login(domain.AuthTokens{Access: "A", Refresh: "R"}))

	tokens, ok := s.Tokens()
	require.True(t, ok)
	tokens.Access = "mutated"

	access, _ := s.AccessToken()
	assert.Equal(t, "A", access)
}

// --- Context guard ---

func TestFromContext_NotConfigured(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFromContext_RoundTrip(t *testing.T) {
	s := Open(storePath(t), testLogger())
	ctx := NewContext(context.Background(), s)

	got, err := FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

// --- Identity decoding ---

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestIdentity_DecodesClaims(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	access := signedToken(t, jwt.MapClaims{
		"username": "johndoe",
		"sub":      "17",
		"exp":      exp.Unix(),
	})

	s := Open(storePath(t), testLogger())
	require.NoError(t, s.Login(domain.AuthTokens{Access: access, Refresh: "R"}))

	id := s.Identity()
	assert.Equal(t, "johndoe", id.Username)
	assert.Equal(t, "17", id.UserID)
	assert.True(t, id.ExpiresAt.Equal(exp))
	assert.False(t, id.Expired(time.Now()))
}

func TestIdentity_ExpiredToken(t *testing.T) {
	access := signedToken(t, jwt.MapClaims{
		"username": "johndoe",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})

	s := Open(storePath(t), testLogger())
	require.NoError(t, s.Login(domain.AuthTokens{Access: access, Refresh: "R"}))

	assert.True(t, s.Identity().Expired(time.Now()))
}

func TestIdentity_NoSession(t *testing.T) {
	s := Open(storePath(t), testLogger())
	assert.True(t, s.Identity().Zero())
}

func TestIdentity_UndecodableToken(t *testing.T) {
	s := Open(storePath(t), testLogger())
	require.NoError(t, s.Login(domain.AuthTokens{Access: "not-a-jwt", Refresh: "R"}))

	id := s.Identity()
	assert.True(t, id.Zero())
	assert.False(t, id.Expired(time.Now()))
}
