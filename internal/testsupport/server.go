// Package testsupport provides an in-process fake of the FitTrack remote API
// for exercising the client without a real backend. It implements the same
// six endpoints with an in-memory activity table and switchable failure
// modes.
package testsupport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/neetharmaliackal/fittrack-pro-02/internal/domain"
)

// Default credentials and tokens the fake accepts.
const (
	Username     = "johndoe"
	Password     = "password123"
	AccessToken  = "test-access-token"
	RefreshToken = "test-refresh-token"
)

// Server is a fake FitTrack API. All exported mutators are safe for use from
// the test goroutine while the server is receiving requests.
type Server struct {
	mu         sync.Mutex
	activities []domain.Activity
	nextID     int64

	// Paginated switches the list endpoint to the envelope shape.
	Paginated bool

	// forced, when non-nil, makes every endpoint answer with this response.
	forced *forcedResponse

	requests map[string]int

	httpServer *httptest.Server
}

type forcedResponse struct {
	status int
	body   string
}

// New starts a fake API server and registers its shutdown with the test.
func New(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		nextID:   1,
		requests: make(map[string]int),
	}
	s.httpServer = httptest.NewServer(s.router())
	t.Cleanup(s.httpServer.Close)
	return s
}

// URL returns the base URL clients should be pointed at.
func (s *Server) URL() string {
	return s.httpServer.URL
}

// ForceResponse makes every endpoint answer status/body until Reset.
func (s *Server) ForceResponse(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = &forcedResponse{status: status, body: body}
}

// Reset clears any forced response.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = nil
}

// Seed inserts activities directly into the table, assigning ids.
func (s *Server) Seed(payloads ...domain.ActivityPayload) []domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeded := make([]domain.Activity, 0, len(payloads))
	for _, p := range payloads {
		a := s.insertLocked(p)
		seeded = append(seeded, a)
	}
	return seeded
}

// Activities returns a snapshot of the current table.
func (s *Server) Activities() []domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// Requests returns how many requests reached the given method+path key,
// e.g. "POST /auth/register/".
func (s *Server) Requests(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[key]
}

// TotalRequests returns how many requests reached the server at all.
func (s *Server) TotalRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.requests {
		total += n
	}
	return total
}

func (s *Server) insertLocked(p domain.ActivityPayload) domain.Activity {
	now := time.Now().UTC().Format(time.RFC3339)
	a := domain.Activity{
		ID:           s.nextID,
		User:         1,
		ActivityType: p.ActivityType,
		Description:  p.Description,
		Date:         p.Date,
		Status:       p.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.nextID++
	s.activities = append(s.activities, a)
	return a
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.counting)
	r.Use(s.forcing)

	r.Post("/auth/register/", s.handleRegister)
	r.Post("/auth/login/", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.bearerAuth)
		r.Get("/activities/", s.handleList)
		r.Post("/activities/create/", s.handleCreate)
		r.Put("/activities/{id}/", s.handleUpdate)
		r.Delete("/activities/{id}/", s.handleDelete)
	})

	return r
}

func (s *Server) counting(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[r.Method+" "+r.URL.Path]++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) forcing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		forced := s.forced
		s.mu.Unlock()

		if forced != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(forced.status)
			_, _ = w.Write([]byte(forced.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) bearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header != "Bearer "+AccessToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"detail": "Given token not valid for any token type",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload domain.RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request body"})
		return
	}

	// Mimic the backend's field-map error shape for a duplicate username.
	if payload.Username == "taken" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{
			"username": {"A user with that username already exists."},
		})
		return
	}

	writeJSON(w, http.StatusCreated, domain.User{
		Username:  payload.Username,
		Email:     payload.Email,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload domain.LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request body"})
		return
	}

	if payload.Username != Username || payload.Password != Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "No active account found with the given credentials",
		})
		return
	}

	writeJSON(w, http.StatusOK, domain.AuthTokens{Access: AccessToken, Refresh: RefreshToken})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := make([]domain.Activity, len(s.activities))
	copy(list, s.activities)
	paginated := s.Paginated
	s.mu.Unlock()

	if paginated {
		writeJSON(w, http.StatusOK, map[string]any{
			"activities": list,
			"total":      len(list),
			"page":       1,
			"limit":      50,
			"totalPages": 1,
		})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload domain.ActivityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request body"})
		return
	}
	if payload.Description == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{
			"description": {"This field may not be blank."},
		})
		return
	}

	s.mu.Lock()
	created := s.insertLocked(payload)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid activity id"})
		return
	}

	var payload domain.ActivityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Malformed request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.activities {
		if s.activities[i].ID == id {
			s.activities[i].ActivityType = payload.ActivityType
			s.activities[i].Description = payload.Description
			s.activities[i].Date = payload.Date
			s.activities[i].Status = payload.Status
			s.activities[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			writeJSON(w, http.StatusOK, s.activities[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": fmt.Sprintf("Activity %d not found", id)})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid activity id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.activities {
		if s.activities[i].ID == id {
			s.activities = append(s.activities[:i], s.activities[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": fmt.Sprintf("Activity %d not found", id)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
