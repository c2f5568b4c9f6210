package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the display identity decoded from the access token. The client
// holds no signing secret, so the claims are decoded without verification and
// used for presentation only; the server remains the authority on whether the
// token is actually acceptable.
type Identity struct {
	Username  string
	UserID    string
	ExpiresAt time.Time
}

// Zero reports whether nothing could be decoded.
func (id Identity) Zero() bool {
	return id.Username == "" && id.UserID == "" && id.ExpiresAt.IsZero()
}

// Expired reports whether the token's exp claim has passed. A missing exp
// claim reads as not expired; the server decides either way.
func (id Identity) Expired(now time.Time) bool {
	return !id.ExpiresAt.IsZero() && now.After(id.ExpiresAt)
}

// Identity decodes the held access token's claims. An absent session or an
// undecodable token yields a zero Identity, never an error.
func (s *Store) Identity() Identity {
	access, ok := s.AccessToken()
	if !ok {
		return Identity{}
	}
	return decodeIdentity(access)
}

func decodeIdentity(access string) Identity {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(access, claims); err != nil {
		return Identity{}
	}

	var id Identity
	id.Username, _ = claims["username"].(string)
	if sub, err := claims.GetSubject(); err == nil {
		id.UserID = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}
	return id
}
