package session

import (
	"fmt"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

// Identity is display-only information read from the access token.
type Identity struct {
	Username  string
	UserID    string
	ExpiresAt time.Time
}

// Label returns a short "signed in as" string, or "" when nothing is known.
func (id Identity) Label() string {
	switch {
	case id.Username != "":
		return id.Username
	case id.UserID != "":
		return "user #" + id.UserID
	}
	return ""
}

// Expired reports whether the token carried an expiry that has passed.
// Tokens without an exp claim never expire locally.
func (id Identity) Expired(now time.Time) bool {
	return !id.ExpiresAt.IsZero() && !now.Before(id.ExpiresAt)
}

// DecodeIdentity reads claims from a JWT without verifying it. Tokens are
// opaque to the session, so anything undecodable yields an empty Identity.
func DecodeIdentity(token string) Identity {
	if token == "" {
		return Identity{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return Identity{}
	}

	var id Identity
	if v, ok := claims["username"].(string); ok {
		id.Username = v
	}
	switch v := claims["user_id"].(type) {
	case string:
		id.UserID = v
	case float64:
		id.UserID = fmt.Sprintf("%.0f", v)
	}
	if exp, ok := claims["exp"].(float64); ok {
		id.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return id
}
