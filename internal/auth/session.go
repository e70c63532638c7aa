package auth

import (
	"net/http"
	"strings"
	"time"
)

// Sessions moves session tokens between requests and responses.
type Sessions struct {
	creds  *Credentials
	cookie string
	secure bool
}

func NewSessions(creds *Credentials, cookieName string, secure bool) *Sessions {
	return &Sessions{
		creds:  creds,
		cookie: cookieName,
		secure: secure,
	}
}

// Resolve returns the claims of the request's session or nil. A valid
// cookie wins over an Authorization: Bearer header; an invalid one does not
// hide the header.
func (s *Sessions) Resolve(r *http.Request) *Claims {
	if cookie, err := r.Cookie(s.cookie); err == nil && cookie.Value != "" {
		if claims, err := s.creds.ParseToken(cookie.Value); err == nil {
			return claims
		}
	}

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if tokenString == "" {
		return nil
	}

	claims, err := s.creds.ParseToken(tokenString)
	if err != nil {
		return nil
	}
	return claims
}

func (s *Sessions) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.creds.TTL() / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie on the client.
func (s *Sessions) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
