package web

import (
	"net/http"
	"strings"
)

// sessionCookie carries the signed credential token between requests.
const sessionCookie = "session_token"

// legacyTokenHeader is kept for older clients that predate the bearer
// header.
const legacyTokenHeader = "x-access-token"

// resolveToken picks the credential token for a request. A well-formed
// Authorization bearer header overrides the session cookie, which
// overrides the legacy header. Empty means anonymous.
func resolveToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
			return parts[1]
		}
	}
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return r.Header.Get(legacyTokenHeader)
}

// gate is the soft credential gate. It resolves and verifies the
// request's token and attaches the outcome to the context, but never
// blocks the request: a missing or invalid token just downgrades the
// request to anonymous and the presentation degrades to the public
// view.
func (s *Server) gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		outcome := Outcome{}

		if token := resolveToken(r); token != "" {
			identity, err := s.verifyToken(token)
			if err != nil {
				s.log.WithError(err).Warn("Token verification failed, treating request as anonymous")
			} else {
				outcome = Outcome{Authenticated: true, Identity: identity}
			}
		}

		next.ServeHTTP(w, r.WithContext(WithOutcome(r.Context(), outcome)))
	})
}
