package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"campuscore.org/internal/auth"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

// Paths reachable without a token. Everything else requires a valid session.
var publicPaths = []string{
	"/api/v1/auth/login",
	"/healthz",
	"/readyz",
	"/metrics",
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}

// withAuth resolves the bearer token into an actor and stores it on the
// request context. A missing or malformed header and a bad token produce
// distinct error codes; both are 401.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, codeMissingHeader, err.Error())
			return
		}

		actor, err := a.tokens.Validate(token)
		if err != nil {
			writeError(w, r, http.StatusUnauthorized, codeTokenInvalid, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.ContextWithActor(r.Context(), actor)))
	})
}

// requireRole returns the actor when its role is in the allowed set. It
// writes the response itself on failure: 401 when no actor resolved, 403
// when the role is not allowed. Denials leave no audit record; nothing
// happened to the resource.
func requireRole(w http.ResponseWriter, r *http.Request, allowed ...auth.Role) (auth.Actor, bool) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, codeUnauthed, "authentication required")
		return auth.Actor{}, false
	}
	if err := auth.Authorize(actor.Role, allowed...); err != nil {
		writeError(w, r, http.StatusForbidden, codeForbidden, "insufficient role")
		return auth.Actor{}, false
	}
	return actor, true
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing Authorization header")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}
