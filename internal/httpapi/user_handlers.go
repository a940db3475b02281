package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"campuscore.org/internal/audit"
	"campuscore.org/internal/auth"
)

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(identity *auth.Identity) userResponse {
	return userResponse{
		ID:        identity.ID,
		Email:     identity.Email,
		Role:      identity.Role.String(),
		Active:    identity.Active,
		CreatedAt: identity.CreatedAt,
	}
}

func (a *API) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	actor, ok := requireRole(w, r, auth.RoleSuperAdmin)
	if !ok {
		return
	}

	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	role, err := auth.ParseRole(req.Role)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, codeValidation, "unknown role")
		return
	}

	identity, err := a.svc.Register(r.Context(), req.Email, req.Password, role)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			writeError(w, r, http.StatusBadRequest, codeValidation, err.Error())
		case errors.Is(err, auth.ErrDuplicateEmail):
			writeError(w, r, http.StatusConflict, codeConflict, "email already registered")
		default:
			writeError(w, r, http.StatusInternalServerError, codeInternal, "could not create user")
		}
		return
	}

	a.trail.Record(r.Context(), audit.Entry{
		ActorID:      actor.ID,
		ActorRole:    actor.Role.String(),
		Action:       audit.ActionCreate,
		Module:       "core",
		ResourceType: "user",
		ResourceID:   identity.ID,
		After:        identity,
	})

	writeOK(w, r, http.StatusCreated, toUserResponse(identity))
}

// handleUserSubroutes dispatches /api/v1/users/{id}/unlock.
func (a *API) handleUserSubroutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/users/")
	parts := strings.Split(rest, "/")
	if len(parts) == 2 && parts[1] == "unlock" && parts[0] != "" {
		a.handleUnlockUser(w, r, parts[0])
		return
	}
	writeError(w, r, http.StatusNotFound, codeNotFound, "not found")
}

func (a *API) handleUnlockUser(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	actor, ok := requireRole(w, r, auth.RoleSuperAdmin)
	if !ok {
		return
	}

	before, after, err := a.svc.Unlock(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNotFound):
			writeError(w, r, http.StatusNotFound, codeNotFound, "user not found")
		case errors.Is(err, auth.ErrInvalidInput):
			writeError(w, r, http.StatusBadRequest, codeValidation, err.Error())
		default:
			writeError(w, r, http.StatusInternalServerError, codeInternal, "could not unlock user")
		}
		return
	}

	a.trail.Record(r.Context(), audit.Entry{
		ActorID:      actor.ID,
		ActorRole:    actor.Role.String(),
		Action:       audit.ActionUnlock,
		Module:       "core",
		ResourceType: "user",
		ResourceID:   after.ID,
		Before:       before,
		After:        after,
	})

	writeOK(w, r, http.StatusOK, toUserResponse(after))
}
