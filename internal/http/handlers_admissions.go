package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	"github.com/nazmul162001/educonnect/internal/service"
)

// AdmissionServiceInterface defines the admission operations used by the handlers.
type AdmissionServiceInterface interface {
	Create(ctx context.Context, actingID string, req model.CreateAdmissionRequest) (*model.Admission, error)
	List(ctx context.Context, actingID string) ([]*model.AdmissionWithCollege, error)
	Update(ctx context.Context, actingID string, req model.UpdateAdmissionRequest) (*model.Admission, error)
	UpdateStatus(
		ctx context.Context,
		actor *domainauth.Principal,
		id string,
		req model.UpdateAdmissionStatusRequest,
	) (*model.Admission, error)
}

// AdmissionHandlers serves /admissions. Every route runs behind RequirePrincipal and
// acts as the principal in the request context, never as an id from the body.
type AdmissionHandlers struct {
	Svc    AdmissionServiceInterface
	Logger *slog.Logger
}

func (h *AdmissionHandlers) principal(w http.ResponseWriter, r *http.Request) (*domainauth.Principal, bool) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Message: service.MsgTokenRequired})
	}
	return p, ok
}

func (h *AdmissionHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	writeAppError(w, r, appErrorParams{Err: err, Logger: h.Logger})
}

// List returns the acting principal's applications.
// GET /admissions.
func (h *AdmissionHandlers) List(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	admissions, err := h.Svc.List(r.Context(), p.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if admissions == nil {
		admissions = []*model.AdmissionWithCollege{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "admissions": admissions})
}

// Create submits an application for the acting principal.
// POST /admissions.
func (h *AdmissionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req model.CreateAdmissionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	admission, err := h.Svc.Create(r.Context(), p.ID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"success": true, "admission": admission})
}

// Update edits one of the acting principal's applications.
// PUT /admissions.
func (h *AdmissionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req model.UpdateAdmissionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	admission, err := h.Svc.Update(r.Context(), p.ID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "admission": admission})
}

// UpdateStatus records a review decision.
// PATCH /admissions/{id}/status.
func (h *AdmissionHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	var req model.UpdateAdmissionStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	admission, err := h.Svc.UpdateStatus(r.Context(), p, chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "admission": admission})
}
