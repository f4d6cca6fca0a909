package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
	"github.com/nazmul162001/educonnect/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdmissions is a test double for AdmissionServiceInterface keyed by owner.
type fakeAdmissions struct {
	byID      map[string]*model.Admission
	createdBy string
	reviewer  *domainauth.Principal
}

func newFakeAdmissions() *fakeAdmissions {
	return &fakeAdmissions{byID: map[string]*model.Admission{
		"adm-1": {ID: "adm-1", UserID: "owner", CollegeID: "col-1", Course: "CS", Status: model.AdmissionStatusPending},
	}}
}

func (f *fakeAdmissions) Create(
	_ context.Context,
	actingID string,
	req model.CreateAdmissionRequest,
) (*model.Admission, error) {
	f.createdBy = actingID
	if req.CollegeID == "unknown" {
		return nil, apperrors.NotFound(model.MsgCollegeNotFound)
	}
	return &model.Admission{ID: "adm-2", UserID: actingID, CollegeID: req.CollegeID, Status: model.AdmissionStatusPending}, nil
}

func (f *fakeAdmissions) List(_ context.Context, actingID string) ([]*model.AdmissionWithCollege, error) {
	var out []*model.AdmissionWithCollege
	for _, a := range f.byID {
		if a.UserID == actingID {
			out = append(out, &model.AdmissionWithCollege{Admission: *a})
		}
	}
	return out, nil
}

func (f *fakeAdmissions) Update(
	_ context.Context,
	actingID string,
	req model.UpdateAdmissionRequest,
) (*model.Admission, error) {
	a, ok := f.byID[req.AdmissionID]
	if !ok || a.UserID != actingID {
		return nil, apperrors.NotFound(model.MsgAdmissionNotFound)
	}
	if req.Course != nil {
		a.Course = *req.Course
	}
	return a, nil
}

func (f *fakeAdmissions) UpdateStatus(
	_ context.Context,
	actor *domainauth.Principal,
	id string,
	req model.UpdateAdmissionStatusRequest,
) (*model.Admission, error) {
	f.reviewer = actor
	a, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NotFound(model.MsgAdmissionNotFound)
	}
	a.Status = model.AdmissionStatus(req.Status)
	return a, nil
}

func asPrincipal(r *http.Request, id string, role domainauth.Role) *http.Request {
	p := &domainauth.Principal{ID: id, Role: role}
	return r.WithContext(SetPrincipalInContext(r.Context(), p, domainauth.ProofToken))
}

func TestAdmissionHandlers_Create_UsesActingIdentity(t *testing.T) {
	svc := newFakeAdmissions()
	h := &AdmissionHandlers{Svc: svc}

	body := `{"collegeId":"col-1","userId":"someone-else","studentName":"Ada"}`
	req := asPrincipal(httptest.NewRequest(http.MethodPost, "/admissions", strings.NewReader(body)), "owner", domainauth.RoleStudent)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "owner", svc.createdBy)
	out := decodeBody(t, rec)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "owner", out["admission"].(map[string]any)["userId"])
}

func TestAdmissionHandlers_Create_UnknownCollege(t *testing.T) {
	h := &AdmissionHandlers{Svc: newFakeAdmissions()}
	req := asPrincipal(
		httptest.NewRequest(http.MethodPost, "/admissions", strings.NewReader(`{"collegeId":"unknown"}`)),
		"owner", domainauth.RoleStudent)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, model.MsgCollegeNotFound, errorMessage(t, rec))
}

func TestAdmissionHandlers_List(t *testing.T) {
	h := &AdmissionHandlers{Svc: newFakeAdmissions()}

	rec := httptest.NewRecorder()
	h.List(rec, asPrincipal(httptest.NewRequest(http.MethodGet, "/admissions", nil), "owner", domainauth.RoleStudent))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["admissions"], 1)

	rec = httptest.NewRecorder()
	h.List(rec, asPrincipal(httptest.NewRequest(http.MethodGet, "/admissions", nil), "stranger", domainauth.RoleStudent))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"admissions":[],"success":true}`, strings.TrimSpace(rec.Body.String()))
}

func TestAdmissionHandlers_Update_ForeignRecordLooksMissing(t *testing.T) {
	h := &AdmissionHandlers{Svc: newFakeAdmissions()}

	update := func(actingID, id string) *httptest.ResponseRecorder {
		body := `{"admissionId":"` + id + `","course":"Physics"}`
		req := asPrincipal(httptest.NewRequest(http.MethodPut, "/admissions", strings.NewReader(body)), actingID, domainauth.RoleStudent)
		rec := httptest.NewRecorder()
		h.Update(rec, req)
		return rec
	}

	foreign := update("stranger", "adm-1")
	missing := update("stranger", "adm-404")
	assert.Equal(t, http.StatusNotFound, foreign.Code)
	assert.Equal(t, missing.Code, foreign.Code)
	assert.Equal(t, missing.Body.String(), foreign.Body.String())

	own := update("owner", "adm-1")
	assert.Equal(t, http.StatusOK, own.Code)
	assert.Equal(t, "Physics", decodeBody(t, own)["admission"].(map[string]any)["course"])
}

func TestAdmissionHandlers_UpdateStatus(t *testing.T) {
	svc := newFakeAdmissions()
	h := &AdmissionHandlers{Svc: svc}
	r := chi.NewRouter()
	r.Patch("/admissions/{id}/status", h.UpdateStatus)

	req := asPrincipal(
		httptest.NewRequest(http.MethodPatch, "/admissions/adm-1/status", strings.NewReader(`{"status":"APPROVED"}`)),
		"rev", domainauth.RoleAdmin)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "APPROVED", decodeBody(t, rec)["admission"].(map[string]any)["status"])
	require.NotNil(t, svc.reviewer)
	assert.Equal(t, "rev", svc.reviewer.ID)
}

func TestAdmissionHandlers_NoPrincipal(t *testing.T) {
	h := &AdmissionHandlers{Svc: newFakeAdmissions()}
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/admissions", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, service.MsgTokenRequired, errorMessage(t, rec))
}
