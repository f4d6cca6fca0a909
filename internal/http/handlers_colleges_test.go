package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeColleges struct {
	listOpts model.CollegeListOptions
	listErr  error
}

func (f *fakeColleges) Get(_ context.Context, id string) (*model.College, error) {
	switch id {
	case "col-1":
		return &model.College{ID: "col-1", Name: "Notre Dame College", Sports: []string{}, Events: []model.CollegeEvent{}}, nil
	case "not-a-uuid":
		return nil, apperrors.ValidationField("id", model.MsgInvalidCollegeID)
	}
	return nil, apperrors.NotFound(model.MsgCollegeNotFound)
}

func (f *fakeColleges) List(_ context.Context, opts model.CollegeListOptions) ([]*model.College, error) {
	f.listOpts = opts
	if f.listErr != nil {
		return nil, f.listErr
	}
	return nil, nil
}

func collegeRouter(h *CollegeHandlers) http.Handler {
	r := chi.NewRouter()
	r.Get("/colleges", h.List)
	r.Get("/colleges/{id}", h.Get)
	return r
}

func TestCollegeHandlers_List(t *testing.T) {
	svc := &fakeColleges{}
	router := collegeRouter(&CollegeHandlers{Svc: svc})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/colleges?search=dhaka&limit=500&offset=-3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"colleges":[]}`, rec.Body.String())
	assert.Equal(t, model.CollegeListOptions{Search: "dhaka", Limit: 100, Offset: 0}, svc.listOpts)
}

func TestCollegeHandlers_List_Failure(t *testing.T) {
	svc := &fakeColleges{listErr: errors.New("list colleges: pq: relation does not exist")}
	router := collegeRouter(&CollegeHandlers{Svc: svc})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/colleges", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, MsgCollegesFailed, errorMessage(t, rec))
}

func TestCollegeHandlers_Get(t *testing.T) {
	router := collegeRouter(&CollegeHandlers{Svc: &fakeColleges{}})

	tests := []struct {
		id         string
		wantStatus int
		wantError  string
	}{
		{id: "col-1", wantStatus: http.StatusOK},
		{id: "not-a-uuid", wantStatus: http.StatusBadRequest, wantError: model.MsgInvalidCollegeID},
		{id: "2c1b7e3e-0000-4000-8000-000000000000", wantStatus: http.StatusNotFound, wantError: model.MsgCollegeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/colleges/"+tt.id, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorMessage(t, rec))
				return
			}
			out := decodeBody(t, rec)
			assert.Equal(t, "Notre Dame College", out["college"].(map[string]any)["name"])
		})
	}
}
