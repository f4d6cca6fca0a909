package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nazmul162001/educonnect/internal/domain/model"
)

// MsgCollegesFailed is the 500 message for the public college listing.
const MsgCollegesFailed = "Failed to fetch colleges"

// CollegeServiceInterface defines the read operations used by the public college routes.
type CollegeServiceInterface interface {
	Get(ctx context.Context, id string) (*model.College, error)
	List(ctx context.Context, opts model.CollegeListOptions) ([]*model.College, error)
}

// CollegeHandlers serves the public college catalogue.
type CollegeHandlers struct {
	Svc    CollegeServiceInterface
	Logger *slog.Logger
}

// List returns colleges, optionally filtered by ?search.
// GET /colleges?search=&limit=&offset=.
func (h *CollegeHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 100, 100)
	colleges, err := h.Svc.List(r.Context(), model.CollegeListOptions{
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeAppError(w, r, appErrorParams{Err: err, Logger: h.Logger, Fallback: MsgCollegesFailed})
		return
	}
	if colleges == nil {
		colleges = []*model.College{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "colleges": colleges})
}

// Get returns a single college.
// GET /colleges/{id}.
func (h *CollegeHandlers) Get(w http.ResponseWriter, r *http.Request) {
	college, err := h.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, r, appErrorParams{Err: err, Logger: h.Logger})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "college": college})
}
