package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nazmul162001/educonnect/internal/core"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
)

// CollegeServiceOptions groups dependencies for CollegeService.
type CollegeServiceOptions struct {
	Colleges     core.CollegeRepository
	StoreTimeout time.Duration
	Logger       *slog.Logger
}

// CollegeService serves the read-only college catalogue and admin seeding.
type CollegeService struct {
	colleges core.CollegeRepository
	calls    storeCaller
	logger   *slog.Logger
}

// NewCollegeService constructs a CollegeService.
func NewCollegeService(opts CollegeServiceOptions) *CollegeService {
	if opts.Colleges == nil {
		panic("CollegeService requires a college repository")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CollegeService{
		colleges: opts.Colleges,
		calls:    newStoreCaller(opts.StoreTimeout),
		logger:   logger.With("component", "college_service"),
	}
}

// Get returns a college by id.
func (s *CollegeService) Get(ctx context.Context, id string) (*model.College, error) {
	canonical, err := model.ParseID(id)
	if err != nil {
		return nil, apperrors.ValidationField("id", model.MsgInvalidCollegeID)
	}
	college, err := read(ctx, s.calls, func(c context.Context) (*model.College, error) {
		return s.colleges.GetByID(c, canonical)
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound(model.MsgCollegeNotFound)
		}
		return nil, fmt.Errorf("get college: %w", err)
	}
	return college, nil
}

// List returns colleges ordered by rating.
func (s *CollegeService) List(ctx context.Context, opts model.CollegeListOptions) ([]*model.College, error) {
	colleges, err := read(ctx, s.calls, func(c context.Context) ([]*model.College, error) {
		return s.colleges.List(c, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	return colleges, nil
}

// Upsert creates or replaces a college.
func (s *CollegeService) Upsert(ctx context.Context, req *model.UpsertCollegeRequest) (*model.College, error) {
	if req == nil {
		return nil, apperrors.Validation("college is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	college, err := write(ctx, s.calls, func(c context.Context) (*model.College, error) {
		return s.colleges.Upsert(c, req)
	})
	if err != nil {
		return nil, fmt.Errorf("upsert college: %w", err)
	}
	s.logger.InfoContext(ctx, "college upserted", "college_id", college.ID, "name", college.Name)
	return college, nil
}
