package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nazmul162001/educonnect/internal/core"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
)

// MsgInsufficientPermissions is returned by the reviewer-only operations.
const MsgInsufficientPermissions = "Insufficient permissions"

// AdmissionServiceOptions groups dependencies for AdmissionService.
type AdmissionServiceOptions struct {
	Admissions core.AdmissionRepository
	Colleges   core.CollegeRepository
	Config     AdmissionServiceConfig
}

// AdmissionServiceConfig holds optional settings for AdmissionService.
type AdmissionServiceConfig struct {
	// EnforceWindow rejects applications outside a college's admission dates.
	EnforceWindow bool
	StoreTimeout  time.Duration
	Logger        *slog.Logger
	Now           func() time.Time
}

// AdmissionService manages applications owned by the acting principal.
type AdmissionService struct {
	admissions    core.AdmissionRepository
	colleges      core.CollegeRepository
	enforceWindow bool
	calls         storeCaller
	logger        *slog.Logger
	now           func() time.Time
}

// NewAdmissionService constructs an AdmissionService.
func NewAdmissionService(opts AdmissionServiceOptions) *AdmissionService {
	if opts.Admissions == nil || opts.Colleges == nil {
		panic("AdmissionService requires admission and college repositories")
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Config.Now
	if now == nil {
		now = time.Now
	}
	return &AdmissionService{
		admissions:    opts.Admissions,
		colleges:      opts.Colleges,
		enforceWindow: opts.Config.EnforceWindow,
		calls:         newStoreCaller(opts.Config.StoreTimeout),
		logger:        logger.With("component", "admission_service"),
		now:           now,
	}
}

// Create submits an application for actingID. The owner always comes from the
// acting identity, never from the request body.
func (s *AdmissionService) Create(
	ctx context.Context,
	actingID string,
	req model.CreateAdmissionRequest,
) (*model.Admission, error) {
	if actingID == "" {
		return nil, apperrors.Unauthenticated(MsgTokenRequired)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	college, err := read(ctx, s.calls, func(c context.Context) (*model.College, error) {
		return s.colleges.GetByID(c, req.CollegeID)
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound(model.MsgCollegeNotFound)
		}
		if apperrors.IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("load college: %w", err)
	}
	if s.enforceWindow && !college.AdmissionOpen(s.now()) {
		return nil, apperrors.ValidationField("collegeId", model.MsgAdmissionClosed)
	}

	exists, err := read(ctx, s.calls, func(c context.Context) (bool, error) {
		return s.admissions.ExistsForUserCollege(c, actingID, req.CollegeID)
	})
	if err != nil {
		return nil, fmt.Errorf("check duplicate application: %w", err)
	}
	if exists {
		return nil, apperrors.Conflict(model.MsgAdmissionDuplicate)
	}

	admission, err := write(ctx, s.calls, func(c context.Context) (*model.Admission, error) {
		return s.admissions.Create(c, actingID, &req)
	})
	if err != nil {
		switch {
		case apperrors.IsConflict(err):
			return nil, apperrors.Conflict(model.MsgAdmissionDuplicate)
		case apperrors.IsNotFound(err):
			return nil, apperrors.NotFound(model.MsgCollegeNotFound)
		}
		return nil, fmt.Errorf("create admission: %w", err)
	}

	s.logger.InfoContext(ctx, "admission submitted",
		"admission_id", admission.ID, "user_id", actingID, "college_id", req.CollegeID)
	return admission, nil
}

// List returns actingID's applications with their colleges.
func (s *AdmissionService) List(ctx context.Context, actingID string) ([]*model.AdmissionWithCollege, error) {
	if actingID == "" {
		return nil, apperrors.Unauthenticated(MsgTokenRequired)
	}
	out, err := read(ctx, s.calls, func(c context.Context) ([]*model.AdmissionWithCollege, error) {
		return s.admissions.ListByUser(c, actingID)
	})
	if err != nil {
		return nil, fmt.Errorf("list admissions: %w", err)
	}
	return out, nil
}

// Update edits an application owned by actingID. Records owned by someone else
// produce the same not-found error as records that do not exist.
func (s *AdmissionService) Update(
	ctx context.Context,
	actingID string,
	req model.UpdateAdmissionRequest,
) (*model.Admission, error) {
	if actingID == "" {
		return nil, apperrors.Unauthenticated(MsgTokenRequired)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	admission, err := write(ctx, s.calls, func(c context.Context) (*model.Admission, error) {
		return s.admissions.Update(c, core.UpdateAdmissionParams{
			ID:      req.AdmissionID,
			OwnerID: actingID,
			Req:     req,
		})
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound(model.MsgAdmissionNotFound)
		}
		return nil, fmt.Errorf("update admission: %w", err)
	}
	return admission, nil
}

// UpdateStatus sets the review status. Only ADMIN and COLLEGE_ADMIN may review.
func (s *AdmissionService) UpdateStatus(
	ctx context.Context,
	actor *domainauth.Principal,
	id string,
	req model.UpdateAdmissionStatusRequest,
) (*model.Admission, error) {
	if actor == nil {
		return nil, apperrors.Unauthenticated(MsgTokenRequired)
	}
	if !actor.HasRole(domainauth.RoleAdmin, domainauth.RoleCollegeAdmin) {
		return nil, apperrors.Forbidden(MsgInsufficientPermissions)
	}
	status, ok := model.ParseAdmissionStatus(req.Status)
	if !ok {
		return nil, apperrors.ValidationField("status", model.MsgInvalidStatus)
	}

	admission, err := write(ctx, s.calls, func(c context.Context) (*model.Admission, error) {
		return s.admissions.UpdateStatus(c, id, status)
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound(model.MsgAdmissionNotFound)
		}
		return nil, fmt.Errorf("update admission status: %w", err)
	}

	s.logger.InfoContext(ctx, "admission reviewed",
		"admission_id", admission.ID, "status", string(status), "reviewer_id", actor.ID)
	return admission, nil
}
