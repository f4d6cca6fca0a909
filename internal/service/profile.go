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

// MsgEmailTaken is returned when a profile edit collides with another user's email.
const MsgEmailTaken = "Email is already taken"

// ProfileServiceOptions groups dependencies for ProfileService.
type ProfileServiceOptions struct {
	Users        core.UserRepository
	StoreTimeout time.Duration
	Logger       *slog.Logger
}

// ProfileService applies profile edits for the acting principal.
// Edits are last-write-wins; resolution re-reads the store so no cache is invalidated here.
type ProfileService struct {
	users  core.UserRepository
	calls  storeCaller
	logger *slog.Logger
}

// NewProfileService constructs a ProfileService.
func NewProfileService(opts ProfileServiceOptions) *ProfileService {
	if opts.Users == nil {
		panic("ProfileService requires a user repository")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{
		users:  opts.Users,
		calls:  newStoreCaller(opts.StoreTimeout),
		logger: logger.With("component", "profile_service"),
	}
}

// UpdateProfile writes the supplied fields for actingID and returns the stored record.
func (s *ProfileService) UpdateProfile(
	ctx context.Context,
	actingID string,
	req model.UpdateProfileRequest,
) (*domainauth.Principal, error) {
	if actingID == "" {
		return nil, apperrors.Unauthenticated(MsgTokenRequired)
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Empty() {
		return s.current(ctx, actingID)
	}

	if req.Email != nil {
		taken, err := read(ctx, s.calls, func(c context.Context) (bool, error) {
			return s.users.EmailTakenByOther(c, *req.Email, actingID)
		})
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, emailTaken(nil)
		}
	}

	updated, err := write(ctx, s.calls, func(c context.Context) (*domainauth.Principal, error) {
		return s.users.UpdateProfile(c, actingID, req.Changes())
	})
	if err != nil {
		switch {
		case apperrors.IsConflict(err):
			return nil, emailTaken(err)
		case apperrors.IsNotFound(err):
			return nil, apperrors.NotFound(MsgUserNotFound)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.DebugContext(ctx, "profile updated", "user_id", actingID, "fields", len(req.Changes()))
	return updated, nil
}

// SetRole assigns role to the user with the given email and returns the stored record.
func (s *ProfileService) SetRole(ctx context.Context, email string, role domainauth.Role) (*domainauth.Principal, error) {
	if !role.Valid() {
		return nil, apperrors.ValidationField("role", "Invalid role")
	}
	user, err := read(ctx, s.calls, func(c context.Context) (*domainauth.Principal, error) {
		return s.users.GetByEmail(c, email)
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound(MsgUserNotFound)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := writeErr(ctx, s.calls, func(c context.Context) error {
		return s.users.SetRole(c, user.ID, role)
	}); err != nil {
		return nil, fmt.Errorf("set role: %w", err)
	}

	s.logger.InfoContext(ctx, "role changed", "user_id", user.ID, "from", user.Role, "to", role)
	user.Role = role
	return user, nil
}

func (s *ProfileService) current(ctx context.Context, id string) (*domainauth.Principal, error) {
	p, err := read(ctx, s.calls, func(c context.Context) (*domainauth.Principal, error) {
		return s.users.GetByID(c, id)
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NotFound(MsgUserNotFound)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return p, nil
}

func emailTaken(cause error) *apperrors.AppError {
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeConflict,
		Message: MsgEmailTaken,
		Field:   "email",
		Cause:   cause,
	}
}
