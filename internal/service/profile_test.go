package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nazmul162001/educonnect/internal/core"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
	"github.com/nazmul162001/educonnect/internal/mocks"
	authmocks "github.com/nazmul162001/educonnect/internal/mocks/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string { return &s }

func TestProfileService_UpdateProfile(t *testing.T) {
	t.Parallel()
	users := authmocks.NewMemoryUserStore()
	svc := NewProfileService(ProfileServiceOptions{Users: users})
	ctx := context.Background()

	ana, err := users.Create(ctx, core.CreateUserParams{Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)
	_, err = users.Create(ctx, core.CreateUserParams{Name: "Bo", Email: "bo@x.com"})
	require.NoError(t, err)

	t.Run("writes supplied fields only", func(t *testing.T) {
		p, err := svc.UpdateProfile(ctx, ana.ID, model.UpdateProfileRequest{
			City:    strPtr("  Dhaka "),
			Country: strPtr("BD"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Dhaka", p.City)
		assert.Equal(t, "BD", p.Country)
		assert.Equal(t, "Ana", p.Name)
	})

	t.Run("own email is not a conflict", func(t *testing.T) {
		p, err := svc.UpdateProfile(ctx, ana.ID, model.UpdateProfileRequest{Email: strPtr("ana@x.com")})
		require.NoError(t, err)
		assert.Equal(t, "ana@x.com", p.Email)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, ana.ID, model.UpdateProfileRequest{Email: strPtr("BO@x.com")})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.Equal(t, MsgEmailTaken, err.Error())
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, ana.ID, model.UpdateProfileRequest{Email: strPtr("not-an-email")})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("empty request returns current record", func(t *testing.T) {
		p, err := svc.UpdateProfile(ctx, ana.ID, model.UpdateProfileRequest{})
		require.NoError(t, err)
		assert.Equal(t, "Dhaka", p.City)
	})

	t.Run("no acting identity", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, "", model.UpdateProfileRequest{City: strPtr("X")})
		assert.True(t, apperrors.IsUnauthenticated(err))
	})
}

func TestProfileService_LastWriteWins(t *testing.T) {
	t.Parallel()
	users := authmocks.NewMemoryUserStore()
	svc := NewProfileService(ProfileServiceOptions{Users: users})
	ctx := context.Background()
	u, err := users.Create(ctx, core.CreateUserParams{Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, u.ID, model.UpdateProfileRequest{City: strPtr("First")})
	require.NoError(t, err)
	_, err = svc.UpdateProfile(ctx, u.ID, model.UpdateProfileRequest{City: strPtr("Second")})
	require.NoError(t, err)

	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second", got.City)
}

func TestProfileService_WriteTimeConflictMapsToEmailTaken(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	svc := NewProfileService(ProfileServiceOptions{Users: users})

	users.EXPECT().EmailTakenByOther(gomock.Any(), "new@x.com", "u-1").Return(false, nil)
	users.EXPECT().
		UpdateProfile(gomock.Any(), "u-1", []model.ProfileField{{Column: "email", Value: "new@x.com"}}).
		Return(nil, &apperrors.AppError{Code: apperrors.ErrCodeConflict, Message: "User already exists", Field: "email"})

	_, err := svc.UpdateProfile(context.Background(), "u-1", model.UpdateProfileRequest{Email: strPtr("new@x.com")})

	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "email", apperrors.GetField(err))
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, MsgEmailTaken, appErr.Message)
}

func TestProfileService_ReadRetriedOnceWriteNever(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	svc := NewProfileService(ProfileServiceOptions{Users: users})
	down := apperrors.Unavailable(errors.New("pg down"))

	gomock.InOrder(
		users.EXPECT().EmailTakenByOther(gomock.Any(), "a@x.com", "u-1").Return(false, down),
		users.EXPECT().EmailTakenByOther(gomock.Any(), "a@x.com", "u-1").Return(false, nil),
		users.EXPECT().UpdateProfile(gomock.Any(), "u-1", gomock.Any()).Return(nil, down).Times(1),
	)

	_, err := svc.UpdateProfile(context.Background(), "u-1", model.UpdateProfileRequest{Email: strPtr("a@x.com")})

	require.Error(t, err)
	assert.True(t, apperrors.IsTransient(err))
}

func TestProfileService_UnknownUser(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	svc := NewProfileService(ProfileServiceOptions{Users: users})

	users.EXPECT().UpdateProfile(gomock.Any(), "u-1", gomock.Any()).Return(nil, apperrors.NotFound("User not found"))

	_, err := svc.UpdateProfile(context.Background(), "u-1", model.UpdateProfileRequest{Name: strPtr("New")})

	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, MsgUserNotFound, err.Error())
}

func TestProfileService_SetRole(t *testing.T) {
	t.Parallel()
	users := authmocks.NewMemoryUserStore()
	svc := NewProfileService(ProfileServiceOptions{Users: users})
	ctx := context.Background()
	u, err := users.Create(ctx, core.CreateUserParams{Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)

	p, err := svc.SetRole(ctx, "ANA@x.com", domainauth.RoleCollegeAdmin)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleCollegeAdmin, p.Role)

	stored, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleCollegeAdmin, stored.Role)

	_, err = svc.SetRole(ctx, "ana@x.com", domainauth.Role("ROOT"))
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.SetRole(ctx, "nobody@x.com", domainauth.RoleAdmin)
	assert.True(t, apperrors.IsNotFound(err))
}
