package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nazmul162001/educonnect/internal/core"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
	"github.com/nazmul162001/educonnect/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testCollegeID   = "6f1c3f4e-8a55-4d1e-9b57-0b8f3d1a2c11"
	testAdmissionID = "9d2a7c1e-1b44-4c3a-8f0e-5e6d7c8b9a00"
	ownerID         = "11111111-1111-1111-1111-111111111111"
	otherID         = "22222222-2222-2222-2222-222222222222"
)

func newAdmissionService(
	t *testing.T,
	cfg AdmissionServiceConfig,
) (*mocks.MockAdmissionRepository, *mocks.MockCollegeRepository, *AdmissionService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	admissions := mocks.NewMockAdmissionRepository(ctrl)
	colleges := mocks.NewMockCollegeRepository(ctrl)
	svc := NewAdmissionService(AdmissionServiceOptions{
		Admissions: admissions,
		Colleges:   colleges,
		Config:     cfg,
	})
	return admissions, colleges, svc
}

func validCreateRequest() model.CreateAdmissionRequest {
	return model.CreateAdmissionRequest{
		CollegeID:   testCollegeID,
		StudentName: "Ana",
		Course:      "CSE",
		Email:       "ana@x.com",
		Phone:       "+8801700000000",
	}
}

func TestAdmissionService_Create_Success(t *testing.T) {
	t.Parallel()
	admissions, colleges, svc := newAdmissionService(t, AdmissionServiceConfig{})
	req := validCreateRequest()
	want := &model.Admission{ID: testAdmissionID, UserID: ownerID, CollegeID: testCollegeID, Status: model.AdmissionStatusPending}

	colleges.EXPECT().GetByID(gomock.Any(), testCollegeID).Return(&model.College{ID: testCollegeID}, nil)
	admissions.EXPECT().ExistsForUserCollege(gomock.Any(), ownerID, testCollegeID).Return(false, nil)
	admissions.EXPECT().
		Create(gomock.Any(), ownerID, gomock.Any()).
		DoAndReturn(func(_ context.Context, userID string, r *model.CreateAdmissionRequest) (*model.Admission, error) {
			assert.Equal(t, ownerID, userID)
			assert.Equal(t, "Ana", r.StudentName)
			return want, nil
		})

	got, err := svc.Create(context.Background(), ownerID, req)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAdmissionService_Create_UnknownCollege(t *testing.T) {
	t.Parallel()
	_, colleges, svc := newAdmissionService(t, AdmissionServiceConfig{})

	colleges.EXPECT().GetByID(gomock.Any(), testCollegeID).Return(nil, apperrors.NotFound("Resource not found"))

	_, err := svc.Create(context.Background(), ownerID, validCreateRequest())

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, model.MsgCollegeNotFound, err.Error())
}

func TestAdmissionService_Create_Duplicate(t *testing.T) {
	t.Parallel()

	t.Run("detected before insert", func(t *testing.T) {
		t.Parallel()
		admissions, colleges, svc := newAdmissionService(t, AdmissionServiceConfig{})
		colleges.EXPECT().GetByID(gomock.Any(), testCollegeID).Return(&model.College{ID: testCollegeID}, nil)
		admissions.EXPECT().ExistsForUserCollege(gomock.Any(), ownerID, testCollegeID).Return(true, nil)
		admissions.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Create(context.Background(), ownerID, validCreateRequest())

		assert.True(t, apperrors.IsConflict(err))
		assert.Equal(t, model.MsgAdmissionDuplicate, err.Error())
	})

	t.Run("lost race at insert", func(t *testing.T) {
		t.Parallel()
		admissions, colleges, svc := newAdmissionService(t, AdmissionServiceConfig{})
		colleges.EXPECT().GetByID(gomock.Any(), testCollegeID).Return(&model.College{ID: testCollegeID}, nil)
		admissions.EXPECT().ExistsForUserCollege(gomock.Any(), ownerID, testCollegeID).Return(false, nil)
		admissions.EXPECT().
			Create(gomock.Any(), ownerID, gomock.Any()).
			Return(nil, apperrors.Conflict(model.MsgAdmissionDuplicate)).
			Times(1)

		_, err := svc.Create(context.Background(), ownerID, validCreateRequest())

		assert.True(t, apperrors.IsConflict(err))
		assert.Equal(t, model.MsgAdmissionDuplicate, err.Error())
	})
}

func TestAdmissionService_Create_Validation(t *testing.T) {
	t.Parallel()
	_, _, svc := newAdmissionService(t, AdmissionServiceConfig{})

	req := validCreateRequest()
	req.Course = ""
	_, err := svc.Create(context.Background(), ownerID, req)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, model.MsgAdmissionFieldsRequired, err.Error())

	req = validCreateRequest()
	req.CollegeID = "not-a-uuid"
	_, err = svc.Create(context.Background(), ownerID, req)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, model.MsgInvalidCollegeID, err.Error())

	_, err = svc.Create(context.Background(), "", validCreateRequest())
	assert.True(t, apperrors.IsUnauthenticated(err))
}

func TestAdmissionService_Create_ClosedWindow(t *testing.T) {
	t.Parallel()
	end := fixedNow.Add(-24 * time.Hour)
	_, colleges, svc := newAdmissionService(t, AdmissionServiceConfig{
		EnforceWindow: true,
		Now:           func() time.Time { return fixedNow },
	})
	colleges.EXPECT().GetByID(gomock.Any(), testCollegeID).Return(&model.College{ID: testCollegeID, AdmissionEnd: &end}, nil)

	_, err := svc.Create(context.Background(), ownerID, validCreateRequest())

	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, model.MsgAdmissionClosed, err.Error())
}

func TestAdmissionService_Update_OwnershipMatchesNotFound(t *testing.T) {
	t.Parallel()
	admissions, _, svc := newAdmissionService(t, AdmissionServiceConfig{})
	name := "Renamed"

	admissions.EXPECT().
		Update(gomock.Any(), core.UpdateAdmissionParams{
			ID:      testAdmissionID,
			OwnerID: otherID,
			Req:     model.UpdateAdmissionRequest{AdmissionID: testAdmissionID, StudentName: &name},
		}).
		Return(nil, apperrors.NotFound(model.MsgAdmissionNotFound))
	admissions.EXPECT().
		Update(gomock.Any(), core.UpdateAdmissionParams{
			ID:      "00000000-0000-0000-0000-000000000000",
			OwnerID: otherID,
			Req:     model.UpdateAdmissionRequest{AdmissionID: "00000000-0000-0000-0000-000000000000", StudentName: &name},
		}).
		Return(nil, apperrors.NotFound("Resource not found"))

	_, notOwned := svc.Update(context.Background(), otherID,
		model.UpdateAdmissionRequest{AdmissionID: testAdmissionID, StudentName: &name})
	_, missing := svc.Update(context.Background(), otherID,
		model.UpdateAdmissionRequest{AdmissionID: "00000000-0000-0000-0000-000000000000", StudentName: &name})

	require.Error(t, notOwned)
	require.Error(t, missing)
	assert.Equal(t, missing.Error(), notOwned.Error())
	assert.Equal(t, apperrors.GetCode(missing), apperrors.GetCode(notOwned))
	assert.Equal(t, model.MsgAdmissionNotFound, notOwned.Error())
}

func TestAdmissionService_Update_Owner(t *testing.T) {
	t.Parallel()
	admissions, _, svc := newAdmissionService(t, AdmissionServiceConfig{})
	course := "EEE"
	want := &model.Admission{ID: testAdmissionID, UserID: ownerID, Course: course}

	admissions.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p core.UpdateAdmissionParams) (*model.Admission, error) {
			assert.Equal(t, ownerID, p.OwnerID)
			return want, nil
		})

	got, err := svc.Update(context.Background(), ownerID,
		model.UpdateAdmissionRequest{AdmissionID: testAdmissionID, Course: &course})

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestAdmissionService_List(t *testing.T) {
	t.Parallel()
	admissions, _, svc := newAdmissionService(t, AdmissionServiceConfig{})
	rows := []*model.AdmissionWithCollege{{
		Admission: model.Admission{ID: testAdmissionID, UserID: ownerID},
		College:   model.CollegeSummary{ID: testCollegeID, Name: "Dhaka College"},
	}}

	admissions.EXPECT().ListByUser(gomock.Any(), ownerID).Return(rows, nil)

	got, err := svc.List(context.Background(), ownerID)

	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestAdmissionService_UpdateStatus(t *testing.T) {
	t.Parallel()
	admin := &domainauth.Principal{ID: otherID, Role: domainauth.RoleCollegeAdmin}
	student := &domainauth.Principal{ID: ownerID, Role: domainauth.RoleStudent}

	t.Run("student forbidden", func(t *testing.T) {
		t.Parallel()
		_, _, svc := newAdmissionService(t, AdmissionServiceConfig{})
		_, err := svc.UpdateStatus(context.Background(), student, testAdmissionID,
			model.UpdateAdmissionStatusRequest{Status: "APPROVED"})
		assert.True(t, apperrors.IsForbidden(err))
		assert.Equal(t, MsgInsufficientPermissions, err.Error())
	})

	t.Run("invalid status", func(t *testing.T) {
		t.Parallel()
		_, _, svc := newAdmissionService(t, AdmissionServiceConfig{})
		_, err := svc.UpdateStatus(context.Background(), admin, testAdmissionID,
			model.UpdateAdmissionStatusRequest{Status: "MAYBE"})
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("reviewer approves", func(t *testing.T) {
		t.Parallel()
		admissions, _, svc := newAdmissionService(t, AdmissionServiceConfig{})
		want := &model.Admission{ID: testAdmissionID, Status: model.AdmissionStatusApproved}
		admissions.EXPECT().UpdateStatus(gomock.Any(), testAdmissionID, model.AdmissionStatusApproved).Return(want, nil)

		got, err := svc.UpdateStatus(context.Background(), admin, testAdmissionID,
			model.UpdateAdmissionStatusRequest{Status: "approved"})

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		t.Parallel()
		admissions, _, svc := newAdmissionService(t, AdmissionServiceConfig{})
		admissions.EXPECT().
			UpdateStatus(gomock.Any(), testAdmissionID, model.AdmissionStatusRejected).
			Return(nil, errors.New("boom"))

		_, err := svc.UpdateStatus(context.Background(), admin, testAdmissionID,
			model.UpdateAdmissionStatusRequest{Status: "REJECTED"})

		require.Error(t, err)
		assert.True(t, apperrors.IsDependency(err))
	})
}
