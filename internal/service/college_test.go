package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nazmul162001/educonnect/internal/domain/model"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
	"github.com/nazmul162001/educonnect/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newCollegeService(t *testing.T) (*mocks.MockCollegeRepository, *CollegeService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCollegeRepository(ctrl)
	return repo, NewCollegeService(CollegeServiceOptions{Colleges: repo})
}

func TestCollegeService_Get(t *testing.T) {
	t.Parallel()

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()
		_, svc := newCollegeService(t)
		_, err := svc.Get(context.Background(), "abc")
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, model.MsgInvalidCollegeID, err.Error())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		repo, svc := newCollegeService(t)
		repo.EXPECT().GetByID(gomock.Any(), testCollegeID).Return(nil, apperrors.NotFound("Resource not found"))

		_, err := svc.Get(context.Background(), testCollegeID)

		assert.True(t, apperrors.IsNotFound(err))
		assert.Equal(t, model.MsgCollegeNotFound, err.Error())
	})

	t.Run("canonicalizes id", func(t *testing.T) {
		t.Parallel()
		repo, svc := newCollegeService(t)
		want := &model.College{ID: testCollegeID, Name: "Dhaka College"}
		repo.EXPECT().GetByID(gomock.Any(), testCollegeID).Return(want, nil)

		got, err := svc.Get(context.Background(), " 6F1C3F4E-8A55-4D1E-9B57-0B8F3D1A2C11 ")

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestCollegeService_List_RetriesTransientOnce(t *testing.T) {
	t.Parallel()
	repo, svc := newCollegeService(t)
	want := []*model.College{{ID: testCollegeID, Name: "Dhaka College"}}
	opts := model.CollegeListOptions{Search: "dhaka"}

	gomock.InOrder(
		repo.EXPECT().List(gomock.Any(), opts).Return(nil, apperrors.Unavailable(errors.New("reset"))),
		repo.EXPECT().List(gomock.Any(), opts).Return(want, nil),
	)

	got, err := svc.List(context.Background(), opts)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCollegeService_Upsert(t *testing.T) {
	t.Parallel()
	repo, svc := newCollegeService(t)

	_, err := svc.Upsert(context.Background(), &model.UpsertCollegeRequest{Name: " "})
	assert.True(t, apperrors.IsValidation(err))

	req := &model.UpsertCollegeRequest{Name: "Dhaka College", Rating: 4.5}
	repo.EXPECT().Upsert(gomock.Any(), req).Return(&model.College{ID: testCollegeID, Name: req.Name}, nil)

	got, err := svc.Upsert(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, testCollegeID, got.ID)
}
