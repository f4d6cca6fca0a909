package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/nazmul162001/educonnect/internal/core"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
	"github.com/nazmul162001/educonnect/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCollege(t *testing.T, db *sql.DB, name string) *model.College {
	t.Helper()
	c, err := NewCollegeRepo(db).Upsert(context.Background(), testutil.NewCollegeRequest(name).Build())
	require.NoError(t, err)
	return c
}

func TestAdmissionRepo_Create_List(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		tp := NewFixedTimeProvider(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
		repo := NewAdmissionRepoWithTimeProvider(db, tp)
		user := createTestUser(t, db, "Ana", "ana@example.com")
		first := createTestCollege(t, db, "First College")
		second := createTestCollege(t, db, "Second College")

		a1, err := repo.Create(ctx, user.ID, testutil.NewAdmissionRequest(first.ID).Build())
		require.NoError(t, err)
		assert.Equal(t, model.AdmissionStatusPending, a1.Status)
		assert.Equal(t, user.ID, a1.UserID)

		tp.AddTime(time.Minute)
		_, err = repo.Create(ctx, user.ID, testutil.NewAdmissionRequest(second.ID).WithCourse("EEE").Build())
		require.NoError(t, err)

		exists, err := repo.ExistsForUserCollege(ctx, user.ID, first.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		list, err := repo.ListByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Second College", list[0].College.Name)
		assert.Equal(t, second.ID, list[0].College.ID)
		assert.Equal(t, a1.ID, list[1].ID)

		other := createTestUser(t, db, "Bo", "bo@example.com")
		empty, err := repo.ListByUser(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}

func TestAdmissionRepo_DuplicateAndUnknownCollege(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAdmissionRepo(db)
		user := createTestUser(t, db, "Ana", "ana@example.com")
		college := createTestCollege(t, db, "Only College")

		_, err := repo.Create(ctx, user.ID, testutil.NewAdmissionRequest(college.ID).Build())
		require.NoError(t, err)

		_, err = repo.Create(ctx, user.ID, testutil.NewAdmissionRequest(college.ID).Build())
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.Equal(t, model.MsgAdmissionDuplicate, err.Error())

		_, err = repo.Create(ctx, user.ID, testutil.NewAdmissionRequest("00000000-0000-0000-0000-000000000000").Build())
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.Equal(t, model.MsgCollegeNotFound, err.Error())
	})
}

func TestAdmissionRepo_Update_OwnerScoped(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAdmissionRepo(db)
		owner := createTestUser(t, db, "Ana", "ana@example.com")
		other := createTestUser(t, db, "Bo", "bo@example.com")
		college := createTestCollege(t, db, "College")
		a, err := repo.Create(ctx, owner.ID, testutil.NewAdmissionRequest(college.ID).Build())
		require.NoError(t, err)

		course := "Physics"
		req := model.UpdateAdmissionRequest{AdmissionID: a.ID, Course: &course}

		_, err = repo.Update(ctx, core.UpdateAdmissionParams{ID: a.ID, OwnerID: other.ID, Req: req})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.Equal(t, model.MsgAdmissionNotFound, err.Error())

		updated, err := repo.Update(ctx, core.UpdateAdmissionParams{ID: a.ID, OwnerID: owner.ID, Req: req})
		require.NoError(t, err)
		assert.Equal(t, "Physics", updated.Course)
		assert.Equal(t, a.StudentName, updated.StudentName)

		unchanged, err := repo.Update(ctx, core.UpdateAdmissionParams{
			ID:      a.ID,
			OwnerID: owner.ID,
			Req:     model.UpdateAdmissionRequest{AdmissionID: a.ID},
		})
		require.NoError(t, err)
		assert.Equal(t, "Physics", unchanged.Course)
	})
}

func TestAdmissionRepo_UpdateStatus(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAdmissionRepo(db)
		user := createTestUser(t, db, "Ana", "ana@example.com")
		college := createTestCollege(t, db, "College")
		a, err := repo.Create(ctx, user.ID, testutil.NewAdmissionRequest(college.ID).Build())
		require.NoError(t, err)

		got, err := repo.UpdateStatus(ctx, a.ID, model.AdmissionStatusWaitlisted)
		require.NoError(t, err)
		assert.Equal(t, model.AdmissionStatusWaitlisted, got.Status)

		_, err = repo.UpdateStatus(ctx, "00000000-0000-0000-0000-000000000000", model.AdmissionStatusApproved)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestBuildAdmissionSet(t *testing.T) {
	name := " Ana "
	phone := "123"

	clause, args := buildAdmissionSet(model.UpdateAdmissionRequest{StudentName: &name, Phone: &phone})

	assert.Equal(t, "student_name = $1, phone = $2", clause)
	assert.Equal(t, []any{"Ana", "123"}, args)

	clause, args = buildAdmissionSet(model.UpdateAdmissionRequest{})
	assert.Empty(t, clause)
	assert.Empty(t, args)
}
