package devseed

import (
	"context"
	"errors"
	"testing"

	"github.com/nazmul162001/educonnect/internal/core"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	"github.com/nazmul162001/educonnect/internal/mocks"
	authmocks "github.com/nazmul162001/educonnect/internal/mocks/auth"
	"github.com/nazmul162001/educonnect/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDefaultCollegesAreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range DefaultColleges() {
		require.NoError(t, c.Validate(), c.Name)
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
}

func TestRunSeedsCollegesAndAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	colleges := mocks.NewMockCollegeRepository(ctrl)
	colleges.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.UpsertCollegeRequest) (*model.College, error) {
			return &model.College{ID: req.ID, Name: req.Name}, nil
		}).
		Times(2 * len(DefaultColleges()))

	users := authmocks.NewMemoryUserStore()
	svcs := Services{
		Colleges: service.NewCollegeService(service.CollegeServiceOptions{Colleges: colleges}),
		Users:    users,
		Hasher:   authmocks.PlainHasher{},
	}
	ctx := context.Background()

	// A pre-existing account keeps its record but gets the demo role.
	existing, err := users.Create(ctx, core.CreateUserParams{Name: "Already Here", Email: "admin@educonnect.dev"})
	require.NoError(t, err)

	require.NoError(t, Run(ctx, svcs, nil))
	require.NoError(t, Run(ctx, svcs, nil))

	assert.Equal(t, []string{
		"admin@educonnect.dev",
		"college-admin@educonnect.dev",
		"student@educonnect.dev",
	}, users.Emails())

	admin, err := users.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Already Here", admin.Name)
	assert.Equal(t, domainauth.RoleAdmin, admin.Role)

	student, err := users.GetByEmail(ctx, "student@educonnect.dev")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleStudent, student.Role)
	assert.Equal(t, "plain:"+DemoPassword, users.PasswordHash(student.ID))
}

func TestRunStopsOnCollegeFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	colleges := mocks.NewMockCollegeRepository(ctrl)
	colleges.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	users := authmocks.NewMemoryUserStore()
	err := Run(context.Background(), Services{
		Colleges: service.NewCollegeService(service.CollegeServiceOptions{Colleges: colleges}),
		Users:    users,
		Hasher:   authmocks.PlainHasher{},
	}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Dhaka College")
	assert.Empty(t, users.Emails())
}

func TestRunRequiresDependencies(t *testing.T) {
	assert.Error(t, Run(context.Background(), Services{}, nil))
}
