package core_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nazmul162001/educonnect/internal/core"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	"github.com/nazmul162001/educonnect/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const collegeID = "6f1c3f4e-8a55-4d1e-9b57-0b8f3d1a2c11"

func newCollegeCache(t *testing.T) (*mocks.MockCacheRepository, *mocks.MockCollegeRepository, *core.CollegeCache) {
	t.Helper()
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCacheRepository(ctrl)
	colleges := mocks.NewMockCollegeRepository(ctrl)
	return cache, colleges, core.NewCollegeCache(core.CollegeCacheOptions{
		Cache:    cache,
		Colleges: colleges,
	})
}

func TestCollegeCache_GetByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(*mocks.MockCacheRepository, *mocks.MockCollegeRepository)
		want    string
		wantErr bool
	}{
		{
			name: "cache hit skips repository",
			setup: func(cache *mocks.MockCacheRepository, _ *mocks.MockCollegeRepository) {
				b, _ := json.Marshal(model.College{ID: collegeID, Name: "Cached College"})
				cache.EXPECT().Get(gomock.Any(), "college:id:"+collegeID).Return(b, nil)
			},
			want: "Cached College",
		},
		{
			name: "cache miss - fetch and cache",
			setup: func(cache *mocks.MockCacheRepository, colleges *mocks.MockCollegeRepository) {
				cache.EXPECT().Get(gomock.Any(), "college:id:"+collegeID).Return(nil, nil)
				colleges.EXPECT().GetByID(gomock.Any(), collegeID).Return(&model.College{ID: collegeID, Name: "Fresh"}, nil)
				cache.EXPECT().Set(gomock.Any(), "college:id:"+collegeID, gomock.Any(), core.DefaultCollegeCacheConfig().TTL).Return(nil)
			},
			want: "Fresh",
		},
		{
			name: "cache error falls back to repository",
			setup: func(cache *mocks.MockCacheRepository, colleges *mocks.MockCollegeRepository) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
				colleges.EXPECT().GetByID(gomock.Any(), collegeID).Return(&model.College{ID: collegeID, Name: "Fresh"}, nil)
				cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
			},
			want: "Fresh",
		},
		{
			name: "corrupt entry is ignored",
			setup: func(cache *mocks.MockCacheRepository, colleges *mocks.MockCollegeRepository) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]byte("{not json"), nil)
				colleges.EXPECT().GetByID(gomock.Any(), collegeID).Return(&model.College{ID: collegeID, Name: "Fresh"}, nil)
				cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			want: "Fresh",
		},
		{
			name: "repository error is not cached",
			setup: func(cache *mocks.MockCacheRepository, colleges *mocks.MockCollegeRepository) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
				colleges.EXPECT().GetByID(gomock.Any(), collegeID).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cache, colleges, cc := newCollegeCache(t)
			tt.setup(cache, colleges)

			got, err := cc.GetByID(context.Background(), collegeID)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestCollegeCache_List_NormalizesKey(t *testing.T) {
	t.Parallel()
	cache, colleges, cc := newCollegeCache(t)
	want := []*model.College{{ID: collegeID, Name: "Dhaka College"}}

	cache.EXPECT().Get(gomock.Any(), "college:list:100:0:dhaka").Return(nil, nil)
	colleges.EXPECT().List(gomock.Any(), model.CollegeListOptions{Search: "dhaka", Limit: 100}).Return(want, nil)
	cache.EXPECT().Set(gomock.Any(), "college:list:100:0:dhaka", gomock.Any(), gomock.Any()).Return(nil)

	got, err := cc.List(context.Background(), model.CollegeListOptions{Search: "  dhaka ", Limit: 500})

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCollegeCache_UpsertInvalidates(t *testing.T) {
	t.Parallel()
	cache, colleges, cc := newCollegeCache(t)
	req := &model.UpsertCollegeRequest{Name: "New College"}

	colleges.EXPECT().Upsert(gomock.Any(), req).Return(&model.College{ID: collegeID, Name: req.Name}, nil)
	cache.EXPECT().DeletePrefix(gomock.Any(), "college:").Return(3, nil)

	got, err := cc.Upsert(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, collegeID, got.ID)
}

func TestCollegeCache_NilCacheDelegates(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	colleges := mocks.NewMockCollegeRepository(ctrl)
	cc := core.NewCollegeCache(core.CollegeCacheOptions{Colleges: colleges})

	colleges.EXPECT().GetByID(gomock.Any(), collegeID).Return(&model.College{ID: collegeID}, nil).Times(2)

	for range 2 {
		_, err := cc.GetByID(context.Background(), collegeID)
		require.NoError(t, err)
	}
	cc.Invalidate(context.Background())
}
