// Package mocks provides gomock mocks for the repository and port interfaces.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	users := mocks.NewMockUserRepository(ctrl)
//	users.EXPECT().GetByID(gomock.Any(), "u-1").Return(principal, nil)
package mocks

// Create, GetByID, GetByEmail, GetCredentialsByEmail, EmailTakenByOther, UpdateDisplay,
// UpdateProfile, UpdatePasswordHash, SetRole
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/nazmul162001/educonnect/internal/core UserRepository

// GetByID, List, Upsert
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=college_repository_mock.go github.com/nazmul162001/educonnect/internal/core CollegeRepository

// Create, GetByID, ExistsForUserCollege, ListByUser, Update, UpdateStatus
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=admission_repository_mock.go github.com/nazmul162001/educonnect/internal/core AdmissionRepository

// Set, Get, Delete, DeletePrefix
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/nazmul162001/educonnect/internal/core CacheRepository

// Save, Get, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/nazmul162001/educonnect/internal/ports SessionStore

// Issue, Verify, TTL
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_codec_mock.go github.com/nazmul162001/educonnect/internal/ports TokenCodec
