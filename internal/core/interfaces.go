package core

import (
	"context"

	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// CreateUserParams groups the fields for inserting a user record.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string // empty for federated accounts
	Role         domainauth.Role
	Image        string
}

// UserRepository is the Credential Store. Reads never return the password hash
// except through GetCredentialsByEmail.
type UserRepository interface {
	// Create inserts a user. A duplicate email yields a Conflict AppError with Field "email".
	Create(ctx context.Context, params CreateUserParams) (*domainauth.Principal, error)
	GetByID(ctx context.Context, id string) (*domainauth.Principal, error)
	GetByEmail(ctx context.Context, email string) (*domainauth.Principal, error)
	GetCredentialsByEmail(ctx context.Context, email string) (*domainauth.Credentials, error)
	// EmailTakenByOther reports whether email belongs to a user other than excludeID.
	EmailTakenByOther(ctx context.Context, email, excludeID string) (bool, error)
	UpdateDisplay(ctx context.Context, id, name, image string) error
	UpdateProfile(ctx context.Context, id string, changes []model.ProfileField) (*domainauth.Principal, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	SetRole(ctx context.Context, id string, role domainauth.Role) error
}

// CollegeRepository provides read access to the college catalogue plus seeding.
type CollegeRepository interface {
	GetByID(ctx context.Context, id string) (*model.College, error)
	List(ctx context.Context, opts model.CollegeListOptions) ([]*model.College, error)
	Upsert(ctx context.Context, req *model.UpsertCollegeRequest) (*model.College, error)
}

// UpdateAdmissionParams groups parameters for an owner-scoped admission update.
type UpdateAdmissionParams struct {
	ID      string
	OwnerID string
	Req     model.UpdateAdmissionRequest
}

// AdmissionRepository defines the interface for admission data operations.
type AdmissionRepository interface {
	// Create inserts an application. A duplicate (user, college) pair yields a Conflict AppError.
	Create(ctx context.Context, userID string, req *model.CreateAdmissionRequest) (*model.Admission, error)
	GetByID(ctx context.Context, id string) (*model.Admission, error)
	ExistsForUserCollege(ctx context.Context, userID, collegeID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*model.AdmissionWithCollege, error)
	// Update applies changes only when the record is owned by OwnerID; otherwise NotFound.
	Update(ctx context.Context, params UpdateAdmissionParams) (*model.Admission, error)
	UpdateStatus(ctx context.Context, id string, status model.AdmissionStatus) (*model.Admission, error)
}

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
