// Package devseed loads a small, fixed catalogue and demo accounts into a development database.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nazmul162001/educonnect/internal/core"
	"github.com/nazmul162001/educonnect/internal/data"
	"github.com/nazmul162001/educonnect/internal/data/cryptoutil"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
	"github.com/nazmul162001/educonnect/internal/ports"
	"github.com/nazmul162001/educonnect/internal/service"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "educonnect-demo"

// CollegeUpserter creates or replaces colleges.
type CollegeUpserter interface {
	Upsert(ctx context.Context, req *model.UpsertCollegeRequest) (*model.College, error)
}

// Services bundles the dependencies needed for development seeding.
type Services struct {
	Colleges CollegeUpserter
	Users    core.UserRepository
	Hasher   ports.PasswordHasher
}

// NewServices constructs all required services for seeding using the provided DB.
// Colleges are written straight to Postgres; a running API's cache expires on its own TTL.
func NewServices(db *sql.DB) Services {
	return Services{
		Colleges: service.NewCollegeService(service.CollegeServiceOptions{Colleges: data.NewCollegeRepo(db)}),
		Users:    data.NewUserRepo(db),
		Hasher:   cryptoutil.NewBcryptHasher(0),
	}
}

// Run seeds colleges and demo accounts. It is idempotent: colleges have fixed ids and
// existing accounts are left alone apart from their role.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if svcs.Colleges == nil || svcs.Users == nil || svcs.Hasher == nil {
		return errors.New("devseed: colleges, users and hasher are required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	colleges, err := seedColleges(ctx, svcs.Colleges, logger)
	if err != nil {
		return err
	}
	accounts, err := seedAccounts(ctx, svcs, logger)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "development data seeded", "colleges", colleges, "accounts", accounts)
	return nil
}

func seedColleges(ctx context.Context, svc CollegeUpserter, logger *slog.Logger) (int, error) {
	n := 0
	for _, req := range DefaultColleges() {
		college, err := svc.Upsert(ctx, req)
		if err != nil {
			return n, fmt.Errorf("seed college %q: %w", req.Name, err)
		}
		logger.DebugContext(ctx, "seeded college", "id", college.ID, "name", college.Name)
		n++
	}
	return n, nil
}

type accountSeed struct {
	Name  string
	Email string
	Role  domainauth.Role
}

func defaultAccounts() []accountSeed {
	return []accountSeed{
		{Name: "Demo Student", Email: "student@educonnect.dev", Role: domainauth.RoleStudent},
		{Name: "Demo Admin", Email: "admin@educonnect.dev", Role: domainauth.RoleAdmin},
		{Name: "Demo College Admin", Email: "college-admin@educonnect.dev", Role: domainauth.RoleCollegeAdmin},
	}
}

func seedAccounts(ctx context.Context, svcs Services, logger *slog.Logger) (int, error) {
	hash, err := svcs.Hasher.Hash(DemoPassword)
	if err != nil {
		return 0, fmt.Errorf("hash demo password: %w", err)
	}

	n := 0
	for _, a := range defaultAccounts() {
		existing, getErr := svcs.Users.GetByEmail(ctx, a.Email)
		switch {
		case getErr == nil:
			if existing.Role != a.Role {
				if roleErr := svcs.Users.SetRole(ctx, existing.ID, a.Role); roleErr != nil {
					return n, fmt.Errorf("set role for %s: %w", a.Email, roleErr)
				}
			}
			logger.DebugContext(ctx, "demo account exists", "email", a.Email)
		case apperrors.IsNotFound(getErr):
			if _, createErr := svcs.Users.Create(ctx, core.CreateUserParams{
				Name:         a.Name,
				Email:        a.Email,
				PasswordHash: hash,
				Role:         a.Role,
			}); createErr != nil {
				return n, fmt.Errorf("create %s: %w", a.Email, createErr)
			}
			logger.InfoContext(ctx, "created demo account", "email", a.Email, "role", a.Role)
		default:
			return n, fmt.Errorf("look up %s: %w", a.Email, getErr)
		}
		n++
	}
	return n, nil
}

// DefaultColleges returns the development catalogue. Ids are fixed so re-seeding replaces rows.
func DefaultColleges() []*model.UpsertCollegeRequest {
	return []*model.UpsertCollegeRequest{
		{
			ID:              "5f0c6a52-3c1d-4b8e-9a57-0d5b1f3e7a01",
			Name:            "Dhaka College",
			Image:           "https://images.educonnect.dev/colleges/dhaka.jpg",
			ResearchHistory: "Agricultural economics and river delta studies since 1841.",
			Sports:          []string{"Cricket", "Football", "Swimming"},
			Events: []model.CollegeEvent{
				{Name: "Science Fair", Date: "2026-11-12", Description: "Inter-college science exhibition"},
				{Name: "Admission Open Day", Date: "2026-12-01"},
			},
			Rating:        4.6,
			ResearchCount: 42,
		},
		{
			ID:              "5f0c6a52-3c1d-4b8e-9a57-0d5b1f3e7a02",
			Name:            "Notre Dame College",
			Image:           "https://images.educonnect.dev/colleges/notre-dame.jpg",
			ResearchHistory: "Physics and applied mathematics groups.",
			Sports:          []string{"Basketball", "Football"},
			Events:          []model.CollegeEvent{{Name: "Debate Championship", Date: "2026-10-30"}},
			Rating:          4.8,
			ResearchCount:   57,
		},
		{
			ID:              "5f0c6a52-3c1d-4b8e-9a57-0d5b1f3e7a03",
			Name:            "Rajshahi College",
			Image:           "https://images.educonnect.dev/colleges/rajshahi.jpg",
			ResearchHistory: "Botany and archaeology fieldwork in the Barind tract.",
			Sports:          []string{"Athletics", "Cricket"},
			Rating:          4.3,
			ResearchCount:   23,
		},
	}
}
