package data

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/nazmul162001/educonnect/internal/core"
	"github.com/nazmul162001/educonnect/internal/data/pgxutil"
	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
)

// userColumns is the Principal projection. password_hash is deliberately absent.
const userColumns = `id::text AS id, name, email, role, image, street, city, state, zip_code, country,
	university, major, graduation_year, gpa, created_at, updated_at`

// profileColumns lists every column UpdateProfile may write.
var profileColumns = map[string]struct{}{
	"name": {}, "email": {}, "image": {}, "street": {}, "city": {}, "state": {}, "zip_code": {},
	"country": {}, "university": {}, "major": {}, "graduation_year": {}, "gpa": {},
}

// UserRepo is the Postgres Credential Store.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var _ core.UserRepository = (*UserRepo)(nil)

// NewUserRepo creates a UserRepo with the real clock.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a UserRepo with a custom clock (tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: timeOrReal(tp)}
}

// Create inserts a user. A duplicate email yields a Conflict with Field "email".
func (r *UserRepo) Create(ctx context.Context, p core.CreateUserParams) (*domainauth.Principal, error) {
	role := p.Role
	if role == "" {
		role = domainauth.RoleStudent
	}
	var hash *string
	if p.PasswordHash != "" {
		hash = &p.PasswordHash
	}
	now := r.timeProvider.Now()

	return r.queryOne(ctx, `
		INSERT INTO users (name, email, password_hash, role, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING `+userColumns,
		strings.TrimSpace(p.Name), domainauth.NormalizeEmail(p.Email), hash, string(role), p.Image, now,
	)
}

// GetByID retrieves a user by id. Malformed ids are reported as not found.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domainauth.Principal, error) {
	canonical, err := model.ParseID(id)
	if err != nil {
		return nil, apperrors.NotFound("User not found")
	}
	return r.queryOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, canonical)
}

// GetByEmail retrieves a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domainauth.Principal, error) {
	return r.queryOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, domainauth.NormalizeEmail(email))
}

// GetCredentialsByEmail returns the password hash for direct login.
// Federated-only accounts have an empty PasswordHash.
func (r *UserRepo) GetCredentialsByEmail(ctx context.Context, email string) (*domainauth.Credentials, error) {
	var out domainauth.Credentials
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id::text AS id, email, COALESCE(password_hash, '') AS password_hash
			FROM users WHERE email = $1`, domainauth.NormalizeEmail(email))
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainauth.Credentials])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// EmailTakenByOther reports whether email belongs to a user other than excludeID.
func (r *UserRepo) EmailTakenByOther(ctx context.Context, email, excludeID string) (bool, error) {
	var taken bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id::text <> $2)`,
			domainauth.NormalizeEmail(email), excludeID,
		).Scan(&taken)
	})
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return taken, nil
}

// UpdateDisplay overwrites name and image, skipping empty values.
func (r *UserRepo) UpdateDisplay(ctx context.Context, id, name, image string) error {
	if id == "" {
		return errIDRequired
	}
	return r.exec(ctx, `
		UPDATE users SET
			name = COALESCE(NULLIF($2, ''), name),
			image = COALESCE(NULLIF($3, ''), image),
			updated_at = $4
		WHERE id::text = $1`,
		id, strings.TrimSpace(name), strings.TrimSpace(image), r.timeProvider.Now(),
	)
}

// UpdateProfile writes only the supplied columns and returns the updated record.
func (r *UserRepo) UpdateProfile(
	ctx context.Context,
	id string,
	changes []model.ProfileField,
) (*domainauth.Principal, error) {
	if id == "" {
		return nil, errIDRequired
	}
	if len(changes) == 0 {
		return nil, errNoChanges
	}

	setClause, args, err := buildProfileSet(changes)
	if err != nil {
		return nil, err
	}
	args = append(args, r.timeProvider.Now(), id)
	query := "UPDATE users SET " + setClause +
		", updated_at = $" + strconv.Itoa(len(args)-1) +
		" WHERE id::text = $" + strconv.Itoa(len(args)) +
		" RETURNING " + userColumns
	return r.queryOne(ctx, query, args...)
}

// UpdatePasswordHash replaces the stored hash.
func (r *UserRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	if id == "" {
		return errIDRequired
	}
	return r.exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = $3 WHERE id::text = $1`,
		id, hash, r.timeProvider.Now(),
	)
}

// SetRole changes a user's role.
func (r *UserRepo) SetRole(ctx context.Context, id string, role domainauth.Role) error {
	if !role.Valid() {
		return apperrors.ValidationField("role", "Invalid role")
	}
	return r.exec(ctx,
		`UPDATE users SET role = $2, updated_at = $3 WHERE id::text = $1`,
		id, string(role), r.timeProvider.Now(),
	)
}

// buildProfileSet turns supplied fields into a parameterized SET clause.
func buildProfileSet(changes []model.ProfileField) (string, []any, error) {
	parts := make([]string, 0, len(changes))
	args := make([]any, 0, len(changes)+2)
	for _, c := range changes {
		if _, ok := profileColumns[c.Column]; !ok {
			return "", nil, errUnknownColumn
		}
		v := c.Value
		if c.Column == "email" {
			v = domainauth.NormalizeEmail(v)
		}
		args = append(args, v)
		parts = append(parts, c.Column+" = $"+strconv.Itoa(len(args)))
	}
	return strings.Join(parts, ", "), args, nil
}

func (r *UserRepo) queryOne(ctx context.Context, query string, args ...any) (*domainauth.Principal, error) {
	var out domainauth.Principal
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainauth.Principal])
		return err
	})
	if err != nil {
		return nil, mapUserErr(err)
	}
	return &out, nil
}

func (r *UserRepo) exec(ctx context.Context, query string, args ...any) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return mapUserErr(err)
	}
	return nil
}

// mapUserErr attaches user-specific messages to mapped database errors.
func mapUserErr(err error) error {
	mapped := apperrors.MapDBError(err)
	switch {
	case apperrors.IsNotFound(mapped):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "User not found")
	case apperrors.IsConflict(mapped):
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeConflict,
			Message: "User already exists",
			Field:   "email",
			Cause:   err,
		}
	default:
		return mapped
	}
}
