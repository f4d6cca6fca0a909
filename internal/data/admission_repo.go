package data

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/nazmul162001/educonnect/internal/core"
	"github.com/nazmul162001/educonnect/internal/data/pgxutil"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
)

const admissionColumns = `id::text AS id, user_id::text AS user_id, college_id::text AS college_id,
	student_name, course, email, phone, address, date_of_birth, image, status, created_at, updated_at`

// AdmissionRepo provides database operations for admission applications.
type AdmissionRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var _ core.AdmissionRepository = (*AdmissionRepo)(nil)

// NewAdmissionRepo creates an AdmissionRepo with the real clock.
func NewAdmissionRepo(db *sql.DB) *AdmissionRepo {
	return &AdmissionRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewAdmissionRepoWithTimeProvider creates an AdmissionRepo with a custom clock (tests).
func NewAdmissionRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AdmissionRepo {
	return &AdmissionRepo{DB: db, timeProvider: timeOrReal(tp)}
}

// Create inserts an application owned by userID with status PENDING.
func (r *AdmissionRepo) Create(
	ctx context.Context,
	userID string,
	req *model.CreateAdmissionRequest,
) (*model.Admission, error) {
	if req == nil {
		return nil, errNilRequest
	}
	if userID == "" {
		return nil, errIDRequired
	}
	now := r.timeProvider.Now()

	return r.queryOne(ctx, `
		INSERT INTO admissions (
			user_id, college_id, student_name, course, email, phone, address, date_of_birth, image,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING `+admissionColumns,
		userID, req.CollegeID, req.StudentName, req.Course, req.Email, req.Phone,
		req.Address, req.DateOfBirth, req.Image, string(model.AdmissionStatusPending), now,
	)
}

// GetByID retrieves an admission by id.
func (r *AdmissionRepo) GetByID(ctx context.Context, id string) (*model.Admission, error) {
	canonical, err := model.ParseID(id)
	if err != nil {
		return nil, apperrors.NotFound(model.MsgAdmissionNotFound)
	}
	return r.queryOne(ctx, `SELECT `+admissionColumns+` FROM admissions WHERE id = $1`, canonical)
}

// ExistsForUserCollege reports whether userID already applied to collegeID.
func (r *AdmissionRepo) ExistsForUserCollege(ctx context.Context, userID, collegeID string) (bool, error) {
	var exists bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM admissions WHERE user_id::text = $1 AND college_id::text = $2)`,
			userID, collegeID,
		).Scan(&exists)
	})
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return exists, nil
}

// admissionCollegeRow is the flat join row for ListByUser.
type admissionCollegeRow struct {
	model.Admission
	CollegeName   string  `db:"college_name"`
	CollegeImage  string  `db:"college_image"`
	CollegeRating float64 `db:"college_rating"`
}

// ListByUser returns the user's applications with their colleges, newest first.
func (r *AdmissionRepo) ListByUser(ctx context.Context, userID string) ([]*model.AdmissionWithCollege, error) {
	var rowsOut []admissionCollegeRow
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT a.id::text AS id, a.user_id::text AS user_id, a.college_id::text AS college_id,
				a.student_name, a.course, a.email, a.phone, a.address, a.date_of_birth, a.image,
				a.status, a.created_at, a.updated_at,
				c.name AS college_name, c.image AS college_image, c.rating AS college_rating
			FROM admissions a
			JOIN colleges c ON c.id = a.college_id
			WHERE a.user_id::text = $1
			ORDER BY a.created_at DESC, a.id`, userID)
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[admissionCollegeRow])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}

	out := make([]*model.AdmissionWithCollege, len(rowsOut))
	for i, row := range rowsOut {
		out[i] = &model.AdmissionWithCollege{
			Admission: row.Admission,
			College: model.CollegeSummary{
				ID:     row.CollegeID,
				Name:   row.CollegeName,
				Image:  row.CollegeImage,
				Rating: row.CollegeRating,
			},
		}
	}
	return out, nil
}

// Update applies the supplied fields when the record is owned by OwnerID.
// A missing record and a record owned by someone else are indistinguishable.
func (r *AdmissionRepo) Update(ctx context.Context, params core.UpdateAdmissionParams) (*model.Admission, error) {
	id, err := model.ParseID(params.ID)
	if err != nil || params.OwnerID == "" {
		return nil, apperrors.NotFound(model.MsgAdmissionNotFound)
	}

	setClause, args := buildAdmissionSet(params.Req)
	if setClause == "" {
		return r.queryOne(ctx,
			`SELECT `+admissionColumns+` FROM admissions WHERE id = $1 AND user_id::text = $2`,
			id, params.OwnerID)
	}

	args = append(args, r.timeProvider.Now(), id, params.OwnerID)
	n := len(args)
	query := "UPDATE admissions SET " + setClause +
		", updated_at = $" + strconv.Itoa(n-2) +
		" WHERE id = $" + strconv.Itoa(n-1) +
		" AND user_id::text = $" + strconv.Itoa(n) +
		" RETURNING " + admissionColumns
	return r.queryOne(ctx, query, args...)
}

// UpdateStatus sets the review status of an application.
func (r *AdmissionRepo) UpdateStatus(
	ctx context.Context,
	id string,
	status model.AdmissionStatus,
) (*model.Admission, error) {
	canonical, err := model.ParseID(id)
	if err != nil {
		return nil, apperrors.NotFound(model.MsgAdmissionNotFound)
	}
	if !status.Valid() {
		return nil, apperrors.ValidationField("status", model.MsgInvalidStatus)
	}
	return r.queryOne(ctx, `
		UPDATE admissions SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING `+admissionColumns,
		canonical, string(status), r.timeProvider.Now(),
	)
}

func buildAdmissionSet(req model.UpdateAdmissionRequest) (string, []any) {
	var (
		parts []string
		args  []any
	)
	add := func(col string, v *string) {
		if v == nil {
			return
		}
		args = append(args, strings.TrimSpace(*v))
		parts = append(parts, col+" = $"+strconv.Itoa(len(args)))
	}
	add("student_name", req.StudentName)
	add("course", req.Course)
	add("email", req.Email)
	add("phone", req.Phone)
	add("address", req.Address)
	add("date_of_birth", req.DateOfBirth)
	add("image", req.Image)
	return strings.Join(parts, ", "), args
}

func (r *AdmissionRepo) queryOne(ctx context.Context, query string, args ...any) (*model.Admission, error) {
	var out model.Admission
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Admission])
		return err
	})
	if err != nil {
		return nil, mapAdmissionErr(err)
	}
	return &out, nil
}

func mapAdmissionErr(err error) error {
	mapped := apperrors.MapDBError(err)
	switch {
	case apperrors.IsNotFound(mapped):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, model.MsgAdmissionNotFound)
	case apperrors.IsConflict(mapped):
		return apperrors.Wrap(err, apperrors.ErrCodeConflict, model.MsgAdmissionDuplicate)
	case apperrors.IsForeignKey(mapped) && strings.Contains(apperrors.GetField(mapped), "college"):
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, model.MsgCollegeNotFound)
	default:
		return mapped
	}
}
