package data

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nazmul162001/educonnect/internal/core"
	"github.com/nazmul162001/educonnect/internal/data/pgxutil"
	"github.com/nazmul162001/educonnect/internal/domain/model"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
)

const collegeColumns = `id::text AS id, name, image, admission_start, admission_end, events,
	research_history, sports, rating, research_count, created_at, updated_at`

// CollegeRepo provides database operations for the college catalogue.
type CollegeRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var _ core.CollegeRepository = (*CollegeRepo)(nil)

// NewCollegeRepo creates a CollegeRepo with the real clock.
func NewCollegeRepo(db *sql.DB) *CollegeRepo {
	return &CollegeRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// GetByID retrieves a college. Malformed ids are rejected as validation errors.
func (r *CollegeRepo) GetByID(ctx context.Context, id string) (*model.College, error) {
	canonical, err := model.ParseID(id)
	if err != nil {
		return nil, apperrors.ValidationField("collegeId", model.MsgInvalidCollegeID)
	}

	var out model.College
	err = pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, qErr := conn.Query(ctx, `SELECT `+collegeColumns+` FROM colleges WHERE id = $1`, canonical)
		if qErr != nil {
			return qErr
		}
		out, qErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.College])
		return qErr
	})
	if err != nil {
		return nil, mapCollegeErr(err)
	}
	return &out, nil
}

// List returns colleges ordered by rating, optionally filtered by a case-insensitive name substring.
func (r *CollegeRepo) List(ctx context.Context, opts model.CollegeListOptions) ([]*model.College, error) {
	opts.Normalize()

	var rowsOut []model.College
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+collegeColumns+`
			FROM colleges
			WHERE $1 = '' OR name ILIKE '%' || $1 || '%' ESCAPE '\'
			ORDER BY rating DESC, name ASC
			LIMIT $2 OFFSET $3`,
			escapeLike(opts.Search), opts.Limit, opts.Offset,
		)
		if err != nil {
			return err
		}
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.College])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.College, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Upsert inserts a college or replaces the one with the same id.
func (r *CollegeRepo) Upsert(ctx context.Context, req *model.UpsertCollegeRequest) (*model.College, error) {
	if req == nil {
		return nil, errNilRequest
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	events := req.Events
	if events == nil {
		events = []model.CollegeEvent{}
	}
	sports := req.Sports
	if sports == nil {
		sports = []string{}
	}
	now := r.timeProvider.Now()

	var out model.College
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO colleges (
				id, name, image, admission_start, admission_end, events,
				research_history, sports, rating, research_count, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				image = EXCLUDED.image,
				admission_start = EXCLUDED.admission_start,
				admission_end = EXCLUDED.admission_end,
				events = EXCLUDED.events,
				research_history = EXCLUDED.research_history,
				sports = EXCLUDED.sports,
				rating = EXCLUDED.rating,
				research_count = EXCLUDED.research_count,
				updated_at = EXCLUDED.updated_at
			RETURNING `+collegeColumns,
			id, req.Name, req.Image, req.AdmissionStart, req.AdmissionEnd, events,
			req.ResearchHistory, sports, req.Rating, req.ResearchCount, now,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.College])
		return err
	})
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

func mapCollegeErr(err error) error {
	mapped := apperrors.MapDBError(err)
	if apperrors.IsNotFound(mapped) {
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, model.MsgCollegeNotFound)
	}
	return mapped
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE metacharacters so search terms match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
