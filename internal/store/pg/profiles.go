package pg

import (
	"context"
	"errors"
	"time"

	"github.com/hiredvalley/hired-backend/internal/domain/repository"
	"github.com/hiredvalley/hired-backend/internal/platform"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier es el subconjunto de pgxpool.Pool que usa el repo.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProfileRepo implementa repository.ProfileRepository sobre la tabla users.
type ProfileRepo struct{ q querier }

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

func (r *ProfileRepo) Exists(ctx context.Context, authUID string) (bool, error) {
	const op = "pg.profile_exists"
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE auth_uid = $1)`, authUID,
	).Scan(&ok)
	if err != nil {
		if isInvalidText(err) {
			return false, nil
		}
		return false, classify(op, err)
	}
	return ok, nil
}

func (r *ProfileRepo) Insert(ctx context.Context, p repository.Profile) error {
	const op = "pg.insert_profile"
	_, err := r.q.Exec(ctx,
		`INSERT INTO users (auth_uid, first_name, last_name, role) VALUES ($1, $2, $3, $4)`,
		p.AuthUID, p.FirstName, p.LastName, string(p.Role),
	)
	if err != nil {
		return classify(op, err)
	}
	return nil
}

func (r *ProfileRepo) Update(ctx context.Context, authUID string, f repository.ProfileFields) error {
	const op = "pg.update_profile"
	tag, err := r.q.Exec(ctx,
		`UPDATE users SET first_name = $2, last_name = $3, role = $4 WHERE auth_uid = $1`,
		authUID, f.FirstName, f.LastName, string(f.Role),
	)
	if err != nil {
		return classify(op, err)
	}
	if tag.RowsAffected() == 0 {
		return platform.NotFound(op, repository.ErrNotFound)
	}
	return nil
}

func (r *ProfileRepo) Get(ctx context.Context, authUID string) (*repository.Profile, bool, error) {
	const op = "pg.fetch_profile"
	var (
		p       repository.Profile
		role    string
		created time.Time
	)
	err := r.q.QueryRow(ctx,
		`SELECT auth_uid::text, first_name, last_name, role, created_at FROM users WHERE auth_uid = $1`,
		authUID,
	).Scan(&p.AuthUID, &p.FirstName, &p.LastName, &role, &created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, false, nil
		}
		return nil, false, classify(op, err)
	}
	p.Role = repository.Role(role)
	p.CreatedAt = &created
	return &p, true, nil
}

// classify mapea SQLSTATE a platform.Kind.
func classify(op string, err error) *platform.Error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23503": // unique_violation, foreign_key_violation
			return platform.Conflict(op, err).WithCode(pgErr.Code)
		}
		return platform.Internal(op, err).WithCode(pgErr.Code)
	}
	return platform.Internal(op, err)
}

// isInvalidText: un auth_uid que no es uuid no puede existir (22P02).
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
