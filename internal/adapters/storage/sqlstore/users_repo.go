package sqlstore

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"pawly/internal/domain/users"
	"pawly/internal/platform/apperror"
)

type userRepo struct {
	s *Store
}

type userRow struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r userRow) toDomain() users.User {
	return users.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

var userColumns = []string{"id", "name", "email", "password_hash", "created_at"}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	query, args, err := r.s.sb.Insert("users").
		Columns(userColumns...).
		Values(u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", u.Email)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getOne(ctx, sq.Eq{"email": email}, email)
}

func (r *userRepo) getOne(ctx context.Context, where sq.Eq, key string) (users.User, error) {
	query, args, err := r.s.sb.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return users.User{}, err
	}

	var row userRow
	if err := sqlscan.Get(ctx, r.s.db, &row, query, args...); err != nil {
		return users.User{}, mapGetErr(err, "user", key)
	}
	return row.toDomain(), nil
}
