package sqlstore

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"pawly/internal/domain/care"
	"pawly/internal/platform/apperror"
)

type careRepo struct {
	s *Store
}

type careRow struct {
	ID          string     `db:"id"`
	PetID       string     `db:"pet_id"`
	Type        string     `db:"care_type"`
	Description string     `db:"description"`
	Date        *time.Time `db:"care_date"`
	Notes       string     `db:"notes"`
	Cost        *float64   `db:"cost"`
	CreatedAt   time.Time  `db:"created_at"`
}

func (r careRow) toDomain() care.Event {
	return care.Event{
		ID:          r.ID,
		PetID:       r.PetID,
		Type:        r.Type,
		Description: r.Description,
		Date:        utcDate(r.Date),
		Notes:       r.Notes,
		Cost:        r.Cost,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

var careColumns = []string{
	"c.id", "c.pet_id", "c.care_type", "c.description",
	"c.care_date", "c.notes", "c.cost", "c.created_at",
}

// sin fecha al final, empates por id (UUIDv7 = orden de alta)
var newestFirst = []string{"c.care_date IS NULL", "c.care_date DESC", "c.id ASC"}

func (r *careRepo) Create(ctx context.Context, e care.Event) error {
	query, args, err := r.s.sb.Insert("pet_care").
		Columns("id", "pet_id", "care_type", "description", "care_date", "notes", "cost", "created_at").
		Values(e.ID, e.PetID, e.Type, e.Description, nullDate(e.Date), e.Notes, value(e.Cost), e.CreatedAt.UTC()).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("care event", e.ID)
		}
		return fmt.Errorf("insert care event: %w", err)
	}
	return nil
}

func (r *careRepo) GetByID(ctx context.Context, id string) (care.Event, error) {
	query, args, err := r.s.sb.Select(careColumns...).
		From("pet_care c").
		Where(sq.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return care.Event{}, err
	}

	var row careRow
	if err := sqlscan.Get(ctx, r.s.db, &row, query, args...); err != nil {
		return care.Event{}, mapGetErr(err, "care event", id)
	}
	return row.toDomain(), nil
}

func (r *careRepo) Delete(ctx context.Context, id string) error {
	query, args, err := r.s.sb.Delete("pet_care").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	res, err := r.s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete care event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("care event", id)
	}
	return nil
}

func (r *careRepo) ListByPet(ctx context.Context, petID string) ([]care.Event, error) {
	return r.list(ctx, r.s.sb.Select(careColumns...).
		From("pet_care c").
		Where(sq.Eq{"c.pet_id": petID}).
		OrderBy(newestFirst...))
}

func (r *careRepo) RecentByOwner(ctx context.Context, ownerUserID string, limit int) ([]care.Event, error) {
	q := r.s.sb.Select(careColumns...).
		From("pet_care c").
		Join("pets p ON p.id = c.pet_id").
		Where(sq.Eq{"p.owner_user_id": ownerUserID}).
		OrderBy(newestFirst...)
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	return r.list(ctx, q)
}

func (r *careRepo) CountByOwner(ctx context.Context, ownerUserID string) (int, error) {
	query, args, err := r.s.sb.Select("COUNT(*)").
		From("pet_care c").
		Join("pets p ON p.id = c.pet_id").
		Where(sq.Eq{"p.owner_user_id": ownerUserID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count care events: %w", err)
	}
	return n, nil
}

func (r *careRepo) OwnerOf(ctx context.Context, careID string) (string, error) {
	query, args, err := r.s.sb.Select("p.owner_user_id").
		From("pet_care c").
		Join("pets p ON p.id = c.pet_id").
		Where(sq.Eq{"c.id": careID}).
		ToSql()
	if err != nil {
		return "", err
	}

	var owner string
	if err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&owner); err != nil {
		return "", mapGetErr(err, "care event", careID)
	}
	return owner, nil
}

func (r *careRepo) list(ctx context.Context, q sq.SelectBuilder) ([]care.Event, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []careRow
	if err := sqlscan.Select(ctx, r.s.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list care events: %w", err)
	}

	out := make([]care.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
