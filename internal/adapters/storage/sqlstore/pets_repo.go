package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"pawly/internal/domain/pets"
	"pawly/internal/platform/apperror"
)

type petRepo struct {
	s *Store
}

type petRow struct {
	ID          string     `db:"id"`
	OwnerUserID string     `db:"owner_user_id"`
	Name        string     `db:"name"`
	Species     string     `db:"species"`
	Breed       string     `db:"breed"`
	Age         *int       `db:"age"`
	Weight      *float64   `db:"weight"`
	BirthDate   *time.Time `db:"birth_date"`
	Photo       *string    `db:"photo"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func (r petRow) toDomain() pets.Pet {
	return pets.Pet{
		ID:          r.ID,
		OwnerUserID: r.OwnerUserID,
		Name:        r.Name,
		Species:     r.Species,
		Breed:       r.Breed,
		Age:         r.Age,
		Weight:      r.Weight,
		BirthDate:   utcDate(r.BirthDate),
		Photo:       r.Photo,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

var petColumns = []string{
	"id", "owner_user_id",
	"name", "species", "breed",
	"age", "weight", "birth_date", "photo",
	"created_at", "updated_at",
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	query, args, err := r.s.sb.Insert("pets").
		Columns(petColumns...).
		Values(
			p.ID, p.OwnerUserID,
			p.Name, p.Species, p.Breed,
			value(p.Age), value(p.Weight), nullDate(p.BirthDate), value(p.Photo),
			p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
		).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("pet", p.ID)
		}
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

// Update reemplaza todo salvo id, dueño y created_at. Último en escribir gana.
func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	query, args, err := r.s.sb.Update("pets").
		Set("name", p.Name).
		Set("species", p.Species).
		Set("breed", p.Breed).
		Set("age", value(p.Age)).
		Set("weight", value(p.Weight)).
		Set("birth_date", nullDate(p.BirthDate)).
		Set("photo", value(p.Photo)).
		Set("updated_at", p.UpdatedAt.UTC()).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("pet", p.ID)
	}
	return nil
}

// Delete borra los cuidados y la mascota en la misma transacción.
func (r *petRepo) Delete(ctx context.Context, id string) (err error) {
	tx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	careQuery, careArgs, err := r.s.sb.Delete("pet_care").Where(sq.Eq{"pet_id": id}).ToSql()
	if err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, careQuery, careArgs...); err != nil {
		return fmt.Errorf("delete pet care: %w", err)
	}

	petQuery, petArgs, err := r.s.sb.Delete("pets").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, petQuery, petArgs...); err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("pet", id)
	}

	return tx.Commit()
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	query, args, err := r.s.sb.Select(petColumns...).From("pets").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return pets.Pet{}, err
	}

	var row petRow
	if err := sqlscan.Get(ctx, r.s.db, &row, query, args...); err != nil {
		return pets.Pet{}, mapGetErr(err, "pet", id)
	}
	return row.toDomain(), nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	query, args, err := r.s.sb.Select(petColumns...).
		From("pets").
		Where(sq.Eq{"owner_user_id": ownerUserID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []petRow
	if err := sqlscan.Select(ctx, r.s.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}

	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *petRepo) CountByOwner(ctx context.Context, ownerUserID string) (int, error) {
	query, args, err := r.s.sb.Select("COUNT(*)").
		From("pets").
		Where(sq.Eq{"owner_user_id": ownerUserID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pets: %w", err)
	}
	return n, nil
}

// value pasa al driver el valor o NULL.
func value[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// utcDate normaliza lo que devuelve el driver a medianoche UTC.
func utcDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
