package pitch

import (
	"context"
	"fmt"
	"strings"

	"pitchlink/internal/apperr"
	"pitchlink/internal/db"

	"github.com/jmoiron/sqlx"
)

const pitchColumns = `id, owner_id, name, location, price_per_hour, description,
	amenities, rules, photos, is_active, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByOwner(ctx context.Context, ownerID int) ([]Pitch, error) {
	query := `SELECT ` + pitchColumns + ` FROM pitches WHERE owner_id = $1 ORDER BY created_at DESC`

	pitches := []Pitch{}
	if err := r.db.SelectContext(ctx, &pitches, query, ownerID); err != nil {
		return nil, db.Classify(err, "pitch")
	}

	return pitches, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Pitch, error) {
	query := `SELECT ` + pitchColumns + ` FROM pitches WHERE id = $1`

	var p Pitch
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, db.Classify(err, "pitch")
	}

	return &p, nil
}

func (r *repository) Create(ctx context.Context, ownerID int, req CreatePitchRequest) (*Pitch, error) {
	query := `
		INSERT INTO pitches (owner_id, name, location, price_per_hour, description, amenities, rules, photos, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + pitchColumns

	var p Pitch
	err := r.db.GetContext(ctx, &p, query,
		ownerID,
		req.Name,
		req.Location,
		req.PricePerHour,
		req.Description,
		stringArray(req.Amenities),
		stringArray(req.Rules),
		stringArray(req.Photos),
		*req.IsActive,
	)
	if err != nil {
		return nil, db.Classify(err, "pitch")
	}

	return &p, nil
}

// Update writes only the fields set in patch and always refreshes updated_at.
func (r *repository) Update(ctx context.Context, id int, patch UpdatePitchRequest) (*Pitch, error) {
	setClauses := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.PricePerHour != nil {
		add("price_per_hour", *patch.PricePerHour)
	}
	if patch.Amenities != nil {
		add("amenities", stringArray(*patch.Amenities))
	}
	if patch.Rules != nil {
		add("rules", stringArray(*patch.Rules))
	}
	if patch.Photos != nil {
		add("photos", stringArray(*patch.Photos))
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE pitches SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), len(args), pitchColumns)

	var p Pitch
	if err := r.db.GetContext(ctx, &p, query, args...); err != nil {
		return nil, db.Classify(err, "pitch")
	}

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pitches WHERE id = $1`, id)
	if err != nil {
		return db.Classify(err, "pitch")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return db.Classify(err, "pitch")
	}
	if n == 0 {
		return apperr.NotFound("pitch")
	}

	return nil
}

func (r *repository) CountActive(ctx context.Context, ownerID int) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM pitches WHERE owner_id = $1 AND is_active = TRUE`, ownerID)
	if err != nil {
		return 0, db.Classify(err, "pitch")
	}
	return n, nil
}
