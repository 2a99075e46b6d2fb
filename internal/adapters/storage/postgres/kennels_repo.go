package postgres

import (
	"context"
	"database/sql"
	"strings"

	"shelter-map/internal/domain/kennels"
)

type KennelsRepo struct {
	db *sql.DB
}

func NewKennelsRepo(db *sql.DB) *KennelsRepo {
	return &KennelsRepo{db: db}
}

func (r *KennelsRepo) Create(ctx context.Context, k kennels.Kennel) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kennels (
			id, shelter_id,
			name, capacity, status,
			length_cm, width_cm,
			map_x, map_y, map_w, map_h,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		k.ID,
		k.ShelterID,
		k.Name,
		k.Capacity,
		string(k.Status),
		k.LengthCm,
		k.WidthCm,
		k.MapX,
		k.MapY,
		k.MapW,
		k.MapH,
		k.CreatedAt,
		k.UpdatedAt,
	)
	return err
}

func (r *KennelsRepo) Update(ctx context.Context, k kennels.Kennel) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE kennels
		SET
			name = $2,
			capacity = $3,
			status = $4,
			length_cm = $5,
			width_cm = $6,
			map_x = $7,
			map_y = $8,
			map_w = $9,
			map_h = $10,
			updated_at = $11
		WHERE id = $1
	`,
		k.ID,
		k.Name,
		k.Capacity,
		string(k.Status),
		k.LengthCm,
		k.WidthCm,
		k.MapX,
		k.MapY,
		k.MapW,
		k.MapH,
		k.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return kennels.ErrNotFound
	}
	return nil
}

func (r *KennelsRepo) GetByID(ctx context.Context, id string) (kennels.Kennel, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return kennels.Kennel{}, kennels.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, shelter_id,
			name, capacity, status,
			length_cm, width_cm,
			map_x, map_y, map_w, map_h,
			created_at, updated_at
		FROM kennels
		WHERE id = $1
	`, id)

	k, err := scanKennel(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return kennels.Kennel{}, kennels.ErrNotFound
		}
		return kennels.Kennel{}, err
	}
	return k, nil
}

func (r *KennelsRepo) ListByShelter(ctx context.Context, shelterID string) ([]kennels.Kennel, error) {
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" {
		return nil, nil
	}

	// created_at asc: orden estable, es el índice del auto-layout del cliente
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, shelter_id,
			name, capacity, status,
			length_cm, width_cm,
			map_x, map_y, map_w, map_h,
			created_at, updated_at
		FROM kennels
		WHERE shelter_id = $1
		ORDER BY created_at ASC, id ASC
	`, shelterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]kennels.Kennel, 0)
	for rows.Next() {
		k, err := scanKennel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanKennel(row rowScanner) (kennels.Kennel, error) {
	var k kennels.Kennel
	var status string
	if err := row.Scan(
		&k.ID,
		&k.ShelterID,
		&k.Name,
		&k.Capacity,
		&status,
		&k.LengthCm,
		&k.WidthCm,
		&k.MapX,
		&k.MapY,
		&k.MapW,
		&k.MapH,
		&k.CreatedAt,
		&k.UpdatedAt,
	); err != nil {
		return kennels.Kennel{}, err
	}
	k.Status = kennels.Status(status)
	return k, nil
}
