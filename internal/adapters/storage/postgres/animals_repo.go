package postgres

import (
	"context"
	"database/sql"
	"strings"

	"shelter-map/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (
			id, shelter_id,
			name, photo_url, kennel_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		a.ID,
		a.ShelterID,
		a.Name,
		a.PhotoURL,
		toNullString(a.KennelID),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			photo_url = $3,
			kennel_id = $4,
			updated_at = $5
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.PhotoURL,
		toNullString(a.KennelID),
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, animals.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, shelter_id,
			name, photo_url, kennel_id,
			created_at, updated_at
		FROM animals
		WHERE id = $1
	`, id)

	a, err := scanAnimal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) ListByShelter(ctx context.Context, shelterID string) ([]animals.Animal, error) {
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, shelter_id,
			name, photo_url, kennel_id,
			created_at, updated_at
		FROM animals
		WHERE shelter_id = $1
		ORDER BY created_at ASC, id ASC
	`, shelterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *AnimalsRepo) CountByKennel(ctx context.Context, shelterID string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT kennel_id, COUNT(*)
		FROM animals
		WHERE shelter_id = $1 AND kennel_id IS NOT NULL
		GROUP BY kennel_id
	`, shelterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var kennelID string
		var n int
		if err := rows.Scan(&kennelID, &n); err != nil {
			return nil, err
		}
		out[kennelID] = n
	}

	return out, rows.Err()
}

func scanAnimal(row rowScanner) (animals.Animal, error) {
	var a animals.Animal
	var kennelID sql.NullString
	if err := row.Scan(
		&a.ID,
		&a.ShelterID,
		&a.Name,
		&a.PhotoURL,
		&kennelID,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}
	if kennelID.Valid {
		a.KennelID = kennelID.String
	}
	return a, nil
}

// kennel_id es nullable: "" en el dominio = NULL en la tabla
func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
