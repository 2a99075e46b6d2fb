package postgres

import (
	"context"
	"database/sql"

	"shelter-map/internal/domain/moves"
)

type MovesRepo struct {
	db *sql.DB
}

func NewMovesRepo(db *sql.DB) *MovesRepo {
	return &MovesRepo{db: db}
}

func (r *MovesRepo) Append(ctx context.Context, m moves.Move) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animal_moves (
			id, shelter_id,
			animal_id, from_kennel_id, to_kennel_id,
			moved_by, moved_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		m.ID,
		m.ShelterID,
		m.AnimalID,
		toNullString(m.FromKennelID),
		m.ToKennelID,
		m.MovedBy,
		m.MovedAt,
	)
	return err
}

func (r *MovesRepo) ListByAnimal(ctx context.Context, animalID string) ([]moves.Move, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, shelter_id,
			animal_id, from_kennel_id, to_kennel_id,
			moved_by, moved_at
		FROM animal_moves
		WHERE animal_id = $1
		ORDER BY moved_at ASC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]moves.Move, 0)
	for rows.Next() {
		var m moves.Move
		var from sql.NullString
		if err := rows.Scan(
			&m.ID,
			&m.ShelterID,
			&m.AnimalID,
			&from,
			&m.ToKennelID,
			&m.MovedBy,
			&m.MovedAt,
		); err != nil {
			return nil, err
		}
		if from.Valid {
			m.FromKennelID = from.String
		}
		out = append(out, m)
	}

	return out, rows.Err()
}
