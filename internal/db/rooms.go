package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/peerrank/internal/models"
)

func (s *Store) CreateRoom(ctx context.Context, name, branch, section string) (models.Room, error) {
	var r models.Room
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO rooms (name, branch, section)
		VALUES ($1, $2, $3)
		RETURNING id, name, branch, section, created_at
	`, name, branch, section).Scan(&r.ID, &r.Name, &r.Branch, &r.Section, &r.CreatedAt)
	return r, err
}

// GetRoom — nil без ошибки, если комнаты нет.
func (s *Store) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	var r models.Room
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, name, branch, section, created_at FROM rooms WHERE id = $1
	`, id).Scan(&r.ID, &r.Name, &r.Branch, &r.Section, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) ListRooms(ctx context.Context) ([]models.Room, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, name, branch, section, created_at FROM rooms ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Room, 0)
	for rows.Next() {
		var r models.Room
		if err := rows.Scan(&r.ID, &r.Name, &r.Branch, &r.Section, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteRoom — каскадом уходят вопросы, привязки и оценки комнаты.
func (s *Store) DeleteRoom(ctx context.Context, id int64) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
