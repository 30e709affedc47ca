package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/peerrank/internal/models"
)

func (s *Store) CreateQuestion(ctx context.Context, roomID int64, prompt string) (models.Question, error) {
	var q models.Question
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO questions (room_id, prompt)
		VALUES ($1, $2)
		RETURNING id, room_id, prompt, created_at
	`, roomID, prompt).Scan(&q.ID, &q.RoomID, &q.Prompt, &q.CreatedAt)
	return q, err
}

func (s *Store) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	var q models.Question
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, room_id, prompt, created_at FROM questions WHERE id = $1
	`, id).Scan(&q.ID, &q.RoomID, &q.Prompt, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *Store) ListQuestionsByRoom(ctx context.Context, roomID int64) ([]models.Question, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, room_id, prompt, created_at FROM questions WHERE room_id = $1 ORDER BY id
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Question, 0)
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.RoomID, &q.Prompt, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// DeleteQuestion — каскадом удаляет оценки вопроса.
func (s *Store) DeleteQuestion(ctx context.Context, id int64) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
