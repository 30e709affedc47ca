package db

import (
	"context"

	"github.com/Spok95/peerrank/internal/models"
)

// UpsertRating — единственная запись в леджер. Атомарно на тройку
// (question_id, student_id, rater_id): гонка двух отправок упирается
// в уникальный индекс, вторая превращается в UPDATE.
func (s *Store) UpsertRating(ctx context.Context, roomID, questionID, studentID, raterID int64, rank int) (models.Rating, error) {
	var r models.Rating
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO ratings (room_id, question_id, student_id, rater_id, rank)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT ratings_triple_uniq
		DO UPDATE SET rank = EXCLUDED.rank, updated_at = now()
		RETURNING id, room_id, question_id, student_id, rater_id, rank, created_at, updated_at
	`, roomID, questionID, studentID, raterID, rank).Scan(
		&r.ID, &r.RoomID, &r.QuestionID, &r.StudentID, &r.RaterID, &r.Rank, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// RankTakenByOther — отдал ли оценщик этот же rank другому ученику
// в том же вопросе (для строгого режима).
func (s *Store) RankTakenByOther(ctx context.Context, questionID, raterID int64, rank int, studentID int64) (bool, error) {
	var ok bool
	err := s.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM ratings
			WHERE question_id = $1 AND rater_id = $2 AND rank = $3 AND student_id <> $4
		)
	`, questionID, raterID, rank, studentID).Scan(&ok)
	return ok, err
}

// ListReceivedRatings — полученные учеником оценки в комнате,
// без rater_id наружу (анонимность на границе чтения).
func (s *Store) ListReceivedRatings(ctx context.Context, roomID, studentID int64) ([]models.Rating, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, room_id, question_id, student_id, rank, created_at, updated_at
		FROM ratings
		WHERE room_id = $1 AND student_id = $2
		ORDER BY updated_at DESC
	`, roomID, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Rating, 0)
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.ID, &r.RoomID, &r.QuestionID, &r.StudentID, &r.Rank, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
