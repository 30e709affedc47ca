package db

import (
	"context"
	"fmt"

	"github.com/Spok95/peerrank/internal/models"
)

// Leaderboard — свод по комнате одним запросом (консистентный снимок).
// rank=1 — лучший, поэтому средний rank по возрастанию; при равенстве
// среднего — больше оценок выше, затем student_id по возрастанию.
// Ученики без полученных оценок в свод не попадают.
func (s *Store) Leaderboard(ctx context.Context, roomID int64, questionID *int64) ([]models.LeaderboardRow, error) {
	q := `
		SELECT r.student_id, st.student_number, st.name,
		       COUNT(*) AS ratings_count,
		       SUM(r.rank) AS total_rating,
		       AVG(r.rank)::float8 AS average_rating
		FROM ratings r
		JOIN students st ON st.id = r.student_id
		WHERE r.room_id = $1
	`
	args := []any{roomID}
	if questionID != nil {
		q += fmt.Sprintf(" AND r.question_id = $%d", len(args)+1)
		args = append(args, *questionID)
	}
	q += `
		GROUP BY r.student_id, st.student_number, st.name
		ORDER BY average_rating ASC, ratings_count DESC, r.student_id ASC
	`

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.LeaderboardRow, 0)
	for rows.Next() {
		var row models.LeaderboardRow
		if err := rows.Scan(&row.StudentID, &row.StudentNumber, &row.Name, &row.RatingsCount, &row.TotalRating, &row.AverageRating); err != nil {
			return nil, err
		}
		row.Position = len(out) + 1
		out = append(out, row)
	}
	return out, rows.Err()
}
