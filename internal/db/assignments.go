package db

import (
	"context"

	"github.com/Spok95/peerrank/internal/models"
)

// AssignStudent — привязывает ученика к комнате; прежняя привязка
// переезжает молча (upsert по student_id).
func (s *Store) AssignStudent(ctx context.Context, roomID, studentID int64) (models.RoomAssignment, error) {
	var a models.RoomAssignment
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO room_assignments (student_id, room_id)
		VALUES ($1, $2)
		ON CONFLICT (student_id) DO UPDATE SET room_id = EXCLUDED.room_id, assigned_at = now()
		RETURNING room_id, student_id, assigned_at
	`, studentID, roomID).Scan(&a.RoomID, &a.StudentID, &a.AssignedAt)
	return a, err
}

func (s *Store) UnassignStudent(ctx context.Context, studentID int64) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM room_assignments WHERE student_id = $1`, studentID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *Store) IsAssigned(ctx context.Context, roomID, studentID int64) (bool, error) {
	var ok bool
	err := s.DB.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM room_assignments WHERE room_id = $1 AND student_id = $2)
	`, roomID, studentID).Scan(&ok)
	return ok, err
}

func (s *Store) ListRoomStudents(ctx context.Context, roomID int64) ([]models.Student, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT st.id, st.student_number, st.email, st.name, st.registered, st.created_at
		FROM room_assignments a
		JOIN students st ON st.id = a.student_id
		WHERE a.room_id = $1
		ORDER BY st.id
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Student, 0)
	for rows.Next() {
		var st models.Student
		if err := rows.Scan(&st.ID, &st.StudentNumber, &st.Email, &st.Name, &st.Registered, &st.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
