package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/peerrank/internal/models"
)

func (s *Store) CreateStudent(ctx context.Context, number, email, name string, registered bool) (models.Student, error) {
	var st models.Student
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO students (student_number, email, name, registered)
		VALUES ($1, $2, $3, $4)
		RETURNING id, student_number, email, name, registered, created_at
	`, number, email, name, registered).Scan(&st.ID, &st.StudentNumber, &st.Email, &st.Name, &st.Registered, &st.CreatedAt)
	return st, err
}

func (s *Store) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	var st models.Student
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, student_number, email, name, registered, created_at
		FROM students WHERE id = $1
	`, id).Scan(&st.ID, &st.StudentNumber, &st.Email, &st.Name, &st.Registered, &st.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) ListStudents(ctx context.Context) ([]models.Student, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, student_number, email, name, registered, created_at
		FROM students ORDER BY id
	`)
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

func (s *Store) DeleteStudent(ctx context.Context, id int64) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
