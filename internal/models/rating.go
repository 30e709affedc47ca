package models

import "time"

// Rating — запись леджера: одна живая строка на тройку
// (question_id, student_id, rater_id); повторная отправка
// перезаписывает rank на месте.
type Rating struct {
	ID         int64     `db:"id" json:"id"`
	RoomID     int64     `db:"room_id" json:"room_id"`
	QuestionID int64     `db:"question_id" json:"question_id"`
	StudentID  int64     `db:"student_id" json:"student_id"`
	RaterID    int64     `db:"rater_id" json:"-"`
	Rank       int       `db:"rank" json:"rank"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// LeaderboardRow — позиция ученика в сводном рейтинге комнаты.
// Position — плотная нумерация с 1, не путать с rank отдельной оценки.
type LeaderboardRow struct {
	Position      int     `db:"-" json:"position"`
	StudentID     int64   `db:"student_id" json:"student_id"`
	StudentNumber string  `db:"student_number" json:"student_number"`
	Name          string  `db:"name" json:"name"`
	RatingsCount  int     `db:"ratings_count" json:"ratings_count"`
	TotalRating   int     `db:"total_rating" json:"total_rating"`
	AverageRating float64 `db:"average_rating" json:"average_rating"`
}
