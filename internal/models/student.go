package models

import "time"

type Student struct {
	ID            int64     `db:"id" json:"id"`
	StudentNumber string    `db:"student_number" json:"student_number"`
	Email         string    `db:"email" json:"email"`
	Name          string    `db:"name" json:"name"`
	Registered    bool      `db:"registered" json:"registered"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
