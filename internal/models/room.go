package models

import "time"

type Room struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Branch    string    `db:"branch" json:"branch"`
	Section   string    `db:"section" json:"section"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Question struct {
	ID        int64     `db:"id" json:"id"`
	RoomID    int64     `db:"room_id" json:"room_id"`
	Prompt    string    `db:"prompt" json:"prompt"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RoomAssignment — живая привязка ученика к комнате.
// У одного ученика не больше одной привязки одновременно.
type RoomAssignment struct {
	RoomID     int64     `db:"room_id" json:"room_id"`
	StudentID  int64     `db:"student_id" json:"student_id"`
	AssignedAt time.Time `db:"assigned_at" json:"assigned_at"`
}
