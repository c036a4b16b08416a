package models

import "time"

// Instructor teaches scheduled sessions.
type Instructor struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     *string   `db:"email" json:"email"`
	Title     *string   `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// InstructorRef is the display-only instructor attached to schedule rows.
type InstructorRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Title *string `json:"title,omitempty"`
}

// InstructorTitles are the academic titles offered by the instructor forms.
var InstructorTitles = []string{"Professor", "Associate Professor", "Assistant Professor", "Lecturer", "Teaching Assistant"}
