package models

import "time"

// Course is a taught course within a program.
type Course struct {
	ID           string    `db:"id" json:"id"`
	ProgramID    *string   `db:"program_id" json:"program_id"`
	Name         string    `db:"name" json:"name"`
	Code         string    `db:"code" json:"code"`
	Credits      int       `db:"credits" json:"credits"`
	ECTSCredits  int       `db:"ects_credits" json:"ects_credits"`
	LectureHours int       `db:"lecture_hours" json:"lecture_hours"`
	LabHours     int       `db:"lab_hours" json:"lab_hours"`
	Semester     int       `db:"semester" json:"semester"`
	Year         int       `db:"year" json:"year"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`

	Program *ProgramRef `db:"-" json:"program,omitempty"`
}

// CourseRef is the display-only course attached to schedule rows.
type CourseRef struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Code        string      `json:"code"`
	Credits     int         `json:"credits"`
	ECTSCredits int         `json:"ects_credits"`
	Program     *ProgramRef `json:"program,omitempty"`
}
