package models

import "time"

// ProgramLevel is the degree level of a study program.
type ProgramLevel string

const (
	ProgramLevelBachelor ProgramLevel = "BACHELOR"
	ProgramLevelMaster   ProgramLevel = "MASTER"
	ProgramLevelPhD      ProgramLevel = "PHD"
)

// Program is a study program that courses belong to.
type Program struct {
	ID        string       `db:"id" json:"id"`
	Name      string       `db:"name" json:"name"`
	Code      string       `db:"code" json:"code"`
	Level     ProgramLevel `db:"level" json:"level"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// ProgramRef is the display-only program attached to joined rows.
type ProgramRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// ProgramLevels lists the selectable levels in form order.
var ProgramLevels = []ProgramLevel{ProgramLevelBachelor, ProgramLevelMaster, ProgramLevelPhD}
