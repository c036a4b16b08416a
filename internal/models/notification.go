package models

import "time"

// Severity controls how a notification banner is styled.
type Severity string

const (
	SeverityInfo        Severity = "info"
	SeveritySuccess     Severity = "success"
	SeverityWarning     Severity = "warning"
	SeverityDestructive Severity = "destructive"
)

// Severities lists the selectable severities in form order.
var Severities = []Severity{SeverityInfo, SeveritySuccess, SeverityWarning, SeverityDestructive}

// Notification is a banner shown on the public schedule while active.
type Notification struct {
	ID        string     `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Message   string     `db:"message" json:"message"`
	Severity  Severity   `db:"severity" json:"severity"`
	IsActive  bool       `db:"is_active" json:"is_active"`
	StartAt   *time.Time `db:"start_at" json:"start_at"`
	EndAt     *time.Time `db:"end_at" json:"end_at"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}
