// Package console implements the management console: creation forms, the
// in-memory record tables and their inline edit, delete and toggle actions.
package console

import "strings"

// Entity names a record collection managed by the console. The value doubles
// as the console tab and the URL segment.
type Entity string

const (
	Programs      Entity = "programs"
	Courses       Entity = "courses"
	Instructors   Entity = "instructors"
	Rooms         Entity = "rooms"
	Schedules     Entity = "schedules"
	Notifications Entity = "notifications"
)

// Entities lists the console tabs in display order.
var Entities = []Entity{Courses, Instructors, Rooms, Schedules, Programs, Notifications}

var singular = map[Entity]string{
	Programs:      "Program",
	Courses:       "Course",
	Instructors:   "Instructor",
	Rooms:         "Room",
	Schedules:     "Schedule",
	Notifications: "Notification",
}

// ParseEntity resolves a URL segment.
func ParseEntity(raw string) (Entity, bool) {
	e := Entity(raw)
	_, ok := singular[e]
	return e, ok
}

// Title is the capitalised singular name, e.g. "Course".
func (e Entity) Title() string { return singular[e] }

// Noun is the lower-case singular name used inside messages.
func (e Entity) Noun() string { return strings.ToLower(singular[e]) }

// RequiresConfirmation reports whether delete asks before acting.
func (e Entity) RequiresConfirmation() bool {
	return e == Courses || e == Instructors
}

// SubmitLabel is the create button text.
func (e Entity) SubmitLabel() string {
	if e == Notifications {
		return "Create Notification"
	}
	return "Add " + e.Title()
}

// BusyLabel is the create button text while a submission is running.
func (e Entity) BusyLabel() string {
	if e == Notifications {
		return "Saving..."
	}
	return "Adding " + e.Title() + "..."
}

