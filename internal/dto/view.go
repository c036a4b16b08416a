package dto

import (
	"html/template"
	"time"

	"github.com/kampus/orari/internal/models"
	"github.com/kampus/orari/internal/timetable"
)

// ScheduleView is the public schedule page.
type ScheduleView struct {
	Rows          []ScheduleRow        `json:"rows"`
	LastUpdated   *time.Time           `json:"lastUpdated,omitempty"`
	Notifications []NotificationBanner `json:"notifications"`
	CurrentDay    int                  `json:"currentDay"`
}

// ScheduleRow is one schedule slot shaped for display. Missing joins render
// as empty strings.
type ScheduleRow struct {
	ID              string `json:"id"`
	CourseName      string `json:"courseName"`
	CourseCode      string `json:"courseCode"`
	ProgramName     string `json:"programName"`
	SessionLabel    string `json:"sessionLabel"`
	Credits         int    `json:"credits"`
	ECTSCredits     int    `json:"ectsCredits"`
	InstructorName  string `json:"instructorName"`
	InstructorTitle string `json:"instructorTitle"`
	RoomName        string `json:"roomName"`
	Day             int    `json:"day"`
	DayShort        string `json:"dayShort"`
	DayName         string `json:"dayName"`
	Date            string `json:"date"`
	TimeRange       string `json:"timeRange"`
	SessionType     string `json:"sessionType"`
	IsCurrentDay    bool   `json:"isCurrentDay"`
}

// NotificationBanner is an active notification with its Markdown message
// rendered to HTML.
type NotificationBanner struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	MessageHTML template.HTML   `json:"messageHtml"`
	Severity    models.Severity `json:"severity"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// DashboardView is the authenticated overview page.
type DashboardView struct {
	Counts DashboardCounts       `json:"counts"`
	Recent []RecentSchedule      `json:"recent"`
	ByDay  [7]timetable.DayCount `json:"byDay"`
}

// DashboardCounts backs the four stat cards.
type DashboardCounts struct {
	Courses     int `json:"courses"`
	Instructors int `json:"instructors"`
	Rooms       int `json:"rooms"`
	Schedules   int `json:"schedules"`
}

// RecentSchedule is one entry of the recently created list.
type RecentSchedule struct {
	ID             string    `json:"id"`
	CourseName     string    `json:"courseName"`
	CourseCode     string    `json:"courseCode"`
	InstructorName string    `json:"instructorName"`
	RoomName       string    `json:"roomName"`
	DayAbbrev      string    `json:"day"`
	TimeRange      string    `json:"timeRange"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ConsoleData holds every record collection listed by the management console.
type ConsoleData struct {
	Programs      []models.Program        `json:"programs"`
	Courses       []models.Course         `json:"courses"`
	Instructors   []models.Instructor     `json:"instructors"`
	Rooms         []models.Room           `json:"rooms"`
	Schedules     []models.ScheduleDetail `json:"schedules"`
	Notifications []models.Notification   `json:"notifications"`
}
