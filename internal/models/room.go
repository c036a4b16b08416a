package models

import "time"

// RoomType classifies a room.
type RoomType string

const (
	RoomTypeLecture     RoomType = "LECTURE"
	RoomTypeLab         RoomType = "LAB"
	RoomTypeSeminar     RoomType = "SEMINAR"
	RoomTypeComputerLab RoomType = "COMPUTER_LAB"
)

// RoomTypes lists the selectable room types in form order.
var RoomTypes = []RoomType{RoomTypeLecture, RoomTypeLab, RoomTypeSeminar, RoomTypeComputerLab}

// Room is a physical teaching room.
type Room struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	Capacity  *int      `db:"capacity" json:"capacity"`
	RoomType  *RoomType `db:"room_type" json:"room_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RoomRef is the display-only room attached to schedule rows.
type RoomRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}
