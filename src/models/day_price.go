package models

import (
	"time"

	"hbs/src/types"
)

// DayPrice overrides the room's nightly rate for a single calendar day.
// Days without a row fall back to Room.NightlyRate.
type DayPrice struct {
	ID     uint      `gorm:"primarykey" json:"id"`
	RoomID uint      `gorm:"uniqueIndex:idx_room_day" json:"room_id,omitempty"`
	Day    time.Time `gorm:"uniqueIndex:idx_room_day;type:date" json:"day"`
	Price  int64     `json:"price"`

	Room Room `json:"-"`

	types.Timestamps
}
