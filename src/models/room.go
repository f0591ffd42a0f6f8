package models

import "hbs/src/types"

type Room struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `json:"name,omitempty"`
	Code        string `gorm:"uniqueIndex;size:64" json:"code,omitempty"`
	NightlyRate int64  `json:"nightly_rate,omitempty"`
	HourlyRate  int64  `json:"hourly_rate,omitempty"`
	Description string `json:"description,omitempty"`

	DayPrices    []DayPrice    `json:"day_prices,omitempty"`
	Reservations []Reservation `json:"reservations,omitempty"`

	types.Timestamps
}
