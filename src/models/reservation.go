package models

import (
	"time"

	"hbs/src/types"
)

type Reservation struct {
	ID     uint `gorm:"primarykey" json:"id"`
	RoomID uint `gorm:"index" json:"room_id,omitempty"`

	GuestName  string `json:"guest_name,omitempty"`
	GuestPhone string `gorm:"index" json:"guest_phone,omitempty"`
	GuestEmail string `gorm:"index" json:"guest_email,omitempty"`

	Kind types.ReservationKind `gorm:"size:16" json:"kind,omitempty"`

	// Overnight bounds, date precision, checkout exclusive.
	CheckIn  *time.Time `gorm:"type:date" json:"check_in,omitempty"`
	CheckOut *time.Time `gorm:"type:date" json:"check_out,omitempty"`

	// Hourly bounds: one calendar day plus HH:MM wall-clock strings.
	Date      *time.Time `gorm:"type:date" json:"date,omitempty"`
	StartTime string     `gorm:"size:8" json:"start_time,omitempty"`
	EndTime   string     `gorm:"size:8" json:"end_time,omitempty"`

	Status          types.ReservationStatus `gorm:"default:'pending';index" json:"status,omitempty"`
	PaymentMethod   types.PaymentMethod     `gorm:"size:16" json:"payment_method,omitempty"`
	PaymentStatus   types.PaymentStatus     `gorm:"default:'unpaid'" json:"payment_status,omitempty"`
	RemainderMethod string                  `gorm:"size:16" json:"remainder_method,omitempty"`

	TotalAmount    int64 `json:"total_amount"`
	PaidAmount     int64 `json:"paid_amount"`
	DepositPercent int   `json:"deposit_percent,omitempty"`
	DepositAmount  int64 `json:"deposit_amount,omitempty"`

	LookupCode string     `gorm:"uniqueIndex;size:16" json:"lookup_code,omitempty"`
	OrderRef   string     `gorm:"index;size:32" json:"order_ref,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Note       string     `json:"note,omitempty"`

	Room          Room          `json:"room,omitempty"`
	LedgerEntries []LedgerEntry `json:"ledger_entries,omitempty"`

	types.Timestamps
}

// Active reports whether the reservation still blocks its interval.
func (r *Reservation) Active() bool {
	return r.Status == types.RESERVATION_PENDING || r.Status == types.RESERVATION_CONFIRMED
}
