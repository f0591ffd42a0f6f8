package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type ReservationKind string

const (
	KIND_OVERNIGHT ReservationKind = "overnight"
	KIND_HOURLY    ReservationKind = "hourly"
)

type ReservationStatus string

const (
	RESERVATION_PENDING   ReservationStatus = "pending"
	RESERVATION_CONFIRMED ReservationStatus = "confirmed"
	RESERVATION_CANCELED  ReservationStatus = "canceled"
)

type PaymentMethod string

const (
	PAYMENT_TRANSFER PaymentMethod = "transfer"
	PAYMENT_CASH     PaymentMethod = "cash"
)

type PaymentStatus string

const (
	PAYMENT_UNPAID       PaymentStatus = "unpaid"
	PAYMENT_DEPOSIT_PAID PaymentStatus = "deposit_paid"
	PAYMENT_PAID         PaymentStatus = "paid"
)

// PaymentNotice is a provider payload normalized by the webhook layer before
// it reaches the reconciler.
type PaymentNotice struct {
	Provider  string `json:"provider"`
	TxnID     string `json:"transaction_id"`
	Amount    int64  `json:"amount"`
	Narrative string `json:"narrative"`
	Direction string `json:"direction"`
	Status    string `json:"status"`
	Raw       JSONB  `json:"raw,omitempty"`
}

const (
	DIRECTION_IN  = "in"
	DIRECTION_OUT = "out"

	NOTICE_SUCCESS = "success"
)

type CreateRoomRequestBody struct {
	Name        string `json:"name" binding:"required"`
	NightlyRate int64  `json:"nightly_rate" binding:"required"`
	HourlyRate  int64  `json:"hourly_rate" binding:"required"`
	Description string `json:"description,omitempty"`
}

type UpdateRoomRequestBody struct {
	Name        *string `json:"name,omitempty"`
	NightlyRate *int64  `json:"nightly_rate,omitempty"`
	HourlyRate  *int64  `json:"hourly_rate,omitempty"`
	Description *string `json:"description,omitempty"`
}

type SetDayPriceRequestBody struct {
	Day   string `json:"day" binding:"required,calendardate"`
	Price int64  `json:"price" binding:"required"`
}

type CreateReservationRequestBody struct {
	RoomID     uint   `json:"room_id" binding:"required"`
	GuestName  string `json:"guest_name" binding:"required"`
	GuestPhone string `json:"guest_phone" binding:"required"`
	GuestEmail string `json:"guest_email,omitempty"`
	Kind       string `json:"kind" binding:"required,oneof=overnight hourly"`

	CheckIn  string `json:"check_in,omitempty" binding:"omitempty,calendardate"`
	CheckOut string `json:"check_out,omitempty" binding:"omitempty,calendardate"`

	Date      string `json:"date,omitempty" binding:"omitempty,calendardate"`
	StartTime string `json:"start_time,omitempty" binding:"omitempty,clocktime"`
	EndTime   string `json:"end_time,omitempty" binding:"omitempty,clocktime"`

	PaymentMethod   string `json:"payment_method" binding:"required,oneof=transfer cash"`
	DepositPercent  *int   `json:"deposit_percent,omitempty"`
	RemainderMethod string `json:"remainder_method,omitempty"`
	Note            string `json:"note,omitempty"`
}

type CancelReservationRequestBody struct {
	Force  bool   `json:"force,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type AvailabilityQueryFilters struct {
	Month string `form:"month" binding:"omitempty,calendarmonth"`
	Date  string `form:"date" binding:"omitempty,calendardate"`
}

type LookupQueryFilters struct {
	Code  string `form:"code"`
	Phone string `form:"phone"`
	Email string `form:"email"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

// PaymentInstructions is returned to transfer-method guests so they can settle
// the amount due now. QRURL points at the generated QR image for the deep link.
type PaymentInstructions struct {
	BankName      string    `json:"bank_name"`
	BankAccount   string    `json:"bank_account"`
	AccountHolder string    `json:"account_holder"`
	AmountDue     int64     `json:"amount_due"`
	OrderRef      string    `json:"order_ref"`
	DeepLink      string    `json:"deep_link"`
	QRURL         string    `json:"qr_url,omitempty"`
	ExpiresAt     time.Time `json:"expires_at"`
}

type RoomCalendar struct {
	RoomID   uint              `json:"room_id"`
	Blocking []BlockedInterval `json:"blocking"`
	Prices   map[string]int64  `json:"prices,omitempty"`
	Occupied []OccupiedSlot    `json:"occupied,omitempty"`
}

type BlockedInterval struct {
	Kind      ReservationKind   `json:"kind"`
	Status    ReservationStatus `json:"status"`
	CheckIn   string            `json:"check_in,omitempty"`
	CheckOut  string            `json:"check_out,omitempty"`
	Date      string            `json:"date,omitempty"`
	StartTime string            `json:"start_time,omitempty"`
	EndTime   string            `json:"end_time,omitempty"`
}

type OccupiedSlot struct {
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	Status    ReservationStatus `json:"status"`
}

type Claims struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	jwt.RegisteredClaims
}
