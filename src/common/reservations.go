package common

import (
	"errors"
	"log"
	"time"

	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/lib"
	"hbs/src/models"
	"hbs/src/models/scopes"
	"hbs/src/types"
	"hbs/src/utils"

	"gorm.io/gorm"
)

// BuildInterval parses the request's date and time strings into an effective
// interval. Field presence is validated here, formats by the binding layer.
func BuildInterval(params *types.CreateReservationRequestBody) (Interval, error) {
	iv := Interval{Kind: types.ReservationKind(params.Kind)}
	if iv.Kind == types.KIND_OVERNIGHT {
		if params.CheckIn == "" || params.CheckOut == "" {
			return iv, types.NewValidationError("overnight booking requires check_in and check_out")
		}
		checkIn, err := time.Parse(config.DATE_PARSE_FORMAT, params.CheckIn)
		if err != nil {
			return iv, types.NewValidationError("invalid check_in: %s", err.Error())
		}
		checkOut, err := time.Parse(config.DATE_PARSE_FORMAT, params.CheckOut)
		if err != nil {
			return iv, types.NewValidationError("invalid check_out: %s", err.Error())
		}
		iv.CheckIn = checkIn
		iv.CheckOut = checkOut
		return iv, nil
	}
	if params.Date == "" || params.StartTime == "" || params.EndTime == "" {
		return iv, types.NewValidationError("hourly booking requires date, start_time and end_time")
	}
	day, err := time.Parse(config.DATE_PARSE_FORMAT, params.Date)
	if err != nil {
		return iv, types.NewValidationError("invalid date: %s", err.Error())
	}
	iv.Day = day
	if iv.StartMin, err = ParseClock(params.StartTime); err != nil {
		return iv, err
	}
	if iv.EndMin, err = ParseClock(params.EndTime); err != nil {
		return iv, err
	}
	return iv, nil
}

func uniqueLookupCode(tx *gorm.DB) (string, error) {
	for range 5 {
		code := utils.GenerateLookupCode()
		if code == "" {
			continue
		}
		var count int64
		err := tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{LookupCode: code}).
			Count(&count).
			Error
		if err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique lookup code")
}

// CreateReservation validates, prices and inserts a reservation in pending
// status. The conflict check and the insert run in one transaction under a
// per-room advisory lock so two concurrent callers cannot both pass the check.
func CreateReservation(params *types.CreateReservationRequestBody) (*models.Reservation, error) {
	iv, err := BuildInterval(params)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := ValidateInterval(iv, now); err != nil {
		return nil, err
	}

	method := types.PaymentMethod(params.PaymentMethod)
	reservation := models.Reservation{
		RoomID:          params.RoomID,
		GuestName:       params.GuestName,
		GuestPhone:      params.GuestPhone,
		GuestEmail:      params.GuestEmail,
		Kind:            iv.Kind,
		Status:          types.RESERVATION_PENDING,
		PaymentMethod:   method,
		PaymentStatus:   types.PAYMENT_UNPAID,
		RemainderMethod: params.RemainderMethod,
		Note:            params.Note,
	}
	if iv.Kind == types.KIND_OVERNIGHT {
		reservation.CheckIn = &iv.CheckIn
		reservation.CheckOut = &iv.CheckOut
	} else {
		reservation.Date = &iv.Day
		reservation.StartTime = params.StartTime
		reservation.EndTime = params.EndTime
	}

	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		// Serializes creation per room for the life of this transaction.
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", int64(params.RoomID)).Error; err != nil {
			return err
		}
		var room models.Room
		if err := tx.Scopes(scopes.WithID(params.RoomID)).First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError("room %d not found", params.RoomID)
			}
			return err
		}
		conflicts, err := FindConflicts(tx, room.ID, iv)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return types.NewConflictError("interval overlaps %d existing reservation(s)", len(conflicts))
		}
		total, err := PriceForInterval(tx, &room, iv)
		if err != nil {
			return err
		}
		reservation.TotalAmount = total
		if method == types.PAYMENT_TRANSFER {
			reservation.DepositPercent, reservation.DepositAmount = ResolveDeposit(total, params.DepositPercent)
		}
		code, err := uniqueLookupCode(tx)
		if err != nil {
			return err
		}
		reservation.LookupCode = code
		expiresAt := now.Add(config.HoldTTL())
		reservation.ExpiresAt = &expiresAt
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}
		reservation.OrderRef = utils.OrderRef(reservation.ID)
		return tx.
			Model(&models.Reservation{}).
			Scopes(scopes.WithID(reservation.ID)).
			Update("order_ref", reservation.OrderRef).
			Error
	})
	if err != nil {
		log.Printf("CreateReservation failed: %s\n", err.Error())
		return nil, err
	}
	return &reservation, nil
}

// CancelReservation releases an interval. Canceling an already canceled row
// is a no-op. Rows holding transfer funds require force so recorded payments
// are never discarded silently.
func CancelReservation(id uint, force bool) error {
	db := db.GetDb()
	return db.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.Scopes(scopes.WithID(id)).First(&reservation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError("reservation %d not found", id)
			}
			return err
		}
		if reservation.Status == types.RESERVATION_CANCELED {
			return nil
		}
		if reservation.PaidAmount > 0 && !force {
			return types.NewStateError("reservation %d holds %d in recorded payments; cancel requires force", id, reservation.PaidAmount)
		}
		return tx.
			Model(&models.Reservation{}).
			Scopes(scopes.WithID(id)).
			Update("status", types.RESERVATION_CANCELED).
			Error
	})
}

// MarkCashPaid settles a cash reservation in full and confirms it.
func MarkCashPaid(id uint) (*models.Reservation, error) {
	db := db.GetDb()
	var reservation models.Reservation
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(scopes.WithID(id)).Preload("Room").First(&reservation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError("reservation %d not found", id)
			}
			return err
		}
		if reservation.PaymentMethod != types.PAYMENT_CASH {
			return types.NewStateError("reservation %d is not a cash reservation", id)
		}
		if reservation.Status == types.RESERVATION_CANCELED {
			return types.NewStateError("reservation %d is canceled", id)
		}
		if reservation.PaymentStatus == types.PAYMENT_PAID {
			return types.NewStateError("reservation %d is already paid", id)
		}
		updates := map[string]any{
			"paid_amount":    reservation.TotalAmount,
			"payment_status": types.PAYMENT_PAID,
		}
		if reservation.Status == types.RESERVATION_PENDING {
			updates["status"] = types.RESERVATION_CONFIRMED
		}
		if err := tx.
			Model(&models.Reservation{}).
			Scopes(scopes.WithID(id)).
			Updates(updates).
			Error; err != nil {
			return err
		}
		reservation.PaidAmount = reservation.TotalAmount
		reservation.PaymentStatus = types.PAYMENT_PAID
		reservation.Status = types.RESERVATION_CONFIRMED
		return nil
	})
	if err != nil {
		return nil, err
	}
	go dispatchHooks(&reservation)
	return &reservation, nil
}

func LookupByCode(code string) (*models.Reservation, error) {
	db := db.GetDb()
	var reservation models.Reservation
	err := db.
		Where(&models.Reservation{LookupCode: code}).
		Preload("Room").
		First(&reservation).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("no reservation with code %s", code)
		}
		return nil, err
	}
	return &reservation, nil
}

func LookupByID(id uint) (*models.Reservation, error) {
	db := db.GetDb()
	var reservation models.Reservation
	err := db.Scopes(scopes.WithID(id)).Preload("Room").First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("reservation %d not found", id)
		}
		return nil, err
	}
	return &reservation, nil
}

// LookupByContact returns the most recent reservations matching a phone and
// email pair. Both fields must match to keep guesses expensive.
func LookupByContact(phone, email string, limit int) ([]models.Reservation, error) {
	if phone == "" || email == "" {
		return nil, types.NewValidationError("both phone and email are required")
	}
	db := db.GetDb()
	var reservations []models.Reservation
	err := db.
		Where(&models.Reservation{GuestPhone: phone, GuestEmail: email}).
		Preload("Room").
		Order("created_at DESC").
		Limit(limit).
		Find(&reservations).
		Error
	return reservations, err
}

// PaymentInstructionsFor assembles the transfer-display payload for a pending
// transfer reservation. QR generation failure degrades to link-only.
func PaymentInstructionsFor(r *models.Reservation, qrURL string) *types.PaymentInstructions {
	if r.PaymentMethod != types.PAYMENT_TRANSFER {
		return nil
	}
	due := r.TotalAmount
	if r.DepositAmount > 0 && r.PaymentStatus == types.PAYMENT_UNPAID {
		due = r.DepositAmount
	} else if r.PaidAmount > 0 {
		due = r.TotalAmount - r.PaidAmount
	}
	instructions := &types.PaymentInstructions{
		BankName:      config.BankName(),
		BankAccount:   config.BankAccountNumber(),
		AccountHolder: config.BankAccountHolder(),
		AmountDue:     due,
		OrderRef:      r.OrderRef,
		QRURL:         qrURL,
	}
	if r.ExpiresAt != nil {
		instructions.ExpiresAt = *r.ExpiresAt
	}
	instructions.DeepLink = lib.PaymentDeepLink(
		instructions.BankName, instructions.BankAccount, instructions.AccountHolder, due, r.OrderRef,
	)
	return instructions
}
