package common

import (
	"errors"
	"log"
	"regexp"
	"strconv"

	"hbs/src/db"
	"hbs/src/models"
	"hbs/src/models/scopes"
	"hbs/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReferenceExtractor recovers a reservation from a provider's free-text
// transfer narrative. Providers format memos differently, so extraction is a
// per-provider strategy.
type ReferenceExtractor interface {
	Extract(tx *gorm.DB, narrative string) (*models.Reservation, error)
}

var extractors = map[string]ReferenceExtractor{}
var defaultExtractor ReferenceExtractor = memoExtractor{}

func RegisterExtractor(provider string, ex ReferenceExtractor) {
	extractors[provider] = ex
}

func extractorFor(provider string) ReferenceExtractor {
	if ex, ok := extractors[provider]; ok {
		return ex
	}
	return defaultExtractor
}

var orderRefPattern = regexp.MustCompile(`(?i)HBS\s*0*([0-9]+)`)
var lookupCodePattern = regexp.MustCompile(`\b[A-HJ-NP-Z2-9]{8}\b`)

// memoExtractor tries the order reference first, then a bare lookup code.
// Banks routinely strip spacing and case from memos, so both patterns are
// lenient.
type memoExtractor struct{}

func (memoExtractor) Extract(tx *gorm.DB, narrative string) (*models.Reservation, error) {
	if m := orderRefPattern.FindStringSubmatch(narrative); m != nil {
		id, err := strconv.ParseUint(m[1], 10, 64)
		if err == nil {
			var reservation models.Reservation
			err := tx.Scopes(scopes.WithID(uint(id))).First(&reservation).Error
			if err == nil {
				return &reservation, nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
	}
	for _, code := range lookupCodePattern.FindAllString(narrative, -1) {
		var reservation models.Reservation
		err := tx.Where(&models.Reservation{LookupCode: code}).First(&reservation).Error
		if err == nil {
			return &reservation, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// advance recomputes the payment status after funds were added. It only ever
// moves forward.
func advance(r *models.Reservation) types.PaymentStatus {
	if r.PaidAmount >= r.TotalAmount {
		return types.PAYMENT_PAID
	}
	if r.DepositAmount > 0 && r.PaidAmount >= r.DepositAmount {
		return types.PAYMENT_DEPOSIT_PAID
	}
	return r.PaymentStatus
}

// Reconcile ingests one normalized payment notice. The ledger's unique
// (provider, provider_txn_id) pair is the idempotency gate: a redelivered
// notice inserts nothing and returns without touching any reservation. The
// gate and the funds application share one transaction so a crash between
// them cannot drop or double-apply a payment.
func Reconcile(notice *types.PaymentNotice) error {
	entry := models.LedgerEntry{
		Provider:      notice.Provider,
		ProviderTxnID: notice.TxnID,
		Amount:        notice.Amount,
		Narrative:     notice.Narrative,
		Direction:     notice.Direction,
		NoticeStatus:  notice.Status,
		RawPayload:    notice.Raw,
	}
	var confirmed *models.Reservation
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "provider"}, {Name: "provider_txn_id"}},
				DoNothing: true,
			}).
			Create(&entry)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			log.Printf("[reconcile] duplicate notice %s/%s ignored\n", notice.Provider, notice.TxnID)
			return nil
		}
		if notice.Direction != types.DIRECTION_IN || notice.Status != types.NOTICE_SUCCESS || notice.Amount <= 0 {
			log.Printf("[reconcile] notice %s/%s recorded but not applicable\n", notice.Provider, notice.TxnID)
			return nil
		}
		reservation, err := extractorFor(notice.Provider).Extract(tx, notice.Narrative)
		if err != nil {
			return err
		}
		if reservation == nil {
			log.Printf("[reconcile] no reservation matched narrative of %s/%s\n", notice.Provider, notice.TxnID)
			return nil
		}
		// Eligibility is decided on the locked row, not the extractor's
		// snapshot: a cancel can commit between the two reads.
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(scopes.WithID(reservation.ID)).
			Preload("Room").
			First(reservation).
			Error; err != nil {
			return err
		}
		if reservation.PaymentMethod != types.PAYMENT_TRANSFER ||
			!reservation.Active() ||
			reservation.PaymentStatus == types.PAYMENT_PAID {
			log.Printf("[reconcile] reservation %d cannot take funds from %s/%s\n", reservation.ID, notice.Provider, notice.TxnID)
			return nil
		}
		reservation.PaidAmount += notice.Amount
		updates := map[string]any{"paid_amount": reservation.PaidAmount}
		newStatus := advance(reservation)
		if newStatus != reservation.PaymentStatus {
			updates["payment_status"] = newStatus
			reservation.PaymentStatus = newStatus
		}
		if (newStatus == types.PAYMENT_PAID || newStatus == types.PAYMENT_DEPOSIT_PAID) &&
			reservation.Status == types.RESERVATION_PENDING {
			updates["status"] = types.RESERVATION_CONFIRMED
			reservation.Status = types.RESERVATION_CONFIRMED
		}
		if err := tx.
			Model(&models.Reservation{}).
			Scopes(scopes.WithID(reservation.ID)).
			Updates(updates).
			Error; err != nil {
			return err
		}
		if err := tx.
			Model(&models.LedgerEntry{}).
			Scopes(scopes.WithID(entry.ID)).
			Update("reservation_id", reservation.ID).
			Error; err != nil {
			return err
		}
		if newStatus == types.PAYMENT_PAID || newStatus == types.PAYMENT_DEPOSIT_PAID {
			confirmed = reservation
		}
		return nil
	})
	if err != nil {
		log.Printf("Reconcile failed for %s/%s: %s\n", notice.Provider, notice.TxnID, err.Error())
		return err
	}
	// Hooks run after commit so no lock spans a network call.
	if confirmed != nil {
		go dispatchHooks(confirmed)
	}
	return nil
}
