package common

import (
	"log"
	"time"

	"hbs/src/db"
	"hbs/src/models"
	"hbs/src/types"

	"gorm.io/gorm"
)

// SweepExpired cancels pending transfer reservations whose hold elapsed
// unpaid. A single conditional UPDATE keeps concurrent sweeps safe: rows
// already canceled no longer match the predicate, so redundant calls are
// no-ops.
func SweepExpired(now time.Time) (int64, error) {
	var swept int64
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Reservation{}).
			Where("status = ?", types.RESERVATION_PENDING).
			Where("payment_method = ?", types.PAYMENT_TRANSFER).
			Where("payment_status <> ?", types.PAYMENT_PAID).
			Where("expires_at < ?", now).
			Update("status", types.RESERVATION_CANCELED)
		if res.Error != nil {
			return res.Error
		}
		swept = res.RowsAffected
		return nil
	})
	if err != nil {
		log.Printf("SweepExpired failed: %s\n", err.Error())
		return 0, err
	}
	if swept > 0 {
		log.Printf("[sweeper] canceled %d expired reservation(s)\n", swept)
	}
	return swept, nil
}
