package common

import (
	"log"

	"hbs/src/models"
)

// ConfirmationNotifier is called after a reservation reaches deposit_paid or
// paid. Delivery failures are logged, never propagated to the payment side.
type ConfirmationNotifier interface {
	NotifyConfirmed(r *models.Reservation) error
}

// ReservationSyncer pushes a confirmed reservation to an external system of
// record (spreadsheet, channel manager).
type ReservationSyncer interface {
	SyncReservation(r *models.Reservation) error
}

type logNotifier struct{}

func (logNotifier) NotifyConfirmed(r *models.Reservation) error {
	log.Printf("[hooks] reservation %d confirmed (%s)\n", r.ID, r.OrderRef)
	return nil
}

type logSyncer struct{}

func (logSyncer) SyncReservation(r *models.Reservation) error {
	log.Printf("[hooks] reservation %d synced\n", r.ID)
	return nil
}

var notifier ConfirmationNotifier = logNotifier{}
var syncer ReservationSyncer = logSyncer{}

// SetHooks swaps the post-payment collaborators. Pass nil to keep the current
// value. Called once during boot, before traffic.
func SetHooks(n ConfirmationNotifier, s ReservationSyncer) {
	if n != nil {
		notifier = n
	}
	if s != nil {
		syncer = s
	}
}

// dispatchHooks runs outside any transaction so a slow collaborator cannot
// hold a database lock.
func dispatchHooks(r *models.Reservation) {
	if err := notifier.NotifyConfirmed(r); err != nil {
		log.Printf("Error notifying confirmation for reservation %d: %s\n", r.ID, err.Error())
	}
	if err := syncer.SyncReservation(r); err != nil {
		log.Printf("Error syncing reservation %d: %s\n", r.ID, err.Error())
	}
}
