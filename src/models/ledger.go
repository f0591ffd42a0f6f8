package models

import "hbs/src/types"

// LedgerEntry is append-only. The (provider, provider_txn_id) unique pair is
// the idempotency gate for payment notifications: a redelivered notification
// hits the constraint and is dropped before any funds are applied.
type LedgerEntry struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	Provider      string `gorm:"uniqueIndex:idx_provider_txn;size:32" json:"provider"`
	ProviderTxnID string `gorm:"uniqueIndex:idx_provider_txn;size:128" json:"provider_txn_id"`
	Amount        int64  `json:"amount"`
	Narrative     string `gorm:"type:text" json:"narrative,omitempty"`
	Direction     string `gorm:"size:8" json:"direction,omitempty"`
	NoticeStatus  string `gorm:"size:32" json:"notice_status,omitempty"`

	// Raw provider payload, kept as delivered for audits and replays.
	RawPayload types.JSONB `gorm:"type:jsonb" json:"raw_payload,omitempty"`

	ReservationID *uint `gorm:"index" json:"reservation_id,omitempty"`

	Reservation *Reservation `json:"reservation,omitempty"`

	types.Timestamps
}
