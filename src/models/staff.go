package models

import "hbs/src/types"

// Staff mirrors the identity subsystem's view of a caller: a stable numeric
// id plus an admin capability flag. Accounts are provisioned elsewhere.
type Staff struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Email string `gorm:"uniqueIndex;size:150" json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Admin bool   `gorm:"default:false" json:"admin"`

	types.Timestamps
}
