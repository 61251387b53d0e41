package models

import "time"

// DayWindow persists one period's scheduling window. One row per period;
// the row is the unit of locking, so morning and evening never contend.
type DayWindow struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Period string `gorm:"size:10;uniqueIndex;not null" json:"period"`

	CanonicalStart int `json:"canonical_start"`
	CanonicalEnd   int `json:"canonical_end"`
	NextFreeStart  int `json:"next_free_start"`

	// "2006-01-02" in shop-local time; empty until the first reset.
	LastResetDate string `gorm:"size:10;default:''" json:"last_reset_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
