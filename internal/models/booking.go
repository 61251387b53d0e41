package models

import "time"

// Booking is written once by the booking recorder and never mutated. The
// customer contact and service fields are snapshots taken at confirm time,
// so later catalog or profile edits do not rewrite history.
type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Phone  string `gorm:"size:20;not null" json:"phone"`
	Email  string `gorm:"size:255;not null" json:"email"`
	Gender string `gorm:"size:10;not null" json:"gender"`

	Date   string `gorm:"size:10;not null;uniqueIndex:idx_booking_slot" json:"date"`
	Period string `gorm:"size:10;not null;uniqueIndex:idx_booking_slot" json:"period"`

	StartMinute int `gorm:"not null;uniqueIndex:idx_booking_slot" json:"start_time"`
	EndMinute   int `gorm:"not null" json:"end_time"`

	TotalCost float64 `json:"total_cost"`

	Items []BookingItem `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	CreatedAt time.Time `json:"created_at"`
}

// BookingItem is the denormalized line-item copy of one service.
type BookingItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `json:"booking_id"`

	ServiceID uint `json:"service_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
}
