package models

import "time"

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"  // customers only
	GenderUnisex = "Unisex" // services only
)

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
	Gender      string  `gorm:"size:10;not null" json:"gender"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MatchesCustomer reports whether the service's gender restriction admits
// the customer. Unisex admits everyone.
func (s Service) MatchesCustomer(customerGender string) bool {
	return s.Gender == GenderUnisex || s.Gender == customerGender
}
