package booking

import (
	"context"

	"github.com/sharpfade/barbershop-booking/internal/models"
)

type Repository interface {
	// -------- Customer --------
	GetCustomerByID(
		ctx context.Context,
		id uint,
	) (*models.Customer, error)

	// -------- Service catalog --------
	GetServicesByIDs(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)

	// -------- Booking --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsForCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Booking, error)
}
