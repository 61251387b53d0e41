package repository

import (
	"context"
	"testing"

	"github.com/sharpfade/barbershop-booking/internal/models"
)

func TestCreateBooking_PersistsLineItems(t *testing.T) {
	db := openTestDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	customer := models.Customer{
		FirstName: "Asha", LastName: "Rao", Gender: models.GenderFemale,
		Email: "asha@example.com", Phone: "9876543210", PasswordHash: "x",
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("failed to create customer: %v", err)
	}

	b := &models.Booking{
		Reference:  "ref-1",
		CustomerID: customer.ID,
		Name:       "Asha Rao",
		Phone:      customer.Phone,
		Email:      customer.Email,
		Gender:     customer.Gender,
		Date:       "2026-08-01",
		Period:     "morning",

		StartMinute: 540,
		EndMinute:   585,
		TotalCost:   35,
		Items: []models.BookingItem{
			{ServiceID: 1, Name: "Haircut", Price: 20, DurationMin: 30},
			{ServiceID: 3, Name: "Blow Dry", Price: 15, DurationMin: 15},
		},
	}

	if err := repo.CreateBooking(ctx, b); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if b.ID == 0 {
		t.Fatalf("expected booking id to be assigned")
	}

	bookings, err := repo.ListBookingsForCustomer(ctx, customer.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(bookings))
	}
	if len(bookings[0].Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(bookings[0].Items))
	}
	if bookings[0].Items[0].Name != "Haircut" {
		t.Fatalf("expected denormalized service name, got %q", bookings[0].Items[0].Name)
	}
}

func TestGetServicesByIDs(t *testing.T) {
	db := openTestDB(t)
	repo := NewBookingGormRepository(db)
	ctx := context.Background()

	seed := []models.Service{
		{Name: "Haircut", Price: 20, DurationMin: 30, Gender: models.GenderUnisex},
		{Name: "Beard Trim", Price: 10, DurationMin: 15, Gender: models.GenderMale},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("failed to seed service: %v", err)
		}
	}

	services, err := repo.GetServicesByIDs(ctx, []uint{seed[0].ID, seed[1].ID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(services) != 2 {
		t.Fatalf("expected 2 services, got %d", len(services))
	}

	// Unknown ids simply come back missing; callers decide how to fail.
	services, err = repo.GetServicesByIDs(ctx, []uint{seed[0].ID, 999})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(services) != 1 {
		t.Fatalf("expected 1 service, got %d", len(services))
	}

	services, err = repo.GetServicesByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(services) != 0 {
		t.Fatalf("expected no services for empty ids, got %d", len(services))
	}
}
