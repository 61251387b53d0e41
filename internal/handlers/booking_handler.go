package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/sharpfade/barbershop-booking/internal/domain/booking"
	"github.com/sharpfade/barbershop-booking/internal/domain/schedule"
	"github.com/sharpfade/barbershop-booking/internal/httperr"
	"github.com/sharpfade/barbershop-booking/internal/httpresp"
	"github.com/sharpfade/barbershop-booking/internal/middleware"
	"github.com/sharpfade/barbershop-booking/internal/timezone"
	ucBooking "github.com/sharpfade/barbershop-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	intentUC  *ucBooking.BookingIntent
	confirmUC *ucBooking.ConfirmBooking
	repo      domain.Repository
	store     schedule.Store
	tz        string
}

func NewBookingHandler(
	intentUC *ucBooking.BookingIntent,
	confirmUC *ucBooking.ConfirmBooking,
	repo domain.Repository,
	store schedule.Store,
	tz string,
) *BookingHandler {
	return &BookingHandler{
		intentUC:  intentUC,
		confirmUC: confirmUC,
		repo:      repo,
		store:     store,
		tz:        tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookingIntentRequest struct {
	Period     string `json:"period" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required,min=1"`
}

type BookingConfirmRequest struct {
	Period      string `json:"period" binding:"required"`
	StartMinute int    `json:"start_time" binding:"min=0"`
	EndMinute   int    `json:"end_time" binding:"required,min=1"`
	ServiceIDs  []uint `json:"service_ids" binding:"required,min=1"`
}

// ======================================================
// INTENT
// ======================================================

func (h *BookingHandler) Intent(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var req BookingIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking request.")
		return
	}

	result, err := h.intentUC.Execute(c.Request.Context(), ucBooking.IntentInput{
		CustomerID: customerID,
		Period:     req.Period,
		ServiceIDs: req.ServiceIDs,
	})
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// CONFIRM
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var req BookingConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking request.")
		return
	}

	b, err := h.confirmUC.Execute(c.Request.Context(), ucBooking.ConfirmInput{
		CustomerID:  customerID,
		Period:      req.Period,
		StartMinute: req.StartMinute,
		EndMinute:   req.EndMinute,
		ServiceIDs:  req.ServiceIDs,
	})
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	httpresp.Created(c, b)
}

// ======================================================
// LIST MINE
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	bookings, err := h.repo.ListBookingsForCustomer(c.Request.Context(), customerID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not load bookings.")
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	today := timezone.Today(h.tz)

	windows, err := h.store.State(c.Request.Context(), today)
	if err != nil {
		httperr.Unavailable(c, "try_again", "Availability is temporarily unavailable.")
		return
	}

	out := make([]gin.H, 0, len(windows))
	for _, w := range windows {
		out = append(out, gin.H{
			"period":          w.Period,
			"canonical_start": w.CanonicalStart,
			"canonical_end":   w.CanonicalEnd,
			"next_free_start": w.NextFreeStart,
			"remaining_min":   w.Remaining(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    today,
		"windows": out,
	})
}

// ======================================================
// ERROR MAPPING
// ======================================================

func (h *BookingHandler) writeBookingError(c *gin.Context, err error) {
	if ce, ok := schedule.IsCapacity(err); ok {
		c.JSON(http.StatusConflict, gin.H{
			"error_code": "capacity_exceeded",
			"message":    "Not enough time left in this period. Try fewer services or the other period.",
			"remaining":  ce.Remaining,
			"period":     ce.Period,
		})
		return
	}

	if errors.Is(err, schedule.ErrSlotConflict) {
		httperr.Conflict(c, "slot_already_confirmed", "This slot was already taken. Request a new one.")
		return
	}

	if schedule.IsTransient(err) {
		httperr.Unavailable(c, "try_again", "Please try again.")
		return
	}

	if code := httperr.BusinessCode(err); code != "" {
		httperr.BadRequest(c, code, bookingMessage(code))
		return
	}

	httperr.Internal(c, "booking_failed", "Could not process booking.")
}

func bookingMessage(code string) string {
	switch code {
	case "invalid_period":
		return "Choose morning or evening."
	case "service_not_found":
		return "One of the selected services no longer exists."
	case "service_gender_mismatch":
		return "One of the selected services is not available for you."
	case "duplicate_service":
		return "Each service can be selected once."
	case "no_services_selected":
		return "Select at least one service."
	case "interval_duration_mismatch":
		return "The slot does not match the selected services. Request a new one."
	case "interval_outside_window":
		return "The slot is outside today's service window. Request a new one."
	default:
		return "Invalid booking request."
	}
}
