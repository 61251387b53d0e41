package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpfade/barbershop-booking/internal/middleware"
	"github.com/sharpfade/barbershop-booking/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe resolves the authenticated account from the token's role.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	switch role {
	case middleware.RoleCustomer:
		var customer models.Customer
		if err := h.db.First(&customer, userID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "customer_not_found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"role":     role,
			"customer": customerPayload(&customer),
		})

	case middleware.RoleBarber:
		var barber models.Barber
		if err := h.db.First(&barber, userID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "barber_not_found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"role":   role,
			"barber": barberPayload(&barber),
		})

	default:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown_role"})
	}
}
