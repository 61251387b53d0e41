package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sharpfade/barbershop-booking/internal/audit"
	"github.com/sharpfade/barbershop-booking/internal/httpresp"
	"github.com/sharpfade/barbershop-booking/internal/middleware"
	"github.com/sharpfade/barbershop-booking/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: auditDispatcher}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Gender      string  `json:"gender" binding:"required,oneof=Male Female Unisex"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Gender      *string  `json:"gender,omitempty"`
}

// ======================================================
// LIST (public catalog)
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("id ASC").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	httpresp.List(c, services)
}

// ======================================================
// LIST FOR CUSTOMER (gender filtered)
// ======================================================

func (h *ServiceHandler) ListForCustomer(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var customer models.Customer
	if err := h.db.First(&customer, customerID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "customer_not_found"})
		return
	}

	var services []models.Service
	if err := h.db.
		Where("gender = ? OR gender = ?", customer.Gender, models.GenderUnisex).
		Order("id ASC").
		Find(&services).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	httpresp.List(c, services)
}

// ======================================================
// CREATE (barber only)
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	service := models.Service{
		Name:        req.Name,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		Gender:      req.Gender,
	}

	if err := h.db.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorRole: middleware.RoleBarber,
		ActorID:   &barberID,
		Action:    "service_created",
		Entity:    "service",
		EntityID:  &service.ID,
	})

	httpresp.Created(c, service)
}

// ======================================================
// UPDATE (barber only)
// ======================================================

func (h *ServiceHandler) Update(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var service models.Service
	if err := h.db.First(&service, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Gender != nil {
		switch *req.Gender {
		case models.GenderMale, models.GenderFemale, models.GenderUnisex:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_gender"})
			return
		}
		service.Gender = *req.Gender
	}
	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_price"})
			return
		}
		service.Price = *req.Price
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_duration"})
			return
		}
		service.DurationMin = *req.DurationMin
	}

	// Existing bookings keep their denormalized copies; editing the catalog
	// never rewrites history.
	if err := h.db.Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorRole: middleware.RoleBarber,
		ActorID:   &barberID,
		Action:    "service_updated",
		Entity:    "service",
		EntityID:  &service.ID,
	})

	httpresp.OK(c, service)
}

// ======================================================
// DELETE (barber only)
// ======================================================

func (h *ServiceHandler) Delete(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var service models.Service
	if err := h.db.First(&service, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	if err := h.db.Delete(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_service"})
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorRole: middleware.RoleBarber,
		ActorID:   &barberID,
		Action:    "service_deleted",
		Entity:    "service",
		EntityID:  &service.ID,
	})

	httpresp.OK(c, service)
}
