package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"rentbook/middleware"
	"rentbook/models"
	"rentbook/services"
	"rentbook/store"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) AddRenter(c *gin.Context) {
	userID := middleware.UserID(c)

	// No uniqueness on email/phone: renters sharing contact details is a
	// supported scenario.
	var req struct {
		FirstName string `form:"first_name" binding:"required"`
		LastName  string `form:"last_name" binding:"required"`
		Email     string `form:"email" binding:"required,email"`
		Phone     string `form:"phone" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.store.CreateRenter(c.Request.Context(), models.Renter{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		fmt.Printf("Error creating renter: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create renter"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/renters")
}

func (h *Handlers) ListRenters(c *gin.Context) {
	userID := middleware.UserID(c)

	renters, err := h.store.RentersByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	now := h.now()
	for i := range renters {
		if leases, err := h.store.LeasesByRenter(c.Request.Context(), renters[i].ID); err == nil {
			renters[i].Leases = leases
			renters[i].CurrentAddress = services.CurrentAddress(leases, now)
		}
		if payments, err := h.store.PaymentsByRenter(c.Request.Context(), renters[i].ID); err == nil {
			renters[i].Payments = payments
		}
	}

	if renters == nil {
		renters = []models.Renter{}
	}

	c.JSON(http.StatusOK, gin.H{"renters": renters})
}

func (h *Handlers) GetRenter(c *gin.Context) {
	renterID, ok := parseID(c)
	if !ok {
		return
	}

	renter, ok := h.ownedRenter(c, renterID)
	if !ok {
		return
	}

	if leases, err := h.store.LeasesByRenter(c.Request.Context(), renter.ID); err == nil {
		renter.Leases = leases
		renter.CurrentAddress = services.CurrentAddress(leases, h.now())
	}
	if payments, err := h.store.PaymentsByRenter(c.Request.Context(), renter.ID); err == nil {
		renter.Payments = payments
	}

	c.JSON(http.StatusOK, renter)
}

// ownedRenter fetches a renter and hides it from non-owners, mirroring
// ownedProperty.
func (h *Handlers) ownedRenter(c *gin.Context, renterID int64) (models.Renter, bool) {
	userID := middleware.UserID(c)

	renter, err := h.store.RenterByID(c.Request.Context(), renterID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && renter.UserID != userID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Renter not found"})
		return models.Renter{}, false
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return models.Renter{}, false
	}
	return renter, true
}
