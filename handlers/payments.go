package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"rentbook/middleware"
	"rentbook/models"
	"rentbook/services"
	"rentbook/store"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) AddPayment(c *gin.Context) {
	userID := middleware.UserID(c)

	renterID, ok := parseID(c)
	if !ok {
		return
	}

	renter, err := h.store.RenterByID(c.Request.Context(), renterID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Renter not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if renter.UserID != userID {
		redirectWithNotice(c, "/renters", "You do not have access to this renter")
		return
	}

	var req struct {
		Date        string  `form:"date"`
		Amount      float64 `form:"amount" binding:"required,gt=0"`
		Description string  `form:"description"`
		LeaseID     int64   `form:"lease_id"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date := h.now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	// lease_id is optional; a payment without one is a deposit. When given,
	// the lease's renter must be the renter being paid against.
	var leaseID *int64
	if req.LeaseID != 0 {
		lease, err := h.store.LeaseByID(c.Request.Context(), req.LeaseID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lease not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if lease.RenterID != renter.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lease does not belong to this renter"})
			return
		}
		leaseID = &lease.ID
	}

	payment := models.Payment{
		UserID:      userID,
		RenterID:    renter.ID,
		LeaseID:     leaseID,
		Date:        date,
		Amount:      req.Amount,
		Description: req.Description,
	}
	paymentID, err := h.store.CreatePayment(c.Request.Context(), payment)
	if err != nil {
		fmt.Printf("Error creating payment: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}
	payment.ID = paymentID

	// Receipt is best effort; the payment row is already the source of truth
	if landlord, err := h.store.UserByID(c.Request.Context(), userID); err == nil {
		go services.SendPaymentReceipt(landlord, renter, payment)
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/renter/%d", renterID))
}
