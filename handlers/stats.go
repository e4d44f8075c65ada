package handlers

import (
	"net/http"

	"rentbook/middleware"
	"rentbook/services"

	"github.com/gin-gonic/gin"
)

// Read-only portfolio overview for the acting landlord. Everything is
// derived at query time, nothing is cached.
func (h *Handlers) GetStatsOverview(c *gin.Context) {
	userID := middleware.UserID(c)

	var stats struct {
		TotalProperties int     `json:"total_properties"`
		TotalRenters    int     `json:"total_renters"`
		ActiveLeases    int     `json:"active_leases"`
		TotalPayments   int     `json:"total_payments"`
		TotalCollected  float64 `json:"total_collected"`
	}

	properties, err := h.store.PropertiesByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	stats.TotalProperties = len(properties)

	now := h.now()
	for _, property := range properties {
		leases, err := h.store.LeasesByProperty(c.Request.Context(), property.ID)
		if err != nil {
			continue
		}
		if services.CurrentLease(leases, now) != nil {
			stats.ActiveLeases++
		}
	}

	if renters, err := h.store.RentersByOwner(c.Request.Context(), userID); err == nil {
		stats.TotalRenters = len(renters)
	}

	if payments, err := h.store.PaymentsByOwner(c.Request.Context(), userID); err == nil {
		stats.TotalPayments = len(payments)
		for _, p := range payments {
			stats.TotalCollected += p.Amount
		}
	}

	c.JSON(http.StatusOK, stats)
}
