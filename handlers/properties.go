package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"rentbook/middleware"
	"rentbook/models"
	"rentbook/services"
	"rentbook/store"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) AddProperty(c *gin.Context) {
	userID := middleware.UserID(c)

	var req struct {
		Street string `form:"street" binding:"required"`
		City   string `form:"city" binding:"required"`
		State  string `form:"state" binding:"required"`
		Zip    string `form:"zip" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Optional property photo
	var image []byte
	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
			return
		}
		image, err = io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
			return
		}
	}

	addr := models.Address{
		Street: req.Street,
		City:   req.City,
		State:  req.State,
		Zip:    req.Zip,
	}

	// Address and property are created in one transaction so a failure
	// can't leave an orphaned address behind.
	if _, err := h.store.CreateProperty(c.Request.Context(), userID, addr, image); err != nil {
		fmt.Printf("Error creating property: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create property"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/properties")
}

func (h *Handlers) ListProperties(c *gin.Context) {
	userID := middleware.UserID(c)

	properties, err := h.store.PropertiesByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// N+1 current-lease fill (acceptable at this scale)
	now := h.now()
	for i := range properties {
		leases, err := h.store.LeasesByProperty(c.Request.Context(), properties[i].ID)
		if err != nil {
			continue
		}
		properties[i].CurrentLease = services.CurrentLease(leases, now)
	}

	if properties == nil {
		properties = []models.Property{}
	}

	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

func (h *Handlers) GetProperty(c *gin.Context) {
	propertyID, ok := parseID(c)
	if !ok {
		return
	}

	property, ok := h.ownedProperty(c, propertyID)
	if !ok {
		return
	}

	leases, err := h.store.LeasesByProperty(c.Request.Context(), property.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	property.CurrentLease = services.CurrentLease(leases, h.now())

	c.JSON(http.StatusOK, property)
}

func (h *Handlers) PropertyImage(c *gin.Context) {
	propertyID, ok := parseID(c)
	if !ok {
		return
	}

	if _, ok := h.ownedProperty(c, propertyID); !ok {
		return
	}

	image, err := h.store.PropertyImage(c.Request.Context(), propertyID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No image for this property"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Data(http.StatusOK, http.DetectContentType(image), image)
}

func (h *Handlers) AddLease(c *gin.Context) {
	userID := middleware.UserID(c)

	propertyID, ok := parseID(c)
	if !ok {
		return
	}

	property, err := h.store.PropertyByID(c.Request.Context(), propertyID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if property.UserID != userID {
		redirectWithNotice(c, "/properties", "You do not have access to this property")
		return
	}

	var req struct {
		StartDate string  `form:"start_date" binding:"required"`
		EndDate   string  `form:"end_date"`
		Rate      float64 `form:"rate" binding:"required,gt=0"`
		Terms     int     `form:"terms"`
		RenterID  int64   `form:"renter_id" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	var endDate *time.Time
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		endDate = &end
	}

	// Never trust the submitted renter id: it must name one of the acting
	// user's own renters.
	renter, err := h.store.RenterByID(c.Request.Context(), req.RenterID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Renter not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if renter.UserID != userID {
		redirectWithNotice(c, "/renters", "You do not have access to this renter")
		return
	}

	lease := models.Lease{
		PropertyID: propertyID,
		RenterID:   renter.ID,
		StartDate:  startDate,
		EndDate:    endDate,
		Rate:       req.Rate,
		Terms:      req.Terms,
	}
	leaseID, err := h.store.CreateLease(c.Request.Context(), lease)
	if err != nil {
		fmt.Printf("Error creating lease: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lease"})
		return
	}
	lease.ID = leaseID

	go services.SendLeaseNotice(property, lease, renter.FirstName+" "+renter.LastName)

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/property/%d", propertyID))
}

// ownedProperty fetches a property and hides it from non-owners. A foreign
// property reads the same as a missing one.
func (h *Handlers) ownedProperty(c *gin.Context, propertyID int64) (models.Property, bool) {
	userID := middleware.UserID(c)

	property, err := h.store.PropertyByID(c.Request.Context(), propertyID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && property.UserID != userID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return models.Property{}, false
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return models.Property{}, false
	}
	return property, true
}
