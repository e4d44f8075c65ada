package models

import (
	"time"
)

type Address struct {
	ID        int64     `json:"id"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zip       string    `json:"zip"`
	CreatedOn time.Time `json:"created_on"`
}

type Property struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	AddressID    int64     `json:"address_id"`
	HasImage     bool      `json:"has_image"`
	CreatedOn    time.Time `json:"created_on"`
	Address      *Address  `json:"address,omitempty"`       // Joined for list/detail views
	CurrentLease *Lease    `json:"current_lease,omitempty"` // Computed field, never stored
}

type Renter struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	CreatedOn      time.Time `json:"created_on"`
	Leases         []Lease   `json:"leases,omitempty"`          // For renter views
	Payments       []Payment `json:"payments,omitempty"`        // For renter views
	CurrentAddress *Address  `json:"current_address,omitempty"` // Computed field
}

type Lease struct {
	ID         int64      `json:"id"`
	PropertyID int64      `json:"property_id"`
	RenterID   int64      `json:"renter_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"` // NULL means open-ended
	Rate       float64    `json:"rate"`
	Terms      int        `json:"terms"`
	CreatedOn  time.Time  `json:"created_on"`
	Renter     *Renter    `json:"renter,omitempty"`   // Joined for property views
	Property   *Property  `json:"property,omitempty"` // Joined for renter views
}

type Payment struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`            // person getting paid
	RenterID    int64     `json:"renter_id"`          // person making the payment
	LeaseID     *int64    `json:"lease_id,omitempty"` // NULL for deposits
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	CreatedOn   time.Time `json:"created_on"`
}
