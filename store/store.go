// Package store is the single data-access layer. Handlers receive a Store
// explicitly; the binary wires the Postgres implementation, tests inject the
// in-memory one.
package store

import (
	"context"
	"errors"
	"time"

	"rentbook/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type Store interface {
	CreateUser(ctx context.Context, user models.User) (int64, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id int64) (models.User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error

	// CreateProperty inserts the address and the property in one
	// transaction; a failed property insert leaves no orphaned address.
	CreateProperty(ctx context.Context, userID int64, addr models.Address, image []byte) (int64, error)
	PropertyByID(ctx context.Context, id int64) (models.Property, error)
	PropertiesByOwner(ctx context.Context, userID int64) ([]models.Property, error)
	PropertyImage(ctx context.Context, id int64) ([]byte, error)

	CreateRenter(ctx context.Context, renter models.Renter) (int64, error)
	RenterByID(ctx context.Context, id int64) (models.Renter, error)
	RentersByOwner(ctx context.Context, userID int64) ([]models.Renter, error)

	CreateLease(ctx context.Context, lease models.Lease) (int64, error)
	LeaseByID(ctx context.Context, id int64) (models.Lease, error)
	LeasesByProperty(ctx context.Context, propertyID int64) ([]models.Lease, error)
	LeasesByRenter(ctx context.Context, renterID int64) ([]models.Lease, error)

	CreatePayment(ctx context.Context, payment models.Payment) (int64, error)
	PaymentsByRenter(ctx context.Context, renterID int64) ([]models.Payment, error)
	PaymentsByOwner(ctx context.Context, userID int64) ([]models.Payment, error)
}
