package store

import (
	"context"
	"testing"
	"time"

	"rentbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.CreateUser(ctx, models.User{Email: "a@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, models.User{Email: "a@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCreatePropertyLinksOneAddress(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	userID, err := s.CreateUser(ctx, models.User{Email: "a@example.com"})
	require.NoError(t, err)

	p1, err := s.CreateProperty(ctx, userID, models.Address{Street: "123 Main St", City: "Austin", State: "TX", Zip: "78701"}, nil)
	require.NoError(t, err)
	p2, err := s.CreateProperty(ctx, userID, models.Address{Street: "456 Oak Ave", City: "Austin", State: "TX", Zip: "78702"}, nil)
	require.NoError(t, err)

	first, err := s.PropertyByID(ctx, p1)
	require.NoError(t, err)
	second, err := s.PropertyByID(ctx, p2)
	require.NoError(t, err)

	// Every property gets its own address, never shared
	require.NotNil(t, first.Address)
	require.NotNil(t, second.Address)
	assert.NotEqual(t, first.AddressID, second.AddressID)
	assert.Equal(t, "123 Main St", first.Address.Street)
	assert.Equal(t, "456 Oak Ave", second.Address.Street)
}

func TestLeaseOrderingAndJoins(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	userID, _ := s.CreateUser(ctx, models.User{Email: "a@example.com"})
	propertyID, _ := s.CreateProperty(ctx, userID, models.Address{Street: "123 Main St"}, nil)
	renterID, _ := s.CreateRenter(ctx, models.Renter{UserID: userID, FirstName: "Rita", LastName: "Renter"})

	older := models.Lease{
		PropertyID: propertyID,
		RenterID:   renterID,
		StartDate:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Rate:       900,
	}
	newer := models.Lease{
		PropertyID: propertyID,
		RenterID:   renterID,
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Rate:       1000,
	}

	// Insert out of order
	_, err := s.CreateLease(ctx, older)
	require.NoError(t, err)
	_, err = s.CreateLease(ctx, newer)
	require.NoError(t, err)

	leases, err := s.LeasesByProperty(ctx, propertyID)
	require.NoError(t, err)
	require.Len(t, leases, 2)

	// Newest start date first, renter joined
	assert.Equal(t, 1000.0, leases[0].Rate)
	assert.Equal(t, 900.0, leases[1].Rate)
	require.NotNil(t, leases[0].Renter)
	assert.Equal(t, "Rita", leases[0].Renter.FirstName)

	byRenter, err := s.LeasesByRenter(ctx, renterID)
	require.NoError(t, err)
	require.Len(t, byRenter, 2)
	require.NotNil(t, byRenter[0].Property)
	require.NotNil(t, byRenter[0].Property.Address)
	assert.Equal(t, "123 Main St", byRenter[0].Property.Address.Street)
}

func TestCreateLeaseDefaultTerms(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	leaseID, err := s.CreateLease(ctx, models.Lease{
		PropertyID: 1,
		RenterID:   2,
		StartDate:  time.Now(),
		Rate:       1000,
	})
	require.NoError(t, err)

	lease, err := s.LeaseByID(ctx, leaseID)
	require.NoError(t, err)
	assert.Equal(t, 12, lease.Terms)
}

func TestPaymentWithoutLeasePersists(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	userID, _ := s.CreateUser(ctx, models.User{Email: "a@example.com"})
	renterID, _ := s.CreateRenter(ctx, models.Renter{UserID: userID, FirstName: "Rita"})

	// Deposit: no lease attached
	_, err := s.CreatePayment(ctx, models.Payment{
		UserID:   userID,
		RenterID: renterID,
		Date:     time.Now(),
		Amount:   500,
	})
	require.NoError(t, err)

	payments, err := s.PaymentsByRenter(ctx, renterID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Nil(t, payments[0].LeaseID)
	assert.Equal(t, 500.0, payments[0].Amount)

	byOwner, err := s.PaymentsByOwner(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, byOwner, 1)
}

func TestPropertyImageRoundTrip(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	userID, _ := s.CreateUser(ctx, models.User{Email: "a@example.com"})
	image := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}

	withImage, err := s.CreateProperty(ctx, userID, models.Address{Street: "123 Main St"}, image)
	require.NoError(t, err)
	without, err := s.CreateProperty(ctx, userID, models.Address{Street: "456 Oak Ave"}, nil)
	require.NoError(t, err)

	got, err := s.PropertyImage(ctx, withImage)
	require.NoError(t, err)
	assert.Equal(t, image, got)

	p, err := s.PropertyByID(ctx, withImage)
	require.NoError(t, err)
	assert.True(t, p.HasImage)

	_, err = s.PropertyImage(ctx, without)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotFoundErrors(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	_, err := s.UserByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.UserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.PropertyByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.RenterByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.LeaseByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.PropertyImage(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTouchLastLogin(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	userID, _ := s.CreateUser(ctx, models.User{Email: "a@example.com"})
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.TouchLastLogin(ctx, userID, at))

	u, err := s.UserByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, u.LastLogin)
	assert.True(t, u.LastLogin.Equal(at))
}
