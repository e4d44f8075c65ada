package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"rentbook/models"
)

// Memory is a map-backed Store used by tests. It mirrors the Postgres
// implementation's semantics: sequential ids, the address/property pair
// created together, joined records attached on reads.
type Memory struct {
	mu     sync.Mutex
	nextID int64

	users      map[int64]models.User
	addresses  map[int64]models.Address
	properties map[int64]models.Property
	images     map[int64][]byte
	renters    map[int64]models.Renter
	leases     map[int64]models.Lease
	payments   map[int64]models.Payment
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		users:      map[int64]models.User{},
		addresses:  map[int64]models.Address{},
		properties: map[int64]models.Property{},
		images:     map[int64][]byte{},
		renters:    map[int64]models.Renter{},
		leases:     map[int64]models.Lease{},
		payments:   map[int64]models.Payment{},
	}
}

func (s *Memory) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Memory) CreateUser(_ context.Context, user models.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return 0, ErrDuplicateEmail
		}
	}

	user.ID = s.id()
	user.CreatedOn = time.Now()
	s.users[user.ID] = user
	return user.ID, nil
}

func (s *Memory) UserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *Memory) UserByID(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *Memory) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLogin = &at
	s.users[id] = u
	return nil
}

func (s *Memory) CreateProperty(_ context.Context, userID int64, addr models.Address, image []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	addr.ID = s.id()
	addr.CreatedOn = time.Now()
	s.addresses[addr.ID] = addr

	p := models.Property{
		ID:        s.id(),
		UserID:    userID,
		AddressID: addr.ID,
		HasImage:  len(image) > 0,
		CreatedOn: time.Now(),
	}
	s.properties[p.ID] = p
	if len(image) > 0 {
		s.images[p.ID] = image
	}
	return p.ID, nil
}

func (s *Memory) PropertyByID(_ context.Context, id int64) (models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.properties[id]
	if !ok {
		return models.Property{}, ErrNotFound
	}
	addr := s.addresses[p.AddressID]
	p.Address = &addr
	return p, nil
}

func (s *Memory) PropertiesByOwner(_ context.Context, userID int64) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var properties []models.Property
	for _, p := range s.properties {
		if p.UserID != userID {
			continue
		}
		addr := s.addresses[p.AddressID]
		p.Address = &addr
		properties = append(properties, p)
	}
	sort.Slice(properties, func(i, j int) bool { return properties[i].ID > properties[j].ID })
	return properties, nil
}

func (s *Memory) PropertyImage(_ context.Context, id int64) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[id]; !ok {
		return nil, ErrNotFound
	}
	image, ok := s.images[id]
	if !ok {
		return nil, ErrNotFound
	}
	return image, nil
}

func (s *Memory) CreateRenter(_ context.Context, renter models.Renter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	renter.ID = s.id()
	renter.CreatedOn = time.Now()
	s.renters[renter.ID] = renter
	return renter.ID, nil
}

func (s *Memory) RenterByID(_ context.Context, id int64) (models.Renter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.renters[id]
	if !ok {
		return models.Renter{}, ErrNotFound
	}
	return r, nil
}

func (s *Memory) RentersByOwner(_ context.Context, userID int64) ([]models.Renter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var renters []models.Renter
	for _, r := range s.renters {
		if r.UserID == userID {
			renters = append(renters, r)
		}
	}
	sort.Slice(renters, func(i, j int) bool { return renters[i].ID > renters[j].ID })
	return renters, nil
}

func (s *Memory) CreateLease(_ context.Context, lease models.Lease) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lease.ID = s.id()
	lease.CreatedOn = time.Now()
	if lease.Terms == 0 {
		lease.Terms = 12
	}
	lease.Renter = nil
	lease.Property = nil
	s.leases[lease.ID] = lease
	return lease.ID, nil
}

func (s *Memory) LeaseByID(_ context.Context, id int64) (models.Lease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.leases[id]
	if !ok {
		return models.Lease{}, ErrNotFound
	}
	return l, nil
}

func (s *Memory) LeasesByProperty(_ context.Context, propertyID int64) ([]models.Lease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var leases []models.Lease
	for _, l := range s.leases {
		if l.PropertyID != propertyID {
			continue
		}
		r := s.renters[l.RenterID]
		l.Renter = &r
		leases = append(leases, l)
	}
	sortLeases(leases)
	return leases, nil
}

func (s *Memory) LeasesByRenter(_ context.Context, renterID int64) ([]models.Lease, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var leases []models.Lease
	for _, l := range s.leases {
		if l.RenterID != renterID {
			continue
		}
		p := s.properties[l.PropertyID]
		addr := s.addresses[p.AddressID]
		p.Address = &addr
		l.Property = &p
		leases = append(leases, l)
	}
	sortLeases(leases)
	return leases, nil
}

// Newest start date first, insertion order within a start date. Same
// ordering the Postgres queries use.
func sortLeases(leases []models.Lease) {
	sort.Slice(leases, func(i, j int) bool {
		if !leases[i].StartDate.Equal(leases[j].StartDate) {
			return leases[i].StartDate.After(leases[j].StartDate)
		}
		return leases[i].ID < leases[j].ID
	})
}

func (s *Memory) CreatePayment(_ context.Context, payment models.Payment) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payment.ID = s.id()
	payment.CreatedOn = time.Now()
	s.payments[payment.ID] = payment
	return payment.ID, nil
}

func (s *Memory) PaymentsByRenter(_ context.Context, renterID int64) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payments []models.Payment
	for _, p := range s.payments {
		if p.RenterID == renterID {
			payments = append(payments, p)
		}
	}
	sortPayments(payments)
	return payments, nil
}

func (s *Memory) PaymentsByOwner(_ context.Context, userID int64) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payments []models.Payment
	for _, p := range s.payments {
		if p.UserID == userID {
			payments = append(payments, p)
		}
	}
	sortPayments(payments)
	return payments, nil
}

func sortPayments(payments []models.Payment) {
	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].Date.Equal(payments[j].Date) {
			return payments[i].Date.After(payments[j].Date)
		}
		return payments[i].ID > payments[j].ID
	})
}
