package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentbook/models"

	"github.com/lib/pq"
)

type Postgres struct {
	db *sql.DB
}

var _ Store = (*Postgres)(nil)

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateUser(ctx context.Context, user models.User) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, user.Username, user.FirstName, user.LastName, user.Email, user.PasswordHash).Scan(&id)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}
	return id, nil
}

func (s *Postgres) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	var lastLogin sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, first_name, last_name, email, password_hash, created_on, last_login
		FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedOn, &lastLogin)

	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	} else if err != nil {
		return models.User{}, err
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}

func (s *Postgres) UserByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	var lastLogin sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, first_name, last_name, email, password_hash, created_on, last_login
		FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedOn, &lastLogin)

	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	} else if err != nil {
		return models.User{}, err
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}

func (s *Postgres) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
	return err
}

func (s *Postgres) CreateProperty(ctx context.Context, userID int64, addr models.Address, image []byte) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var addressID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO addresses (street, city, state, zip)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, addr.Street, addr.City, addr.State, addr.Zip).Scan(&addressID)
	if err != nil {
		return 0, err
	}

	var img interface{}
	if len(image) > 0 {
		img = image
	}

	var propertyID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO properties (user_id, address_id, image)
		VALUES ($1, $2, $3)
		RETURNING id
	`, userID, addressID, img).Scan(&propertyID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return propertyID, nil
}

func (s *Postgres) PropertyByID(ctx context.Context, id int64) (models.Property, error) {
	var p models.Property
	var a models.Address
	err := s.db.QueryRowContext(ctx, `
		SELECT p.id, p.user_id, p.address_id, (p.image IS NOT NULL), p.created_on,
		       a.id, a.street, a.city, a.state, a.zip, a.created_on
		FROM properties p
		JOIN addresses a ON a.id = p.address_id
		WHERE p.id = $1
	`, id).Scan(&p.ID, &p.UserID, &p.AddressID, &p.HasImage, &p.CreatedOn,
		&a.ID, &a.Street, &a.City, &a.State, &a.Zip, &a.CreatedOn)

	if err == sql.ErrNoRows {
		return models.Property{}, ErrNotFound
	} else if err != nil {
		return models.Property{}, err
	}
	p.Address = &a
	return p, nil
}

func (s *Postgres) PropertiesByOwner(ctx context.Context, userID int64) ([]models.Property, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.user_id, p.address_id, (p.image IS NOT NULL), p.created_on,
		       a.id, a.street, a.city, a.state, a.zip, a.created_on
		FROM properties p
		JOIN addresses a ON a.id = p.address_id
		WHERE p.user_id = $1
		ORDER BY p.created_on DESC, p.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		var p models.Property
		var a models.Address
		if err := rows.Scan(&p.ID, &p.UserID, &p.AddressID, &p.HasImage, &p.CreatedOn,
			&a.ID, &a.Street, &a.City, &a.State, &a.Zip, &a.CreatedOn); err != nil {
			return nil, err
		}
		p.Address = &a
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

func (s *Postgres) PropertyImage(ctx context.Context, id int64) ([]byte, error) {
	var image []byte
	err := s.db.QueryRowContext(ctx, `SELECT image FROM properties WHERE id = $1`, id).Scan(&image)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if len(image) == 0 {
		return nil, ErrNotFound
	}
	return image, nil
}

func (s *Postgres) CreateRenter(ctx context.Context, renter models.Renter) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO renters (user_id, first_name, last_name, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, renter.UserID, renter.FirstName, renter.LastName, renter.Email, renter.Phone).Scan(&id)
	return id, err
}

func (s *Postgres) RenterByID(ctx context.Context, id int64) (models.Renter, error) {
	var r models.Renter
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, first_name, last_name, email, phone, created_on
		FROM renters WHERE id = $1
	`, id).Scan(&r.ID, &r.UserID, &r.FirstName, &r.LastName, &r.Email, &r.Phone, &r.CreatedOn)

	if err == sql.ErrNoRows {
		return models.Renter{}, ErrNotFound
	} else if err != nil {
		return models.Renter{}, err
	}
	return r, nil
}

func (s *Postgres) RentersByOwner(ctx context.Context, userID int64) ([]models.Renter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, first_name, last_name, email, phone, created_on
		FROM renters
		WHERE user_id = $1
		ORDER BY created_on DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var renters []models.Renter
	for rows.Next() {
		var r models.Renter
		if err := rows.Scan(&r.ID, &r.UserID, &r.FirstName, &r.LastName, &r.Email, &r.Phone, &r.CreatedOn); err != nil {
			return nil, err
		}
		renters = append(renters, r)
	}
	return renters, rows.Err()
}

func (s *Postgres) CreateLease(ctx context.Context, lease models.Lease) (int64, error) {
	terms := lease.Terms
	if terms == 0 {
		terms = 12
	}

	var end interface{}
	if lease.EndDate != nil {
		end = *lease.EndDate
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO leases (property_id, renter_id, start_date, end_date, rate, terms)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, lease.PropertyID, lease.RenterID, lease.StartDate, end, lease.Rate, terms).Scan(&id)
	return id, err
}

func (s *Postgres) LeaseByID(ctx context.Context, id int64) (models.Lease, error) {
	var l models.Lease
	var end sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, property_id, renter_id, start_date, end_date, rate, terms, created_on
		FROM leases WHERE id = $1
	`, id).Scan(&l.ID, &l.PropertyID, &l.RenterID, &l.StartDate, &end, &l.Rate, &l.Terms, &l.CreatedOn)

	if err == sql.ErrNoRows {
		return models.Lease{}, ErrNotFound
	} else if err != nil {
		return models.Lease{}, err
	}
	if end.Valid {
		l.EndDate = &end.Time
	}
	return l, nil
}

func (s *Postgres) LeasesByProperty(ctx context.Context, propertyID int64) ([]models.Lease, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.property_id, l.renter_id, l.start_date, l.end_date, l.rate, l.terms, l.created_on,
		       r.id, r.user_id, r.first_name, r.last_name, r.email, r.phone, r.created_on
		FROM leases l
		JOIN renters r ON r.id = l.renter_id
		WHERE l.property_id = $1
		ORDER BY l.start_date DESC, l.id ASC
	`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []models.Lease
	for rows.Next() {
		var l models.Lease
		var r models.Renter
		var end sql.NullTime
		if err := rows.Scan(&l.ID, &l.PropertyID, &l.RenterID, &l.StartDate, &end, &l.Rate, &l.Terms, &l.CreatedOn,
			&r.ID, &r.UserID, &r.FirstName, &r.LastName, &r.Email, &r.Phone, &r.CreatedOn); err != nil {
			return nil, err
		}
		if end.Valid {
			l.EndDate = &end.Time
		}
		l.Renter = &r
		leases = append(leases, l)
	}
	return leases, rows.Err()
}

func (s *Postgres) LeasesByRenter(ctx context.Context, renterID int64) ([]models.Lease, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.property_id, l.renter_id, l.start_date, l.end_date, l.rate, l.terms, l.created_on,
		       p.id, p.user_id, p.address_id, (p.image IS NOT NULL), p.created_on,
		       a.id, a.street, a.city, a.state, a.zip, a.created_on
		FROM leases l
		JOIN properties p ON p.id = l.property_id
		JOIN addresses a ON a.id = p.address_id
		WHERE l.renter_id = $1
		ORDER BY l.start_date DESC, l.id ASC
	`, renterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []models.Lease
	for rows.Next() {
		var l models.Lease
		var p models.Property
		var a models.Address
		var end sql.NullTime
		if err := rows.Scan(&l.ID, &l.PropertyID, &l.RenterID, &l.StartDate, &end, &l.Rate, &l.Terms, &l.CreatedOn,
			&p.ID, &p.UserID, &p.AddressID, &p.HasImage, &p.CreatedOn,
			&a.ID, &a.Street, &a.City, &a.State, &a.Zip, &a.CreatedOn); err != nil {
			return nil, err
		}
		if end.Valid {
			l.EndDate = &end.Time
		}
		p.Address = &a
		l.Property = &p
		leases = append(leases, l)
	}
	return leases, rows.Err()
}

func (s *Postgres) CreatePayment(ctx context.Context, payment models.Payment) (int64, error) {
	var leaseID interface{}
	if payment.LeaseID != nil {
		leaseID = *payment.LeaseID
	}

	var desc interface{}
	if payment.Description != "" {
		desc = payment.Description
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO payments (user_id, renter_id, lease_id, date, amount, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, payment.UserID, payment.RenterID, leaseID, payment.Date, payment.Amount, desc).Scan(&id)
	return id, err
}

func (s *Postgres) PaymentsByRenter(ctx context.Context, renterID int64) ([]models.Payment, error) {
	return s.payments(ctx, `WHERE renter_id = $1`, renterID)
}

func (s *Postgres) PaymentsByOwner(ctx context.Context, userID int64) ([]models.Payment, error) {
	return s.payments(ctx, `WHERE user_id = $1`, userID)
}

func (s *Postgres) payments(ctx context.Context, where string, arg int64) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, renter_id, lease_id, date, amount, COALESCE(description, ''), created_on
		FROM payments `+where+`
		ORDER BY date DESC, id DESC
	`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		var leaseID sql.NullInt64
		if err := rows.Scan(&p.ID, &p.UserID, &p.RenterID, &leaseID, &p.Date, &p.Amount, &p.Description, &p.CreatedOn); err != nil {
			return nil, err
		}
		if leaseID.Valid {
			p.LeaseID = &leaseID.Int64
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
