package models

import (
	"time"
)

type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedOn    time.Time  `json:"created_on"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}
