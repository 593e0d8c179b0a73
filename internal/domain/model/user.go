package model

import (
	"time"
)

const (
	RoleConsumer = "consumer"
	RoleFarmer   = "farmer"
	RoleAdmin    = "admin"
)

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	FullName       string    `json:"full_name"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           string    `json:"role"`
	EmailConfirmed bool      `json:"email_confirmed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
