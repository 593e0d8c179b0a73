package model

import "time"

// Farmer is the seller profile, distinct from the authenticated user. A
// user has at most one; it is created during registration or lazily when a
// signed-in user first reaches the seller dashboard.
type Farmer struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	DisplayID     string    `json:"display_id"`
	FullName      string    `json:"full_name"`
	Address       string    `json:"address"`
	ContactNumber string    `json:"contact_number"`
	AadhaarNumber string    `json:"aadhaar_number"`
	GSTNumber     *string   `json:"gst_number,omitempty"`
	IsVerified    bool      `json:"is_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FarmerSummary is the public slice of a profile joined onto catalog reads.
type FarmerSummary struct {
	DisplayID     string  `json:"display_id"`
	FullName      string  `json:"full_name"`
	Address       *string `json:"address,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
}
