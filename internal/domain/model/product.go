package model

import "time"

type Product struct {
	ID           string    `json:"id"`
	FarmerID     string    `json:"farmer_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Category     string    `json:"category"`
	Description  *string   `json:"description,omitempty"`
	Price        float64   `json:"price"`
	Quantity     string    `json:"quantity"`
	Unit         string    `json:"unit"`
	IsActive     bool      `json:"is_active"`
	IsNegotiable bool      `json:"is_negotiable"`
	ValidityDays int       `json:"validity_days"`
	ExpiresAt    time.Time `json:"expires_at"`
	ImageURL     *string   `json:"image_url,omitempty"`
	// SpecTags is the flattened key=value encoding produced by the
	// specification engine; meaningful only relative to the template that
	// was active at creation time.
	SpecTags    []string   `json:"spec_tags,omitempty"`
	Grade       *string    `json:"grade,omitempty"`
	Moisture    *float64   `json:"moisture_content,omitempty"`
	Purity      *float64   `json:"purity,omitempty"`
	Origin      *string    `json:"origin,omitempty"`
	HarvestDate *time.Time `json:"harvest_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Farmer *FarmerSummary `json:"farmer,omitempty"` // catalog joins only
}

// ProductUpdate carries the mutable fields the seller dashboard may change.
type ProductUpdate struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    string  `json:"quantity"`
	Unit        string  `json:"unit"`
	Description *string `json:"description"`
	IsActive    bool    `json:"is_active"`
}
