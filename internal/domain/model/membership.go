package model

import "time"

// PrimeMembership gives a consumer a bounded window to contact a farmer and
// complete a purchase.
type PrimeMembership struct {
	ID               string    `json:"id"`
	ConsumerID       string    `json:"consumer_id"`
	FarmerID         string    `json:"farmer_id"`
	PurchasedAt      time.Time `json:"purchased_at"`
	PurchaseDeadline time.Time `json:"purchase_deadline"`
	IsRefunded       bool      `json:"is_refunded"`

	Farmer *FarmerSummary `json:"farmer,omitempty"`
}
