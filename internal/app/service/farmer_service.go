package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"farmdirect/internal/common"
	"farmdirect/internal/common/retry"
	"farmdirect/internal/domain/model"
	"farmdirect/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Defaults for a profile created lazily when a signed-in user lands on the
// seller dashboard without ever completing registration.
const (
	defaultSellerName    = "Seller"
	defaultSellerAddress = "Address not provided"
	defaultSellerContact = "Not provided"
	defaultSellerAadhaar = "Pending"
)

// BusinessDetails carries the profile fields collected by the registration
// wizard. Zero values fall back to the lazy-creation defaults.
type BusinessDetails struct {
	FullName      string  `json:"full_name"`
	Address       string  `json:"address"`
	ContactNumber string  `json:"contact_number"`
	AadhaarNumber string  `json:"aadhaar_number"`
	GSTNumber     *string `json:"gst_number,omitempty"`
}

type FarmerService struct {
	farmers repository.FarmerRepository

	lookupAttempts int
	lookupDelay    time.Duration
	sleep          retry.Sleeper
}

type FarmerOption func(*FarmerService)

func WithFarmerSleeper(sleep retry.Sleeper) FarmerOption {
	return func(s *FarmerService) { s.sleep = sleep }
}

func NewFarmerService(farmers repository.FarmerRepository, opts ...FarmerOption) *FarmerService {
	s := &FarmerService{
		farmers:        farmers,
		lookupAttempts: 3,
		lookupDelay:    300 * time.Millisecond,
		sleep:          retry.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetByUser fetches the profile for a user, retrying transient failures a
// bounded number of times. A definite miss returns ErrNotFound immediately.
func (s *FarmerService) GetByUser(ctx context.Context, userID string) (*model.Farmer, error) {
	var farmer *model.Farmer
	err := retry.Do(ctx, s.lookupAttempts, s.lookupDelay, s.sleep, func(attempt int) (bool, error) {
		f, err := s.farmers.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return true, err
			}
			log.Warn().Err(err).Int("attempt", attempt+1).Msg("profile lookup failed, retrying")
			return false, err
		}
		farmer = f
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return farmer, nil
}

// EnsureProfile returns the user's profile, creating one with placeholder
// details when none exists yet. Registration passes real details; the
// dashboard passes nil and gets the placeholders.
func (s *FarmerService) EnsureProfile(ctx context.Context, userID string, details *BusinessDetails) (*model.Farmer, error) {
	existing, err := s.farmers.FindByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	farmer := newFarmerProfile(userID, details)
	if err := s.farmers.Create(ctx, farmer); err != nil {
		if errors.Is(err, common.ErrConflict) {
			// Lost a race with a concurrent creation; use the winner.
			return s.farmers.FindByUserID(ctx, userID)
		}
		return nil, err
	}
	log.Info().Str("user_id", userID).Str("display_id", farmer.DisplayID).Msg("seller profile created")
	return farmer, nil
}

func newFarmerProfile(userID string, details *BusinessDetails) *model.Farmer {
	farmer := &model.Farmer{
		ID:            uuid.New().String(),
		UserID:        userID,
		DisplayID:     newDisplayID(),
		FullName:      defaultSellerName,
		Address:       defaultSellerAddress,
		ContactNumber: defaultSellerContact,
		AadhaarNumber: defaultSellerAadhaar,
	}
	if details == nil {
		return farmer
	}
	if v := strings.TrimSpace(details.FullName); v != "" {
		farmer.FullName = v
	}
	if v := strings.TrimSpace(details.Address); v != "" {
		farmer.Address = v
	}
	if v := strings.TrimSpace(details.ContactNumber); v != "" {
		farmer.ContactNumber = v
	}
	if v := strings.TrimSpace(details.AadhaarNumber); v != "" {
		farmer.AadhaarNumber = v
	}
	farmer.GSTNumber = details.GSTNumber
	return farmer
}

func newDisplayID() string {
	return "FRM-" + strings.ToUpper(uuid.New().String()[:8])
}
