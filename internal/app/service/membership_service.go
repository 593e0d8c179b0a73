package service

import (
	"context"
	"time"

	"farmdirect/internal/domain/model"
	"farmdirect/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// A prime purchase must be completed within this window or the consumer may
// claim a refund.
const purchaseDeadlineDays = 3

type MembershipService struct {
	memberships repository.MembershipRepository
	farmers     repository.FarmerRepository
	now         func() time.Time
}

func NewMembershipService(memberships repository.MembershipRepository, farmers repository.FarmerRepository) *MembershipService {
	return &MembershipService{
		memberships: memberships,
		farmers:     farmers,
		now:         time.Now,
	}
}

// Purchase records a prime membership for the seller with the purchase
// deadline stamped up front.
func (s *MembershipService) Purchase(ctx context.Context, consumerID, farmerID string) (*model.PrimeMembership, error) {
	if _, err := s.farmers.FindByID(ctx, farmerID); err != nil {
		return nil, err
	}
	now := s.now()
	membership := &model.PrimeMembership{
		ID:               uuid.New().String(),
		ConsumerID:       consumerID,
		FarmerID:         farmerID,
		PurchasedAt:      now,
		PurchaseDeadline: now.Add(purchaseDeadlineDays * 24 * time.Hour),
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		return nil, err
	}
	log.Info().Str("membership_id", membership.ID).Str("farmer_id", farmerID).Msg("prime membership purchased")
	return membership, nil
}

// ListForConsumer returns the consumer's memberships, newest first.
func (s *MembershipService) ListForConsumer(ctx context.Context, consumerID string) ([]model.PrimeMembership, error) {
	return s.memberships.ListByConsumer(ctx, consumerID)
}

// MarkRefunded flags a membership as refunded. Already-refunded or foreign
// memberships report not found.
func (s *MembershipService) MarkRefunded(ctx context.Context, consumerID, membershipID string) error {
	return s.memberships.MarkRefunded(ctx, membershipID, consumerID)
}
