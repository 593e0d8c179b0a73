package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"farmdirect/internal/common"
	"farmdirect/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memMembershipRepo struct {
	mu          sync.Mutex
	memberships map[string]*model.PrimeMembership
}

func newMemMembershipRepo() *memMembershipRepo {
	return &memMembershipRepo{memberships: make(map[string]*model.PrimeMembership)}
}

func (r *memMembershipRepo) Create(_ context.Context, m *model.PrimeMembership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.memberships {
		if existing.ConsumerID == m.ConsumerID && existing.FarmerID == m.FarmerID {
			return common.ErrConflict
		}
	}
	cp := *m
	r.memberships[m.ID] = &cp
	return nil
}

func (r *memMembershipRepo) ListByConsumer(_ context.Context, consumerID string) ([]model.PrimeMembership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.PrimeMembership
	for _, m := range r.memberships {
		if m.ConsumerID == consumerID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *memMembershipRepo) MarkRefunded(_ context.Context, id, consumerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memberships[id]
	if !ok || m.ConsumerID != consumerID || m.IsRefunded {
		return common.ErrNotFound
	}
	m.IsRefunded = true
	return nil
}

func newMembershipFixture(t *testing.T) (*MembershipService, *memFarmerRepo) {
	t.Helper()
	farmers := newMemFarmerRepo()
	return NewMembershipService(newMemMembershipRepo(), farmers), farmers
}

func TestPurchase_StampsDeadline(t *testing.T) {
	svc, farmers := newMembershipFixture(t)
	seedFarmer(t, farmers)

	before := time.Now()
	m, err := svc.Purchase(context.Background(), "c1", "f1")
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(3*24*time.Hour), m.PurchaseDeadline, 5*time.Second)
	assert.False(t, m.IsRefunded)
}

func TestPurchase_UnknownFarmer(t *testing.T) {
	svc, _ := newMembershipFixture(t)
	_, err := svc.Purchase(context.Background(), "c1", "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPurchase_DuplicateConflicts(t *testing.T) {
	svc, farmers := newMembershipFixture(t)
	seedFarmer(t, farmers)

	_, err := svc.Purchase(context.Background(), "c1", "f1")
	require.NoError(t, err)
	_, err = svc.Purchase(context.Background(), "c1", "f1")
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestMarkRefunded_OnlyOnce(t *testing.T) {
	svc, farmers := newMembershipFixture(t)
	seedFarmer(t, farmers)

	m, err := svc.Purchase(context.Background(), "c1", "f1")
	require.NoError(t, err)

	require.NoError(t, svc.MarkRefunded(context.Background(), "c1", m.ID))
	assert.ErrorIs(t, svc.MarkRefunded(context.Background(), "c1", m.ID), common.ErrNotFound)
}
