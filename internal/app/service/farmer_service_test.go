package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"farmdirect/internal/common"
	"farmdirect/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByUser_NotFoundIsImmediate(t *testing.T) {
	farmers := newMemFarmerRepo()
	sleeps := 0
	svc := NewFarmerService(farmers, WithFarmerSleeper(func(ctx context.Context, d time.Duration) error {
		sleeps++
		return nil
	}))

	_, err := svc.GetByUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Zero(t, sleeps, "a definite miss does not retry")
}

func TestEnsureProfile_UsesDefaultsWhenDetailsMissing(t *testing.T) {
	farmers := newMemFarmerRepo()
	svc := NewFarmerService(farmers, WithFarmerSleeper(noSleep))

	farmer, err := svc.EnsureProfile(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, "Seller", farmer.FullName)
	assert.Equal(t, "Address not provided", farmer.Address)
	assert.Equal(t, "Not provided", farmer.ContactNumber)
	assert.Equal(t, "Pending", farmer.AadhaarNumber)
	assert.Regexp(t, `^FRM-[0-9A-F]{8}$`, farmer.DisplayID)
}

func TestEnsureProfile_PartialDetailsFillWithDefaults(t *testing.T) {
	farmers := newMemFarmerRepo()
	svc := NewFarmerService(farmers, WithFarmerSleeper(noSleep))

	farmer, err := svc.EnsureProfile(context.Background(), "u1", &BusinessDetails{
		FullName: "Asha Patel",
		Address:  "  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Patel", farmer.FullName)
	assert.Equal(t, "Address not provided", farmer.Address)
}

func TestEnsureProfile_Idempotent(t *testing.T) {
	farmers := newMemFarmerRepo()
	svc := NewFarmerService(farmers, WithFarmerSleeper(noSleep))

	first, err := svc.EnsureProfile(context.Background(), "u1", &BusinessDetails{FullName: "Asha"})
	require.NoError(t, err)

	second, err := svc.EnsureProfile(context.Background(), "u1", &BusinessDetails{FullName: "Someone Else"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "existing profile wins")
	assert.Equal(t, "Asha", second.FullName)
}

func TestEnsureProfile_LostCreateRaceResolvesToWinner(t *testing.T) {
	farmers := newMemFarmerRepo()
	winner := &model.Farmer{
		ID: "f-winner", UserID: "u1", DisplayID: "FRM-CCCC3333",
		FullName: "Asha", Address: "Rampur", ContactNumber: "+919876543210", AadhaarNumber: "1234",
	}
	svc := NewFarmerService(farmers, WithFarmerSleeper(noSleep))

	// The create fails with a conflict as if another request won the race;
	// the winner's row exists by the time we re-read.
	farmers.failCreates(common.ErrConflict)
	require.NoError(t, farmers.Create(context.Background(), winner))

	farmer, err := svc.EnsureProfile(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, "f-winner", farmer.ID)
}

func TestGetByUser_RetriesTransientFailures(t *testing.T) {
	farmers := newMemFarmerRepo()
	require.NoError(t, farmers.Create(context.Background(), &model.Farmer{
		ID: "f1", UserID: "u1", DisplayID: "FRM-AAAA1111",
		FullName: "Asha", Address: "Rampur", ContactNumber: "+919876543210", AadhaarNumber: "1234",
	}))
	// First lookup hits a transient error, second succeeds.
	flaky := &flakyFarmerRepo{memFarmerRepo: farmers, failures: 1}
	svc := NewFarmerService(flaky, WithFarmerSleeper(noSleep))

	farmer, err := svc.GetByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "f1", farmer.ID)
	assert.Equal(t, 1, flaky.calls-1, "one retry after the transient failure")
}

type flakyFarmerRepo struct {
	*memFarmerRepo
	failures int
	calls    int
}

func (r *flakyFarmerRepo) FindByUserID(ctx context.Context, userID string) (*model.Farmer, error) {
	r.calls++
	if r.calls <= r.failures {
		return nil, errors.New("connection reset by peer")
	}
	return r.memFarmerRepo.FindByUserID(ctx, userID)
}
