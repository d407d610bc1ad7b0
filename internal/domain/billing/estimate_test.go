package billing

import (
	"testing"
	"time"

	"github.com/billfold/backend/internal/domain/shared"
	"github.com/billfold/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEstimate(t *testing.T) *Estimate {
	t.Helper()
	estimate, err := NewEstimate(uuid.New(), uuid.New(), "Kitchen remodel", "full remodel", valueobject.NewMoneyUSDFromFloat(500), time.Now())
	require.NoError(t, err)
	return estimate
}

func TestNewEstimate(t *testing.T) {
	t.Run("creates estimate in draft", func(t *testing.T) {
		estimate := newTestEstimate(t)

		assert.Equal(t, EstimateStatusDraft, estimate.Status)
		assert.False(t, estimate.IsConverted())
		assert.True(t, estimate.Amount.Equal(valueobject.NewMoneyUSDFromFloat(500).Amount()))
		assert.Len(t, estimate.GetDomainEvents(), 1)
	})

	t.Run("rejects empty client", func(t *testing.T) {
		_, err := NewEstimate(uuid.New(), uuid.Nil, "Title", "", valueobject.NewMoneyUSDFromFloat(10), time.Time{})
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("rejects amount below minimum", func(t *testing.T) {
		_, err := NewEstimate(uuid.New(), uuid.New(), "Title", "", valueobject.ZeroUSD(), time.Time{})
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("accepts exact minimum amount", func(t *testing.T) {
		_, err := NewEstimate(uuid.New(), uuid.New(), "Title", "", valueobject.NewMoneyUSDFromFloat(0.01), time.Time{})
		assert.NoError(t, err)
	})

	t.Run("defaults estimate date", func(t *testing.T) {
		estimate, err := NewEstimate(uuid.New(), uuid.New(), "Title", "", valueobject.NewMoneyUSDFromFloat(10), time.Time{})
		require.NoError(t, err)
		assert.False(t, estimate.EstimateDate.IsZero())
	})
}

func TestEstimateStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    EstimateStatus
		to      EstimateStatus
		allowed bool
	}{
		{EstimateStatusDraft, EstimateStatusSent, true},
		{EstimateStatusDraft, EstimateStatusApproved, true},
		{EstimateStatusSent, EstimateStatusApproved, true},
		{EstimateStatusSent, EstimateStatusDraft, false},
		{EstimateStatusApproved, EstimateStatusSent, false},
		{EstimateStatusConverted, EstimateStatusApproved, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestEstimate_UpdateStatus(t *testing.T) {
	t.Run("allows guarded move", func(t *testing.T) {
		estimate := newTestEstimate(t)
		require.NoError(t, estimate.UpdateStatus(EstimateStatusSent))
		assert.Equal(t, EstimateStatusSent, estimate.Status)
	})

	t.Run("rejects converted as a direct edit", func(t *testing.T) {
		estimate := newTestEstimate(t)
		err := estimate.UpdateStatus(EstimateStatusConverted)
		assert.True(t, shared.IsCode(err, shared.CodeInvalidTransition))
		assert.Equal(t, EstimateStatusDraft, estimate.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		estimate := newTestEstimate(t)
		err := estimate.UpdateStatus("archived")
		assert.True(t, shared.IsCode(err, shared.CodeValidation))
	})

	t.Run("rejects unreachable move", func(t *testing.T) {
		estimate := newTestEstimate(t)
		require.NoError(t, estimate.UpdateStatus(EstimateStatusApproved))
		err := estimate.UpdateStatus(EstimateStatusSent)
		assert.True(t, shared.IsCode(err, shared.CodeInvalidTransition))
	})
}

func TestEstimate_MarkConverted(t *testing.T) {
	t.Run("marks converted once", func(t *testing.T) {
		estimate := newTestEstimate(t)

		require.NoError(t, estimate.MarkConverted())
		assert.True(t, estimate.IsConverted())
		assert.NotNil(t, estimate.ConvertedAt)

		err := estimate.MarkConverted()
		assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
	})
}

func TestEstimate_ResetToApproved(t *testing.T) {
	t.Run("reverses a conversion", func(t *testing.T) {
		estimate := newTestEstimate(t)
		require.NoError(t, estimate.MarkConverted())

		estimate.ResetToApproved()
		assert.Equal(t, EstimateStatusApproved, estimate.Status)
		assert.Nil(t, estimate.ConvertedAt)
	})

	t.Run("is idempotent", func(t *testing.T) {
		estimate := newTestEstimate(t)
		require.NoError(t, estimate.MarkConverted())

		estimate.ResetToApproved()
		estimate.ResetToApproved()
		assert.Equal(t, EstimateStatusApproved, estimate.Status)
	})
}

func TestEstimate_UpdateDetails(t *testing.T) {
	t.Run("updates fields", func(t *testing.T) {
		estimate := newTestEstimate(t)
		err := estimate.UpdateDetails("New title", "desc", valueobject.NewMoneyUSDFromFloat(750), time.Now())
		require.NoError(t, err)
		assert.Equal(t, "New title", estimate.Title)
		assert.True(t, estimate.Amount.Equal(valueobject.NewMoneyUSDFromFloat(750).Amount()))
	})

	t.Run("rejects edits after conversion", func(t *testing.T) {
		estimate := newTestEstimate(t)
		require.NoError(t, estimate.MarkConverted())

		err := estimate.UpdateDetails("New title", "", valueobject.NewMoneyUSDFromFloat(750), time.Time{})
		assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
	})
}
