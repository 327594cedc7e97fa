package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrder(t *testing.T) *Order {
	o, err := NewOrder(uuid.New(), uuid.New(), "12 High St", "Alex Tran", "+84901234567", "leave at door")
	require.NoError(t, err)
	return o
}

// ============================================
// Status Tests
// ============================================

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  Status
		isValid bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusPacking, true},
		{StatusShipping, true},
		{StatusDelivered, true},
		{StatusCompleted, true},
		{StatusCancelled, true},
		{Status("unknown"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestStatus_Next(t *testing.T) {
	tests := []struct {
		from Status
		next Status
		ok   bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusPacking, true},
		{StatusPacking, StatusShipping, true},
		{StatusShipping, StatusDelivered, true},
		{StatusDelivered, StatusCompleted, true},
		{StatusCompleted, "", false},
		{StatusCancelled, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			next, ok := tt.from.Next()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.next, next)
		})
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     Status
		to       Status
		canTrans bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipping, false}, // no skipping steps
		{StatusConfirmed, StatusPacking, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusPacking, StatusShipping, true},
		{StatusPacking, StatusCancelled, true},
		{StatusShipping, StatusDelivered, true},
		{StatusShipping, StatusCancelled, true},
		{StatusDelivered, StatusCompleted, true},
		{StatusDelivered, StatusCancelled, false}, // too late to cancel
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusDelivered.IsTerminal())
}

// ============================================
// Order Tests
// ============================================

func TestNewOrder(t *testing.T) {
	o := createTestOrder(t)

	assert.Equal(t, StatusPending, o.Status)
	assert.NotEmpty(t, o.OrderCode)
	assert.True(t, o.TotalAmount.IsZero())
	assert.WithinDuration(t, o.CreatedAt, o.StatusChangedAt, time.Second)
}

func TestNewOrder_MissingShippingInfo(t *testing.T) {
	_, err := NewOrder(uuid.New(), uuid.New(), "", "Alex Tran", "+84901234567", "")
	assert.Error(t, err)

	_, err = NewOrder(uuid.New(), uuid.New(), "12 High St", "", "+84901234567", "")
	assert.Error(t, err)

	_, err = NewOrder(uuid.New(), uuid.New(), "12 High St", "Alex Tran", "", "")
	assert.Error(t, err)
}

func TestOrder_AddItem_Total(t *testing.T) {
	o := createTestOrder(t)

	require.NoError(t, o.AddItem(uuid.New(), "Linen Shirt", 2, decimal.NewFromInt(150)))
	require.NoError(t, o.AddItem(uuid.New(), "Denim Jacket", 1, decimal.NewFromInt(420)))

	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(720)))
	assert.Len(t, o.Items, 2)
}

func TestOrder_AddItem_RejectedAfterConfirm(t *testing.T) {
	o := createTestOrder(t)
	require.NoError(t, o.TransitionTo(StatusConfirmed))

	err := o.AddItem(uuid.New(), "Linen Shirt", 1, decimal.NewFromInt(150))
	assert.Error(t, err)
}

func TestOrder_TransitionTo_UpdatesStatusChangedAt(t *testing.T) {
	o := createTestOrder(t)
	o.StatusChangedAt = time.Now().Add(-time.Hour)

	require.NoError(t, o.TransitionTo(StatusConfirmed))

	assert.Equal(t, StatusConfirmed, o.Status)
	assert.WithinDuration(t, time.Now(), o.StatusChangedAt, time.Second)
}

func TestOrder_TransitionTo_Delivered_SetsDeliveredAt(t *testing.T) {
	o := createTestOrder(t)
	o.Status = StatusShipping

	require.NoError(t, o.TransitionTo(StatusDelivered))
	require.NotNil(t, o.DeliveredAt)
	assert.WithinDuration(t, time.Now(), *o.DeliveredAt, time.Second)
}

func TestOrder_AutoAdvance_OneStepOnly(t *testing.T) {
	o := createTestOrder(t)
	o.Status = StatusPacking

	require.NoError(t, o.AutoAdvance())
	assert.Equal(t, StatusShipping, o.Status)
}

func TestOrder_AutoAdvance_Terminal(t *testing.T) {
	o := createTestOrder(t)
	o.Status = StatusCompleted
	assert.Error(t, o.AutoAdvance())

	o.Status = StatusCancelled
	assert.Error(t, o.AutoAdvance())
}

func TestOrder_Cancel(t *testing.T) {
	o := createTestOrder(t)

	require.NoError(t, o.Cancel("changed my mind"))
	assert.Equal(t, StatusCancelled, o.Status)
	assert.Equal(t, "changed my mind", o.CancelReason)
}

func TestOrder_Cancel_AfterDelivery(t *testing.T) {
	o := createTestOrder(t)
	o.Status = StatusDelivered

	assert.Error(t, o.Cancel("too late"))
	assert.Equal(t, StatusDelivered, o.Status)
}

func TestOrder_AgeInStatus(t *testing.T) {
	o := createTestOrder(t)
	o.StatusChangedAt = time.Now().Add(-30 * time.Minute)

	age := o.AgeInStatus(time.Now())
	assert.InDelta(t, 30*time.Minute, age, float64(time.Second))
}

func TestGenerateOrderCode_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := GenerateOrderCode()
		assert.False(t, seen[code], "duplicate order code %s", code)
		seen[code] = true
	}
}
