package shipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestStatus_TransitionTable 流转表穷举
func TestStatus_TransitionTable(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusDispatched, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInTransit, false},
		{StatusPending, StatusDelivered, false},
		{StatusDispatched, StatusInTransit, true},
		{StatusDispatched, StatusCancelled, true},
		{StatusDispatched, StatusDelivered, false},
		{StatusDispatched, StatusPending, false},
		{StatusInTransit, StatusDelivered, true},
		{StatusInTransit, StatusCancelled, true},
		{StatusInTransit, StatusDispatched, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s → %s", tc.from, tc.to)
	}
}

// TestStatus_Unknown 未知状态值:允许存在,但流转一律拒绝
func TestStatus_Unknown(t *testing.T) {
	unknown := Status("quarantined")

	assert.False(t, unknown.IsKnown())
	assert.False(t, unknown.IsTerminal())
	assert.False(t, unknown.CanTransitionTo(StatusDelivered))
	assert.False(t, StatusPending.CanTransitionTo(unknown))
	assert.Equal(t, "quarantined", unknown.String())
}

// TestStatus_Terminal 终态判定
func TestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusDispatched.IsTerminal())
	assert.False(t, StatusInTransit.IsTerminal())
}

// TestShipment_TransitionTo 实体流转更新时间戳
func TestShipment_TransitionTo(t *testing.T) {
	s := NewShipment("ST-001", 1, 2, "SF", "张三", nil)
	assert.Equal(t, StatusPending, s.Status)

	assert.NoError(t, s.TransitionTo(StatusDispatched))
	assert.Equal(t, StatusDispatched, s.Status)

	// 终态后不可再流转
	assert.NoError(t, s.TransitionTo(StatusInTransit))
	assert.NoError(t, s.TransitionTo(StatusDelivered))
	assert.ErrorIs(t, s.TransitionTo(StatusCancelled), ErrInvalidTransition)
}
