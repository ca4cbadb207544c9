package expense

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraft() *Expense {
	return NewExpense("EXP-20260830-0001", 1, 2, nil, "干线运费", 120000, "CNY", 16800, time.Now())
}

// TestExpenseWorkflow_HappyPath draft→submitted→approved
func TestExpenseWorkflow_HappyPath(t *testing.T) {
	e := newDraft()
	assert.Equal(t, StatusDraft, e.Status)
	assert.True(t, e.IsEditable())

	require.NoError(t, e.Submit())
	assert.Equal(t, StatusSubmitted, e.Status)
	assert.False(t, e.IsEditable())

	require.NoError(t, e.Approve("Manager"))
	assert.Equal(t, StatusApproved, e.Status)
	assert.Equal(t, "Manager", e.ApprovedBy)
	require.NotNil(t, e.ReviewedAt)
}

// TestExpenseWorkflow_RejectPath draft→submitted→rejected
func TestExpenseWorkflow_RejectPath(t *testing.T) {
	e := newDraft()
	require.NoError(t, e.Submit())
	require.NoError(t, e.Reject("Manager"))
	assert.Equal(t, StatusRejected, e.Status)
}

// TestExpenseWorkflow_InvalidTransitions 非法流转被拒绝
func TestExpenseWorkflow_InvalidTransitions(t *testing.T) {
	// 草稿不能直接批准
	e := newDraft()
	assert.ErrorIs(t, e.Approve("Manager"), ErrInvalidTransition)
	assert.Equal(t, StatusDraft, e.Status)
	assert.Empty(t, e.ApprovedBy, "失败的批准不能留下审批痕迹")

	// 终态后不能再流转
	require.NoError(t, e.Submit())
	require.NoError(t, e.Approve("Manager"))
	assert.ErrorIs(t, e.Reject("Other"), ErrInvalidTransition)
	assert.ErrorIs(t, e.Submit(), ErrInvalidTransition)
	assert.Equal(t, "Manager", e.ApprovedBy)
}

// TestVariance 预算差异计算
func TestVariance(t *testing.T) {
	b := &Budget{CategoryID: 1, AmountUSD: 500000}

	v := &Variance{Budget: b, ActualUSD: 320000}
	assert.Equal(t, int64(180000), v.VarianceUSD())

	// 超支为负
	over := &Variance{Budget: b, ActualUSD: 600000}
	assert.Equal(t, int64(-100000), over.VarianceUSD())
}
