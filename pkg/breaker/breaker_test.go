package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// TestBreaker_OpensAfterThreshold 连续失败达到阈值后进入OPEN
func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b := New("mq", 3, 30*time.Second)

	for i := 0; i < 3; i++ {
		err := b.Execute(func() error { return errBoom })
		assert.ErrorIs(t, err, errBoom)
	}

	assert.Equal(t, StateOpen, b.State())

	// OPEN状态下快速失败，fn不执行
	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

// TestBreaker_SuccessResetsFailures 成功调用清零连续失败计数
func TestBreaker_SuccessResetsFailures(t *testing.T) {
	b := New("mq", 3, 30*time.Second)

	require.Error(t, b.Execute(func() error { return errBoom }))
	require.Error(t, b.Execute(func() error { return errBoom }))
	require.NoError(t, b.Execute(func() error { return nil }))

	// 计数已清零，再失败2次仍不足以熔断
	require.Error(t, b.Execute(func() error { return errBoom }))
	require.Error(t, b.Execute(func() error { return errBoom }))
	assert.Equal(t, StateClosed, b.State())
}

// TestBreaker_CooldownExpiry 冷却期结束后回到CLOSED
func TestBreaker_CooldownExpiry(t *testing.T) {
	b := New("mq", 2, 10*time.Second)

	// 固定时钟便于控制冷却
	current := time.Now()
	b.now = func() time.Time { return current }

	require.Error(t, b.Execute(func() error { return errBoom }))
	require.Error(t, b.Execute(func() error { return errBoom }))
	require.Equal(t, StateOpen, b.State())

	// 冷却期内仍然OPEN
	current = current.Add(5 * time.Second)
	assert.Equal(t, StateOpen, b.State())

	// 冷却到期后放行
	current = current.Add(6 * time.Second)
	assert.Equal(t, StateClosed, b.State())

	called := false
	require.NoError(t, b.Execute(func() error {
		called = true
		return nil
	}))
	assert.True(t, called)
}

// TestBreaker_StateChangeHook 状态变化回调（指标上报用）
func TestBreaker_StateChangeHook(t *testing.T) {
	var transitions []State
	b := New("mq", 2, 10*time.Second, WithStateChangeHook(func(name string, state State) {
		assert.Equal(t, "mq", name)
		transitions = append(transitions, state)
	}))

	current := time.Now()
	b.now = func() time.Time { return current }

	require.Error(t, b.Execute(func() error { return errBoom }))
	require.Error(t, b.Execute(func() error { return errBoom }))

	current = current.Add(11 * time.Second)
	require.Equal(t, StateClosed, b.State())

	assert.Equal(t, []State{StateOpen, StateClosed}, transitions)
}

// TestBreaker_DefaultConfig 非法参数回退到默认值
func TestBreaker_DefaultConfig(t *testing.T) {
	b := New("mq", 0, 0)
	assert.Equal(t, 3, b.threshold)
	assert.Equal(t, 30*time.Second, b.cooldown)
	assert.Equal(t, "CLOSED", b.State().String())
}
