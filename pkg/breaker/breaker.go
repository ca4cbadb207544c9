// Package breaker 实现一个两态的发布保护器
//
// 用于保护"尽力而为"的对外发布路径（如RabbitMQ事件发布）：
// 连续失败达到阈值后进入OPEN状态，冷却期内直接拒绝调用（快速失败），
// 冷却期结束后回到CLOSED重新尝试。
//
// 与完整熔断器（CLOSED/OPEN/HALF_OPEN三态）相比省去了半开探测：
// 这里保护的是可丢弃的旁路发布，冷却后直接放行一次失败的代价很低，
// 不值得为它维护探测窗口。
package breaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen 保护器处于OPEN状态，调用被拒绝
var ErrOpen = errors.New("breaker is open")

// State 保护器状态
type State int

const (
	// StateClosed 关闭状态（正常放行）
	StateClosed State = iota

	// StateOpen 打开状态（冷却期内快速失败）
	StateOpen
)

// String 状态转字符串（便于日志）
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	default:
		return "UNKNOWN"
	}
}

// Breaker 两态发布保护器
type Breaker struct {
	name      string
	threshold int           // 连续失败阈值
	cooldown  time.Duration // OPEN状态持续时间

	mu       sync.Mutex
	failures int       // 当前连续失败数
	openedAt time.Time // 进入OPEN的时间

	// now 可替换的时钟（测试用）
	now func() time.Time

	// onStateChange 状态变化回调（用于上报指标）
	onStateChange func(name string, state State)
}

// Option 配置选项
type Option func(*Breaker)

// WithStateChangeHook 注册状态变化回调
func WithStateChangeHook(hook func(name string, state State)) Option {
	return func(b *Breaker) {
		b.onStateChange = hook
	}
}

// New 创建保护器
//
// 参数：
//
//	name: 保护器名称（日志/指标标签）
//	threshold: 连续失败阈值（建议3-5）
//	cooldown: 冷却时间（建议10s-60s）
func New(name string, threshold int, cooldown time.Duration, opts ...Option) *Breaker {
	if threshold <= 0 {
		threshold = 3
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}

	b := &Breaker{
		name:      name,
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State 返回当前状态（冷却到期视为CLOSED）
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentState()
}

// currentState 计算当前状态，调用方必须持有锁
func (b *Breaker) currentState() State {
	if b.failures >= b.threshold {
		if b.now().Sub(b.openedAt) < b.cooldown {
			return StateOpen
		}
		// 冷却到期：清零计数，回到CLOSED
		b.failures = 0
		b.notify(StateClosed)
	}
	return StateClosed
}

// Execute 执行被保护的调用
//
// OPEN状态下直接返回ErrOpen，不执行fn；
// fn返回错误时累计连续失败数，成功则清零。
func (b *Breaker) Execute(fn func() error) error {
	b.mu.Lock()
	if b.currentState() == StateOpen {
		b.mu.Unlock()
		return ErrOpen
	}
	b.mu.Unlock()

	// 调用在锁外执行，慢调用不阻塞其他goroutine的状态判断
	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failures++
		if b.failures == b.threshold {
			b.openedAt = b.now()
			b.notify(StateOpen)
		}
		return err
	}

	b.failures = 0
	return nil
}

// notify 触发状态变化回调，调用方必须持有锁
func (b *Breaker) notify(state State) {
	if b.onStateChange != nil {
		b.onStateChange(b.name, state)
	}
}
