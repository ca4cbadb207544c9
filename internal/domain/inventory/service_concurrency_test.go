package inventory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// txLockingRepo 带行锁语义的内存仓储
// LockByProductAndLocation按(商品,站点)键加锁,锁一直持有到事务结束
// (与FOR UPDATE行锁一致:提交或回滚前其他事务拿不到同一行)。
// 事务通过ctx传递,对齐mysql.TxManager的传播方式
type txLockingRepo struct {
	*fakeRepo
	mu    sync.Mutex
	locks map[[2]uint]*sync.Mutex
}

func newTxLockingRepo() *txLockingRepo {
	return &txLockingRepo{
		fakeRepo: newFakeRepo(),
		locks:    make(map[[2]uint]*sync.Mutex),
	}
}

type fakeTxKey struct{}

// fakeTx 一次调用一个事务,结束时释放全部持有的行锁
type fakeTx struct {
	held []*sync.Mutex
}

func (tx *fakeTx) end() {
	for _, m := range tx.held {
		m.Unlock()
	}
	tx.held = nil
}

func (r *txLockingRepo) begin(ctx context.Context) (context.Context, *fakeTx) {
	tx := &fakeTx{}
	return context.WithValue(ctx, fakeTxKey{}, tx), tx
}

func (r *txLockingRepo) LockByProductAndLocation(ctx context.Context, productID, locationID uint) (*Record, error) {
	key := [2]uint{productID, locationID}

	r.mu.Lock()
	m, ok := r.locks[key]
	if !ok {
		m = &sync.Mutex{}
		r.locks[key] = m
	}
	r.mu.Unlock()

	m.Lock()
	tx, ok := ctx.Value(fakeTxKey{}).(*fakeTx)
	if !ok {
		m.Unlock()
		return nil, ErrRecordNotFound
	}
	tx.held = append(tx.held, m)

	return r.fakeRepo.FindByProductAndLocation(ctx, productID, locationID)
}

// TestReserve_ConcurrentAtomicity 并发预留不超卖:
// 可用量A=10,每次预留q=3,20个并发请求在行锁下串行化,
// 最多成功floor(A/q)=3次,预留量始终不超过总量
func TestReserve_ConcurrentAtomicity(t *testing.T) {
	repo := newTxLockingRepo()
	repo.seed(1, 10, 10, 0)
	svc := NewService(repo)

	const workers = 20
	var wg sync.WaitGroup
	var successes int64

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, tx := repo.begin(context.Background())
			defer tx.end()

			if svc.Reserve(ctx, 1, 10, 3) == nil {
				atomic.AddInt64(&successes, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(3), successes, "并发预留最多成功floor(10/3)次")

	record, err := repo.FindByProductAndLocation(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 9, record.Reserved)
	assert.Equal(t, 10, record.Quantity)
	assert.LessOrEqual(t, record.Reserved, record.Quantity)
}

// TestReserve_ConcurrentExactFit 可用量恰好整除预留量:全部额度被领完
func TestReserve_ConcurrentExactFit(t *testing.T) {
	repo := newTxLockingRepo()
	repo.seed(1, 10, 12, 0)
	svc := NewService(repo)

	const workers = 10
	var wg sync.WaitGroup
	var successes int64

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, tx := repo.begin(context.Background())
			defer tx.end()

			if svc.Reserve(ctx, 1, 10, 4) == nil {
				atomic.AddInt64(&successes, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(3), successes)

	record, _ := repo.FindByProductAndLocation(context.Background(), 1, 10)
	assert.Equal(t, 12, record.Reserved)
	assert.Equal(t, 0, record.Available())
}
