package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/shiptrack/pkg/metrics"
)

// fakeRepo 内存版仓储实现(测试用)
// 以(productID, locationID)为键,无行锁,只验证台账语义;
// 行锁下的串行化语义由service_concurrency_test.go的txLockingRepo验证
type fakeRepo struct {
	records map[[2]uint]*Record
	nextID  uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[[2]uint]*Record), nextID: 1}
}

func (f *fakeRepo) seed(productID, locationID uint, quantity, reserved int) {
	r := NewRecord(productID, locationID, quantity, reserved)
	r.ID = f.nextID
	f.nextID++
	f.records[[2]uint{productID, locationID}] = r
}

func (f *fakeRepo) Create(ctx context.Context, record *Record) error {
	key := [2]uint{record.ProductID, record.LocationID}
	if _, ok := f.records[key]; ok {
		return ErrRecordDuplicate
	}
	record.ID = f.nextID
	f.nextID++
	f.records[key] = record
	return nil
}

func (f *fakeRepo) FindByProductAndLocation(ctx context.Context, productID, locationID uint) (*Record, error) {
	r, ok := f.records[[2]uint{productID, locationID}]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeRepo) LockByProductAndLocation(ctx context.Context, productID, locationID uint) (*Record, error) {
	return f.FindByProductAndLocation(ctx, productID, locationID)
}

func (f *fakeRepo) Update(ctx context.Context, record *Record) error {
	f.records[[2]uint{record.ProductID, record.LocationID}] = record
	return nil
}

func (f *fakeRepo) ListByProduct(ctx context.Context, productID uint) ([]*Record, error) {
	var out []*Record
	for key, r := range f.records {
		if key[0] == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) List(ctx context.Context, page, pageSize int) ([]*Record, int64, error) {
	var out []*Record
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

// totalQuantity 某商品在所有站点的总量(守恒检查用)
func (f *fakeRepo) totalQuantity(productID uint) int {
	total := 0
	for key, r := range f.records {
		if key[0] == productID {
			total += r.Quantity
		}
	}
	return total
}

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	m.Run()
}

// TestReserve_Success 正常预留
func TestReserve_Success(t *testing.T) {
	repo := newFakeRepo()
	repo.seed(1, 10, 100, 20)
	svc := NewService(repo)

	err := svc.Reserve(context.Background(), 1, 10, 30)
	require.NoError(t, err)

	record, _ := repo.FindByProductAndLocation(context.Background(), 1, 10)
	assert.Equal(t, 100, record.Quantity)
	assert.Equal(t, 50, record.Reserved)
	assert.Equal(t, 50, record.Available())
}

// TestReserve_Insufficient 可用量不足时整体拒绝,不产生任何变更
func TestReserve_Insufficient(t *testing.T) {
	repo := newFakeRepo()
	repo.seed(1, 10, 100, 80)
	svc := NewService(repo)

	err := svc.Reserve(context.Background(), 1, 10, 30)
	assert.ErrorIs(t, err, ErrInsufficientInventory)

	record, _ := repo.FindByProductAndLocation(context.Background(), 1, 10)
	assert.Equal(t, 80, record.Reserved, "失败的预留不能留下部分变更")
}

// TestReserve_RecordNotFound 记录不存在时硬拒绝
func TestReserve_RecordNotFound(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.Reserve(context.Background(), 99, 10, 1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

// TestReserve_InvalidQuantity 非正数量拒绝
func TestReserve_InvalidQuantity(t *testing.T) {
	repo := newFakeRepo()
	repo.seed(1, 10, 100, 0)
	svc := NewService(repo)

	assert.ErrorIs(t, svc.Reserve(context.Background(), 1, 10, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, svc.Reserve(context.Background(), 1, 10, -5), ErrInvalidQuantity)
}

// TestRelease_Normal 正常释放
func TestRelease_Normal(t *testing.T) {
	repo := newFakeRepo()
	repo.seed(1, 10, 100, 50)
	svc := NewService(repo)

	require.NoError(t, svc.Release(context.Background(), 1, 10, 30))

	record, _ := repo.FindByProductAndLocation(context.Background(), 1, 10)
	assert.Equal(t, 20, record.Reserved)
	assert.Equal(t, 100, record.Quantity, "释放只动预留量,不动总量")
}

// TestRelease_Overflow 超量释放兜底为0
func TestRelease_Overflow(t *testing.T) {
	repo := newFakeRepo()
	repo.seed(1, 10, 100, 20)
	svc := NewService(repo)

	require.NoError(t, svc.Release(context.Background(), 1, 10, 50))

	record, _ := repo.FindByProductAndLocation(context.Background(), 1, 10)
	assert.Equal(t, 0, record.Reserved)
	assert.GreaterOrEqual(t, record.Available(), 0)
}

// TestRelease_MissingRecord 记录不存在视为全额超量释放,容忍
func TestRelease_MissingRecord(t *testing.T) {
	svc := NewService(newFakeRepo())

	assert.NoError(t, svc.Release(context.Background(), 99, 10, 5))
}

// TestMove_Basic 转移:源端扣减,目的端增加,总量守恒
func TestMove_Basic(t *testing.T) {
	repo := newFakeRepo()
	repo.seed(1, 10, 10, 5)
	repo.seed(1, 20, 3, 0)
	svc := NewService(repo)

	before := repo.totalQuantity(1)
	require.NoError(t, svc.Move(context.Background(), 1, 10, 20, 5))

	source, _ := repo.FindByProductAndLocation(context.Background(), 1, 10)
	dest, _ := repo.FindByProductAndLocation(context.Background(), 1, 20)

	assert.Equal(t, 5, source.Quantity)
	assert.Equal(t, 0, source.Reserved)
	assert.Equal(t, 8, dest.Quantity)
	assert.Equal(t, 0, dest.Reserved)
	assert.Equal(t, before, repo.totalQuantity(1), "转移必须保持商品总量守恒")
}

// TestMove_LazyDestination 目的端记录不存在时惰性创建
func TestMove_LazyDestination(t *testing.T) {
	repo := newFakeRepo()
	repo.seed(1, 10, 10, 5)
	svc := NewService(repo)

	require.NoError(t, svc.Move(context.Background(), 1, 10, 30, 5))

	dest, err := repo.FindByProductAndLocation(context.Background(), 1, 30)
	require.NoError(t, err)
	assert.Equal(t, 5, dest.Quantity)
	assert.Equal(t, 0, dest.Reserved)
}

// TestMove_ReservedFloor 源端预留量小于转移量时兜底为0
func TestMove_ReservedFloor(t *testing.T) {
	repo := newFakeRepo()
	repo.seed(1, 10, 10, 2)
	svc := NewService(repo)

	require.NoError(t, svc.Move(context.Background(), 1, 10, 20, 5))

	source, _ := repo.FindByProductAndLocation(context.Background(), 1, 10)
	assert.Equal(t, 5, source.Quantity)
	assert.Equal(t, 0, source.Reserved)
}

// TestCreateRecord 显式创建与查重
func TestCreateRecord(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	record, err := svc.CreateRecord(context.Background(), 1, 10, 100, 20)
	require.NoError(t, err)
	assert.Equal(t, 80, record.Available())

	_, err = svc.CreateRecord(context.Background(), 1, 10, 50, 0)
	assert.ErrorIs(t, err, ErrRecordDuplicate)

	_, err = svc.CreateRecord(context.Background(), 2, 10, 10, 20)
	assert.ErrorIs(t, err, ErrInvalidInitialStock, "预留量不能超过总量")
}
