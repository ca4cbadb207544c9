package shipment

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/shiptrack/internal/domain/inventory"
	"github.com/xiebiao/shiptrack/internal/domain/shipment"
	"github.com/xiebiao/shiptrack/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	m.Run()
}

// fakeTxManager 直接执行fn(用例测试不需要真事务)
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// fakePublisher 记录发布的事件
type fakePublisher struct {
	statusEvents   []shipment.StatusUpdateEvent
	locationEvents []shipment.LocationUpdateEvent
}

func (f *fakePublisher) PublishStatusUpdate(event shipment.StatusUpdateEvent) {
	f.statusEvents = append(f.statusEvents, event)
}

func (f *fakePublisher) PublishLocationUpdate(event shipment.LocationUpdateEvent) {
	f.locationEvents = append(f.locationEvents, event)
}

// fakeCache 记录失效的追踪号
type fakeCache struct {
	store       map[string]*shipment.Shipment
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]*shipment.Shipment)}
}

func (f *fakeCache) Get(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	return f.store[trackingNumber], nil
}

func (f *fakeCache) Set(ctx context.Context, s *shipment.Shipment) error {
	f.store[s.TrackingNumber] = s
	return nil
}

func (f *fakeCache) Invalidate(ctx context.Context, trackingNumber string) error {
	delete(f.store, trackingNumber)
	f.invalidated = append(f.invalidated, trackingNumber)
	return nil
}

// fakeShipmentRepo 内存运单仓储
type fakeShipmentRepo struct {
	shipments  map[uint]*shipment.Shipment
	items      map[uint]*shipment.Item
	nextID     uint
	nextItemID uint
}

func newFakeShipmentRepo() *fakeShipmentRepo {
	return &fakeShipmentRepo{
		shipments: make(map[uint]*shipment.Shipment),
		items:     make(map[uint]*shipment.Item),
	}
}

func (f *fakeShipmentRepo) Create(ctx context.Context, s *shipment.Shipment) error {
	f.nextID++
	s.ID = f.nextID
	copied := *s
	f.shipments[s.ID] = &copied
	return nil
}

func (f *fakeShipmentRepo) FindByID(ctx context.Context, id uint) (*shipment.Shipment, error) {
	s, ok := f.shipments[id]
	if !ok {
		return nil, shipment.ErrShipmentNotFound
	}
	copied := *s
	items, _ := f.ListItems(ctx, id)
	copied.Items = make([]shipment.Item, len(items))
	for i, item := range items {
		copied.Items[i] = *item
	}
	return &copied, nil
}

func (f *fakeShipmentRepo) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	for id, s := range f.shipments {
		if s.TrackingNumber == trackingNumber {
			return f.FindByID(ctx, id)
		}
	}
	return nil, shipment.ErrShipmentNotFound
}

func (f *fakeShipmentRepo) LockByID(ctx context.Context, id uint) (*shipment.Shipment, error) {
	s, ok := f.shipments[id]
	if !ok {
		return nil, shipment.ErrShipmentNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeShipmentRepo) Update(ctx context.Context, s *shipment.Shipment) error {
	copied := *s
	copied.Items = nil
	f.shipments[s.ID] = &copied
	return nil
}

func (f *fakeShipmentRepo) List(ctx context.Context, params shipment.ListParams) ([]*shipment.Shipment, int64, error) {
	var out []*shipment.Shipment
	for id, s := range f.shipments {
		if params.Status != "" && s.Status != params.Status {
			continue
		}
		copied, _ := f.FindByID(ctx, id)
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeShipmentRepo) AddItem(ctx context.Context, item *shipment.Item) error {
	f.nextItemID++
	item.ID = f.nextItemID
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeShipmentRepo) FindItem(ctx context.Context, shipmentID, itemID uint) (*shipment.Item, error) {
	item, ok := f.items[itemID]
	if !ok || item.ShipmentID != shipmentID {
		return nil, shipment.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeShipmentRepo) UpdateItem(ctx context.Context, item *shipment.Item) error {
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeShipmentRepo) DeleteItem(ctx context.Context, shipmentID, itemID uint) error {
	delete(f.items, itemID)
	return nil
}

func (f *fakeShipmentRepo) ListItems(ctx context.Context, shipmentID uint) ([]*shipment.Item, error) {
	var out []*shipment.Item
	for _, item := range f.items {
		if item.ShipmentID == shipmentID {
			copied := *item
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeInventoryRepo 内存库存仓储
type fakeInventoryRepo struct {
	records map[[2]uint]*inventory.Record
	nextID  uint
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{records: make(map[[2]uint]*inventory.Record)}
}

func (f *fakeInventoryRepo) key(productID, locationID uint) [2]uint {
	return [2]uint{productID, locationID}
}

func (f *fakeInventoryRepo) Create(ctx context.Context, r *inventory.Record) error {
	f.nextID++
	r.ID = f.nextID
	copied := *r
	f.records[f.key(r.ProductID, r.LocationID)] = &copied
	return nil
}

func (f *fakeInventoryRepo) FindByProductAndLocation(ctx context.Context, productID, locationID uint) (*inventory.Record, error) {
	r, ok := f.records[f.key(productID, locationID)]
	if !ok {
		return nil, inventory.ErrRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeInventoryRepo) LockByProductAndLocation(ctx context.Context, productID, locationID uint) (*inventory.Record, error) {
	return f.FindByProductAndLocation(ctx, productID, locationID)
}

func (f *fakeInventoryRepo) Update(ctx context.Context, r *inventory.Record) error {
	copied := *r
	f.records[f.key(r.ProductID, r.LocationID)] = &copied
	return nil
}

func (f *fakeInventoryRepo) ListByProduct(ctx context.Context, productID uint) ([]*inventory.Record, error) {
	var out []*inventory.Record
	for _, r := range f.records {
		if r.ProductID == productID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) List(ctx context.Context, page, pageSize int) ([]*inventory.Record, int64, error) {
	var out []*inventory.Record
	for _, r := range f.records {
		copied := *r
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

// testEnv 把领域服务和用例组装起来的测试环境
type testEnv struct {
	shipmentRepo  *fakeShipmentRepo
	inventoryRepo *fakeInventoryRepo
	tx            *fakeTxManager
	publisher     *fakePublisher
	cache         *fakeCache

	createUC *CreateShipmentUseCase
	itemsUC  *ManageItemsUseCase
	statusUC *UpdateStatusUseCase
}

func newTestEnv() *testEnv {
	shipmentRepo := newFakeShipmentRepo()
	inventoryRepo := newFakeInventoryRepo()
	inventorySvc := inventory.NewService(inventoryRepo)
	shipmentSvc := shipment.NewService(shipmentRepo, inventorySvc)
	tx := &fakeTxManager{}
	publisher := &fakePublisher{}
	cache := newFakeCache()

	return &testEnv{
		shipmentRepo:  shipmentRepo,
		inventoryRepo: inventoryRepo,
		tx:            tx,
		publisher:     publisher,
		cache:         cache,
		createUC:      NewCreateShipmentUseCase(shipmentSvc, tx),
		itemsUC:       NewManageItemsUseCase(shipmentSvc, tx, cache),
		statusUC:      NewUpdateStatusUseCase(shipmentSvc, tx, publisher, cache),
	}
}

func (env *testEnv) seedStock(productID, locationID uint, quantity int) {
	env.inventoryRepo.Create(context.Background(), inventory.NewRecord(productID, locationID, quantity, 0))
}

func TestUpdateStatus_DispatchFlow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.seedStock(7, 1, 10)

	// 建单+加明细(明细在起运站点预留5件)
	created, err := env.createUC.Execute(ctx, CreateShipmentRequest{
		TrackingNumber:        "ST100",
		OriginLocationID:      1,
		DestinationLocationID: 2,
		Carrier:               "顺丰",
		RecipientName:         "张三",
	})
	require.NoError(t, err)

	_, err = env.itemsUC.AddItem(ctx, created.ID, AddItemRequest{ProductID: 7, Quantity: 5})
	require.NoError(t, err)

	source, _ := env.inventoryRepo.FindByProductAndLocation(ctx, 7, 1)
	assert.Equal(t, 10, source.Quantity)
	assert.Equal(t, 5, source.Reserved)

	// 派发:状态流转+库存转移+事件发布
	resp, err := env.statusUC.Execute(ctx, created.ID, UpdateStatusRequest{Target: "dispatched"})
	require.NoError(t, err)
	assert.Equal(t, "dispatched", resp.Status)

	// 起运站点出库5,预留清零;目的站点惰性创建并入库5
	source, _ = env.inventoryRepo.FindByProductAndLocation(ctx, 7, 1)
	assert.Equal(t, 5, source.Quantity)
	assert.Equal(t, 0, source.Reserved)
	dest, _ := env.inventoryRepo.FindByProductAndLocation(ctx, 7, 2)
	assert.Equal(t, 5, dest.Quantity)
	assert.Equal(t, 0, dest.Reserved)

	// 恰好发布一个状态事件,且携带新旧状态
	require.Len(t, env.publisher.statusEvents, 1)
	event := env.publisher.statusEvents[0]
	assert.Equal(t, "ST100", event.TrackingNumber)
	assert.Equal(t, shipment.StatusPending, event.OldStatus)
	assert.Equal(t, shipment.StatusDispatched, event.NewStatus)

	// 公开追踪缓存被失效
	assert.Contains(t, env.cache.invalidated, "ST100")
}

func TestUpdateStatus_CancelReleasesReservation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.seedStock(7, 1, 10)

	created, err := env.createUC.Execute(ctx, CreateShipmentRequest{
		TrackingNumber:        "ST200",
		OriginLocationID:      1,
		DestinationLocationID: 2,
	})
	require.NoError(t, err)
	_, err = env.itemsUC.AddItem(ctx, created.ID, AddItemRequest{ProductID: 7, Quantity: 4})
	require.NoError(t, err)

	resp, err := env.statusUC.Execute(ctx, created.ID, UpdateStatusRequest{Target: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)

	// 预留被释放,总量不变
	source, _ := env.inventoryRepo.FindByProductAndLocation(ctx, 7, 1)
	assert.Equal(t, 10, source.Quantity)
	assert.Equal(t, 0, source.Reserved)

	// 重复取消被流转表拒绝,不会二次释放
	_, err = env.statusUC.Execute(ctx, created.ID, UpdateStatusRequest{Target: "cancelled"})
	assert.ErrorIs(t, err, shipment.ErrInvalidTransition)
	require.Len(t, env.publisher.statusEvents, 1)
}

func TestUpdateStatus_InvalidTransitionPublishesNothing(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	created, err := env.createUC.Execute(ctx, CreateShipmentRequest{
		TrackingNumber:        "ST300",
		OriginLocationID:      1,
		DestinationLocationID: 2,
	})
	require.NoError(t, err)

	// pending不能直达delivered
	_, err = env.statusUC.Execute(ctx, created.ID, UpdateStatusRequest{Target: "delivered"})
	assert.ErrorIs(t, err, shipment.ErrInvalidTransition)
	assert.Empty(t, env.publisher.statusEvents)
	assert.Empty(t, env.cache.invalidated)
}

func TestAddItem_InsufficientStockRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.seedStock(7, 1, 3)

	created, err := env.createUC.Execute(ctx, CreateShipmentRequest{
		TrackingNumber:        "ST400",
		OriginLocationID:      1,
		DestinationLocationID: 2,
	})
	require.NoError(t, err)

	_, err = env.itemsUC.AddItem(ctx, created.ID, AddItemRequest{ProductID: 7, Quantity: 5})
	assert.ErrorIs(t, err, inventory.ErrInsufficientInventory)

	// 明细不产生
	items, err := env.itemsUC.ListItems(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateShipment_GeneratesTrackingNumber(t *testing.T) {
	env := newTestEnv()

	resp, err := env.createUC.Execute(context.Background(), CreateShipmentRequest{
		OriginLocationID:      1,
		DestinationLocationID: 2,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.TrackingNumber)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 1, env.tx.calls)
}
