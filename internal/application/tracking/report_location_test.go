package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/shiptrack/internal/domain/shipment"
	"github.com/xiebiao/shiptrack/internal/domain/tracking"
	"github.com/xiebiao/shiptrack/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	m.Run()
}

// fakeShipmentService 只实现用例需要的GetByID,其余方法不会被调用
type fakeShipmentService struct {
	shipment.Service
	shipments map[uint]*shipment.Shipment
}

func (f *fakeShipmentService) GetByID(ctx context.Context, id uint) (*shipment.Shipment, error) {
	s, ok := f.shipments[id]
	if !ok {
		return nil, shipment.ErrShipmentNotFound
	}
	return s, nil
}

// fakeRepo 内存轨迹仓储
type fakeRepo struct {
	updates []*tracking.LocationUpdate
	nextID  uint
	failing bool
}

func (f *fakeRepo) Create(ctx context.Context, u *tracking.LocationUpdate) error {
	if f.failing {
		return assert.AnError
	}
	f.nextID++
	u.ID = f.nextID
	f.updates = append(f.updates, u)
	return nil
}

func (f *fakeRepo) ListByShipment(ctx context.Context, shipmentID uint, limit int) ([]*tracking.LocationUpdate, error) {
	var out []*tracking.LocationUpdate
	for _, u := range f.updates {
		if u.ShipmentID == shipmentID {
			out = append(out, u)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) Latest(ctx context.Context, shipmentID uint) (*tracking.LocationUpdate, error) {
	if len(f.updates) == 0 {
		return nil, nil
	}
	return f.updates[len(f.updates)-1], nil
}

// fakePublisher 记录广播的事件
type fakePublisher struct {
	locationEvents []shipment.LocationUpdateEvent
}

func (f *fakePublisher) PublishStatusUpdate(event shipment.StatusUpdateEvent) {}

func (f *fakePublisher) PublishLocationUpdate(event shipment.LocationUpdateEvent) {
	f.locationEvents = append(f.locationEvents, event)
}

func newReportEnv() (*ReportLocationUseCase, *fakeRepo, *fakePublisher) {
	svc := &fakeShipmentService{shipments: map[uint]*shipment.Shipment{
		1: {ID: 1, TrackingNumber: "ST555", Status: shipment.StatusInTransit},
	}}
	repo := &fakeRepo{}
	publisher := &fakePublisher{}
	return NewReportLocationUseCase(svc, repo, publisher), repo, publisher
}

func TestReportLocation_PersistThenPublish(t *testing.T) {
	uc, repo, publisher := newReportEnv()

	speed := 72.0
	resp, err := uc.Execute(context.Background(), 1, ReportLocationRequest{
		Latitude:   30.67,
		Longitude:  104.06,
		Speed:      &speed,
		ReportedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)

	// 记录已落库
	require.Len(t, repo.updates, 1)
	assert.Equal(t, 30.67, repo.updates[0].Latitude)

	// 事件携带追踪号广播
	require.Len(t, publisher.locationEvents, 1)
	event := publisher.locationEvents[0]
	assert.Equal(t, "ST555", event.TrackingNumber)
	assert.Equal(t, uint(1), event.ShipmentID)
	assert.Equal(t, &speed, event.Speed)
}

func TestReportLocation_UnknownShipment(t *testing.T) {
	uc, repo, publisher := newReportEnv()

	_, err := uc.Execute(context.Background(), 99, ReportLocationRequest{Latitude: 1, Longitude: 1})
	assert.ErrorIs(t, err, shipment.ErrShipmentNotFound)
	assert.Empty(t, repo.updates)
	assert.Empty(t, publisher.locationEvents)
}

func TestReportLocation_InvalidCoordinates(t *testing.T) {
	uc, repo, publisher := newReportEnv()

	_, err := uc.Execute(context.Background(), 1, ReportLocationRequest{Latitude: 91, Longitude: 0})
	assert.ErrorIs(t, err, tracking.ErrInvalidLatitude)

	_, err = uc.Execute(context.Background(), 1, ReportLocationRequest{Latitude: 0, Longitude: -181})
	assert.ErrorIs(t, err, tracking.ErrInvalidLongitude)

	assert.Empty(t, repo.updates)
	assert.Empty(t, publisher.locationEvents)
}

func TestReportLocation_PersistFailureNoPublish(t *testing.T) {
	uc, repo, publisher := newReportEnv()
	repo.failing = true

	_, err := uc.Execute(context.Background(), 1, ReportLocationRequest{Latitude: 1, Longitude: 1})
	assert.Error(t, err)
	assert.Empty(t, publisher.locationEvents)
}

func TestLocationHistory_OrderAndLimit(t *testing.T) {
	svc := &fakeShipmentService{shipments: map[uint]*shipment.Shipment{
		1: {ID: 1, TrackingNumber: "ST556"},
	}}
	repo := &fakeRepo{}
	for i := 0; i < 5; i++ {
		repo.Create(context.Background(), tracking.NewLocationUpdate(1, float64(i), float64(i), nil, nil, time.Now()))
	}
	uc := NewLocationHistoryUseCase(svc, repo)

	points, err := uc.Execute(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Len(t, points, 3)

	_, err = uc.Execute(context.Background(), 99, 0)
	assert.ErrorIs(t, err, shipment.ErrShipmentNotFound)
}
