package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/shiptrack/internal/domain/shipment"
	"github.com/xiebiao/shiptrack/internal/realtime"
	"github.com/xiebiao/shiptrack/pkg/breaker"
	"github.com/xiebiao/shiptrack/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	m.Run()
}

// fakeMQ 记录发布调用,可配置失败
type fakeMQ struct {
	published []string
	err       error
}

func (f *fakeMQ) Publish(routingKey string, message interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, routingKey)
	return nil
}

func newTestEvent() shipment.StatusUpdateEvent {
	return shipment.StatusUpdateEvent{
		Type:       shipment.EventTypeStatusUpdate,
		ShipmentID: 1,
		NewStatus:  shipment.StatusDispatched,
		Timestamp:  time.Now(),
	}
}

func TestPublisher_MQDisabled(t *testing.T) {
	hub := realtime.NewHub(nil, 8)
	p := NewPublisher(hub, nil, nil, "")

	// mq为nil时只做进程内广播,不panic
	p.PublishStatusUpdate(newTestEvent())
	p.PublishLocationUpdate(shipment.LocationUpdateEvent{ShipmentID: 1})
}

func TestPublisher_MQRoutingKeys(t *testing.T) {
	hub := realtime.NewHub(nil, 8)
	mq := &fakeMQ{}
	brk := breaker.New("mq-publish", 3, time.Second)
	p := NewPublisher(hub, mq, brk, "shiptrack.events")

	p.PublishStatusUpdate(newTestEvent())
	p.PublishLocationUpdate(shipment.LocationUpdateEvent{
		Type:       shipment.EventTypeLocationUpdate,
		ShipmentID: 1,
		Latitude:   31.2,
		Longitude:  121.5,
	})

	assert.Equal(t, []string{RoutingKeyStatusUpdate, RoutingKeyLocationUpdate}, mq.published)
}

func TestPublisher_BreakerOpensOnRepeatedFailure(t *testing.T) {
	hub := realtime.NewHub(nil, 8)
	mq := &fakeMQ{err: errors.New("broker down")}
	brk := breaker.New("mq-publish", 3, time.Minute)
	p := NewPublisher(hub, mq, brk, "shiptrack.events")

	for i := 0; i < 3; i++ {
		p.PublishStatusUpdate(newTestEvent())
	}
	assert.Equal(t, breaker.StateOpen, brk.State())

	// OPEN期间broker恢复也不会被调用(快速失败)
	mq.err = nil
	p.PublishStatusUpdate(newTestEvent())
	assert.Empty(t, mq.published)
}
