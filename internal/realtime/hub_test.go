package realtime

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/shiptrack/internal/domain/shipment"
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
	"github.com/xiebiao/shiptrack/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	m.Run()
}

// fakeLookup 只认识固定的几个运单ID
// failWith非nil时模拟存储故障,所有查询返回该错误
type fakeLookup struct {
	shipments map[uint]*shipment.Shipment
	failWith  error
}

func newFakeLookup(ids ...uint) *fakeLookup {
	f := &fakeLookup{shipments: make(map[uint]*shipment.Shipment)}
	for _, id := range ids {
		f.shipments[id] = &shipment.Shipment{
			ID:             id,
			TrackingNumber: "ST-TEST",
			Status:         shipment.StatusPending,
		}
	}
	return f
}

func (f *fakeLookup) GetByID(ctx context.Context, id uint) (*shipment.Shipment, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	s, ok := f.shipments[id]
	if !ok {
		return nil, shipment.ErrShipmentNotFound
	}
	return s, nil
}

// drain 读空客户端的发送通道,返回读到的消息
func drain(c *Client) []interface{} {
	var out []interface{}
	for {
		select {
		case msg := <-c.send:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestHub_RegisterSendsWelcome(t *testing.T) {
	hub := NewHub(newFakeLookup(), 8)
	client := hub.Register(nil)

	assert.NotEmpty(t, client.ID)
	assert.Equal(t, 1, hub.ClientCount())

	msgs := drain(client)
	require.Len(t, msgs, 1)
	welcome := msgs[0].(ServerMessage)
	assert.Equal(t, TypeWelcome, welcome.Type)
	assert.Equal(t, client.ID, welcome.ClientID)
}

func TestHub_SubscribeAndPublish(t *testing.T) {
	hub := NewHub(newFakeLookup(42), 8)
	client := hub.Register(nil)
	drain(client)

	hub.Subscribe(context.Background(), client, 42)
	assert.Equal(t, 1, hub.SubscriberCount(42))

	msgs := drain(client)
	require.Len(t, msgs, 1)
	ack := msgs[0].(ServerMessage)
	assert.Equal(t, TypeSubscribed, ack.Type)
	assert.Equal(t, uint(42), ack.ShipmentID)
	assert.Equal(t, "ST-TEST", ack.TrackingNumber)

	event := &shipment.StatusUpdateEvent{
		Type:       shipment.EventTypeStatusUpdate,
		ShipmentID: 42,
		NewStatus:  shipment.StatusDispatched,
	}
	hub.Publish(42, shipment.EventTypeStatusUpdate, event)

	msgs = drain(client)
	require.Len(t, msgs, 1)
	assert.Equal(t, event, msgs[0])
}

func TestHub_SubscribeMissingShipment(t *testing.T) {
	hub := NewHub(newFakeLookup(), 8)
	client := hub.Register(nil)
	drain(client)

	hub.Subscribe(context.Background(), client, 99)

	// 注册表不变,只收到error消息
	assert.Equal(t, 0, hub.SubscriberCount(99))
	msgs := drain(client)
	require.Len(t, msgs, 1)
	assert.Equal(t, TypeError, msgs[0].(ServerMessage).Type)
}

func TestHub_SubscribeLookupFailure(t *testing.T) {
	lookup := newFakeLookup(42)
	lookup.failWith = apperrors.Wrap(errors.New("connection refused"), "查询运单失败")
	hub := NewHub(lookup, 8)
	client := hub.Register(nil)
	drain(client)

	hub.Subscribe(context.Background(), client, 42)

	// 存储故障同样不改注册表,但错误提示必须与"运单不存在"区分
	assert.Equal(t, 0, hub.SubscriberCount(42))
	msgs := drain(client)
	require.Len(t, msgs, 1)
	em := msgs[0].(ServerMessage)
	assert.Equal(t, TypeError, em.Type)
	assert.Equal(t, "查询运单失败,请稍后重试", em.Message)
	assert.NotEqual(t, "运单不存在", em.Message)
}

func TestHub_SubscribeIdempotent(t *testing.T) {
	hub := NewHub(newFakeLookup(42), 8)
	client := hub.Register(nil)
	drain(client)

	hub.Subscribe(context.Background(), client, 42)
	hub.Subscribe(context.Background(), client, 42)

	assert.Equal(t, 1, hub.SubscriberCount(42))

	// 广播只投递一次
	hub.Publish(42, shipment.EventTypeStatusUpdate, "event")
	events := 0
	for _, msg := range drain(client) {
		if msg == "event" {
			events++
		}
	}
	assert.Equal(t, 1, events)
}

func TestHub_UnsubscribeIdempotent(t *testing.T) {
	hub := NewHub(newFakeLookup(42), 8)
	client := hub.Register(nil)
	drain(client)

	hub.Subscribe(context.Background(), client, 42)
	hub.Unsubscribe(client, 42)
	assert.Equal(t, 0, hub.SubscriberCount(42))

	// 重复退订不报错,仍回ack
	hub.Unsubscribe(client, 42)

	msgs := drain(client)
	acks := 0
	for _, msg := range msgs {
		if sm, ok := msg.(ServerMessage); ok && sm.Type == TypeUnsubscribed {
			acks++
		}
	}
	assert.Equal(t, 2, acks)

	hub.Publish(42, shipment.EventTypeStatusUpdate, "event")
	assert.Empty(t, drain(client))
}

func TestHub_PublishNoSubscribers(t *testing.T) {
	hub := NewHub(newFakeLookup(42), 8)
	client := hub.Register(nil)
	drain(client)

	// 未订阅的连接收不到广播,空topic广播也不panic
	hub.Publish(42, shipment.EventTypeStatusUpdate, "event")
	assert.Empty(t, drain(client))
}

func TestHub_PublishOnlyToSubscribers(t *testing.T) {
	hub := NewHub(newFakeLookup(1, 2), 8)
	a := hub.Register(nil)
	b := hub.Register(nil)
	drain(a)
	drain(b)

	hub.Subscribe(context.Background(), a, 1)
	hub.Subscribe(context.Background(), b, 2)
	drain(a)
	drain(b)

	hub.Publish(1, shipment.EventTypeLocationUpdate, "for-a")

	msgsA := drain(a)
	require.Len(t, msgsA, 1)
	assert.Equal(t, "for-a", msgsA[0])
	assert.Empty(t, drain(b))
}

func TestHub_DisconnectCleansAllTopics(t *testing.T) {
	hub := NewHub(newFakeLookup(1, 2, 3), 8)
	client := hub.Register(nil)
	drain(client)

	hub.Subscribe(context.Background(), client, 1)
	hub.Subscribe(context.Background(), client, 2)
	hub.Subscribe(context.Background(), client, 3)

	hub.Disconnect(client)

	assert.Equal(t, 0, hub.ClientCount())
	assert.Equal(t, 0, hub.SubscriberCount(1))
	assert.Equal(t, 0, hub.SubscriberCount(2))
	assert.Equal(t, 0, hub.SubscriberCount(3))

	// 幂等:重复断开无副作用
	hub.Disconnect(client)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_SlowClientDisconnected(t *testing.T) {
	// 缓冲只有1,第二条事件塞不进去,慢客户端被断开
	hub := NewHub(newFakeLookup(42), 1)
	slow := hub.Register(nil)
	fast := hub.Register(nil)
	drain(slow)
	drain(fast)

	hub.Subscribe(context.Background(), slow, 42)
	hub.Subscribe(context.Background(), fast, 42)
	drain(fast)
	// slow的订阅ack占掉唯一的缓冲位,不读

	hub.Publish(42, shipment.EventTypeLocationUpdate, "event-1")

	assert.Equal(t, 1, hub.ClientCount())
	assert.Equal(t, 1, hub.SubscriberCount(42))

	// 快客户端不受影响,继续收事件
	hub.Publish(42, shipment.EventTypeLocationUpdate, "event-2")
	msgs := drain(fast)
	assert.Contains(t, msgs, "event-1")
	assert.Contains(t, msgs, "event-2")
}

func TestHub_SubscribeAfterDisconnectIgnored(t *testing.T) {
	hub := NewHub(newFakeLookup(42), 8)
	client := hub.Register(nil)
	hub.Disconnect(client)

	hub.Subscribe(context.Background(), client, 42)
	assert.Equal(t, 0, hub.SubscriberCount(42))
}
