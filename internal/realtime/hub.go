package realtime

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/xiebiao/shiptrack/internal/domain/shipment"
	"github.com/xiebiao/shiptrack/pkg/metrics"
)

// ShipmentLookup 订阅校验所需的最小查询能力
// domain/shipment.Service天然满足该接口
type ShipmentLookup interface {
	GetByID(ctx context.Context, id uint) (*shipment.Shipment, error)
}

// Hub 实时推送中枢
// 设计说明:
// 1. 双向索引:topics(运单→订阅连接)支撑广播,
//    clientTopics(连接→已订阅运单)支撑断连时的快速清理,
//    两张表必须在同一把锁内同步更新,任何时刻互为镜像
// 2. 订阅前先校验运单存在,校验在锁外做(要查库),
//    失败只回error消息,注册表不动
// 3. 广播采用"锁内快照、锁外投递":持锁期间只复制订阅者列表,
//    真正的入队在锁外进行,数据库/网络慢不会卡住注册表
// 4. 所有写操作幂等:重复订阅、重复退订、重复断连都不报错
type Hub struct {
	mu           sync.Mutex
	clients      map[string]*Client
	topics       map[uint]map[string]*Client
	clientTopics map[string]map[uint]struct{}

	lookup     ShipmentLookup
	sendBuffer int
}

// NewHub 创建实时推送中枢
func NewHub(lookup ShipmentLookup, sendBuffer int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 32
	}
	return &Hub{
		clients:      make(map[string]*Client),
		topics:       make(map[uint]map[string]*Client),
		clientTopics: make(map[string]map[uint]struct{}),
		lookup:       lookup,
		sendBuffer:   sendBuffer,
	}
}

// Register 注册一条新连接并回送welcome消息
// conn为nil时不启动write pump(测试直接读send通道)
func (h *Hub) Register(conn *websocket.Conn) *Client {
	client := &Client{
		ID:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan interface{}, h.sendBuffer),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	h.clients[client.ID] = client
	h.clientTopics[client.ID] = make(map[uint]struct{})
	h.mu.Unlock()

	metrics.IncGauge(metrics.WSConnectionsActive)

	welcome := newServerMessage(TypeWelcome)
	welcome.ClientID = client.ID
	client.trySend(welcome)

	return client
}

// HandleConnection 接管一条升级完成的WebSocket连接
// 阻塞直到对端关闭或读出错,返回前完成全部清理
func (h *Hub) HandleConnection(ctx context.Context, conn *websocket.Conn, readLimit int64, writeTimeout time.Duration) {
	if readLimit > 0 {
		conn.SetReadLimit(readLimit)
	}

	client := h.Register(conn)
	go client.writePump(writeTimeout)
	client.readPump(ctx)
}

// Subscribe 订阅某运单的实时事件
// 运单不存在时回error消息,注册表不变;重复订阅幂等
// 查询故障与运单不存在分开回复,存储抖动不能伪装成404
func (h *Hub) Subscribe(ctx context.Context, c *Client, shipmentID uint) {
	s, err := h.lookup.GetByID(ctx, shipmentID)
	if err != nil {
		if errors.Is(err, shipment.ErrShipmentNotFound) {
			c.sendError("运单不存在")
		} else {
			log.Printf("订阅校验查询失败: client=%s shipment=%d err=%v", c.ID, shipmentID, err)
			c.sendError("查询运单失败,请稍后重试")
		}
		return
	}

	h.mu.Lock()
	subs, registered := h.clientTopics[c.ID]
	if !registered {
		// 连接已被断开,忽略
		h.mu.Unlock()
		return
	}

	if _, already := subs[shipmentID]; !already {
		subs[shipmentID] = struct{}{}
		if h.topics[shipmentID] == nil {
			h.topics[shipmentID] = make(map[string]*Client)
		}
		h.topics[shipmentID][c.ID] = c
		metrics.IncGauge(metrics.WSSubscriptionsActive)
	}
	h.mu.Unlock()

	ack := newServerMessage(TypeSubscribed)
	ack.ShipmentID = shipmentID
	ack.TrackingNumber = s.TrackingNumber
	c.trySend(ack)
}

// Unsubscribe 退订某运单
// 未订阅时同样回ack,幂等
func (h *Hub) Unsubscribe(c *Client, shipmentID uint) {
	h.mu.Lock()
	if subs, ok := h.clientTopics[c.ID]; ok {
		if _, subscribed := subs[shipmentID]; subscribed {
			delete(subs, shipmentID)
			h.removeFromTopic(shipmentID, c.ID)
			metrics.DecGauge(metrics.WSSubscriptionsActive)
		}
	}
	h.mu.Unlock()

	ack := newServerMessage(TypeUnsubscribed)
	ack.ShipmentID = shipmentID
	c.trySend(ack)
}

// Publish 向某运单的全部订阅者广播事件
// 无订阅者时直接返回;投递失败(缓冲满)的连接被断开,不影响其他订阅者
func (h *Hub) Publish(shipmentID uint, eventType string, event interface{}) {
	h.mu.Lock()
	subscribers := make([]*Client, 0, len(h.topics[shipmentID]))
	for _, c := range h.topics[shipmentID] {
		subscribers = append(subscribers, c)
	}
	h.mu.Unlock()

	if len(subscribers) == 0 {
		return
	}

	metrics.IncCounterVec(metrics.WSEventsPublishedTotal, map[string]string{"type": eventType})

	for _, c := range subscribers {
		if !c.trySend(event) {
			metrics.IncCounter(metrics.WSDeliveryFailuresTotal)
			log.Printf("实时推送缓冲已满,断开慢客户端: client=%s shipment=%d", c.ID, shipmentID)
			h.Disconnect(c)
		}
	}
}

// Disconnect 断开连接并清理其全部订阅
// 幂等:已断开的连接再次调用无副作用
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	subs, ok := h.clientTopics[c.ID]
	if !ok {
		h.mu.Unlock()
		return
	}

	for shipmentID := range subs {
		h.removeFromTopic(shipmentID, c.ID)
		metrics.DecGauge(metrics.WSSubscriptionsActive)
	}
	delete(h.clientTopics, c.ID)
	delete(h.clients, c.ID)
	h.mu.Unlock()

	metrics.DecGauge(metrics.WSConnectionsActive)

	close(c.done)
}

// removeFromTopic 从运单索引中摘除连接,空集合顺手清掉
// 调用方必须已持有h.mu
func (h *Hub) removeFromTopic(shipmentID uint, clientID string) {
	if clients, ok := h.topics[shipmentID]; ok {
		delete(clients, clientID)
		if len(clients) == 0 {
			delete(h.topics, shipmentID)
		}
	}
}

// ClientCount 当前连接数(测试和健康检查用)
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// SubscriberCount 某运单的当前订阅数
func (h *Hub) SubscriberCount(shipmentID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[shipmentID])
}
