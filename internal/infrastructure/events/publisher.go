package events

import (
	"log"

	"github.com/xiebiao/shiptrack/internal/domain/shipment"
	"github.com/xiebiao/shiptrack/internal/realtime"
	"github.com/xiebiao/shiptrack/pkg/breaker"
	"github.com/xiebiao/shiptrack/pkg/metrics"
)

// MQ发布路由键
const (
	RoutingKeyStatusUpdate   = "shipment.status_update"
	RoutingKeyLocationUpdate = "shipment.location_update"
)

// MQPublisher 对外消息发布的最小接口(pkg/mq.Publisher满足)
type MQPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// Publisher 组合事件发布器
// 设计说明:
// 1. 实现domain/shipment.EventPublisher,组合两条通道:
//    进程内WebSocket广播(必有) + RabbitMQ对外发布(可选)
// 2. 两条通道都是尽力而为:业务事务已提交,发布失败只记日志和计数,
//    绝不向调用方返回错误
// 3. MQ路径由保护器守护:broker持续不可用时快速失败,
//    不让每次状态变更都等一次连接超时
type Publisher struct {
	hub      *realtime.Hub
	mq       MQPublisher
	brk      *breaker.Breaker
	exchange string
}

// NewPublisher 创建组合事件发布器
// mq为nil表示未启用对外发布,只做进程内广播
func NewPublisher(hub *realtime.Hub, mq MQPublisher, brk *breaker.Breaker, exchange string) *Publisher {
	return &Publisher{hub: hub, mq: mq, brk: brk, exchange: exchange}
}

// PublishStatusUpdate 发布状态变更事件
func (p *Publisher) PublishStatusUpdate(event shipment.StatusUpdateEvent) {
	p.hub.Publish(event.ShipmentID, shipment.EventTypeStatusUpdate, event)
	p.publishMQ(RoutingKeyStatusUpdate, event)
}

// PublishLocationUpdate 发布位置上报事件
func (p *Publisher) PublishLocationUpdate(event shipment.LocationUpdateEvent) {
	p.hub.Publish(event.ShipmentID, shipment.EventTypeLocationUpdate, event)
	p.publishMQ(RoutingKeyLocationUpdate, event)
}

// publishMQ 对外发布(尽力而为)
func (p *Publisher) publishMQ(routingKey string, event interface{}) {
	if p.mq == nil {
		return
	}

	err := p.brk.Execute(func() error {
		return p.mq.Publish(routingKey, event)
	})
	if err != nil {
		metrics.IncCounter(metrics.MessagePublishFailuresTotal)
		log.Printf("MQ事件发布失败: routing_key=%s err=%v", routingKey, err)
		return
	}

	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"exchange":    p.exchange,
		"routing_key": routingKey,
	})
}
