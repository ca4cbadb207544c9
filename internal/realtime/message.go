package realtime

import (
	"time"
)

// 实时通道消息协议
//
// 入站(客户端→服务端):
//
//	{"type": "ping"}
//	{"type": "subscribe", "shipment_id": 42}
//	{"type": "unsubscribe", "shipment_id": 42}
//
// 出站(服务端→客户端):
//
//	welcome / subscribed / unsubscribed / error / pong
//	location_update / status_update (领域事件,结构见domain/shipment/events.go)
//
// 未知type或格式错误的JSON只回error消息,连接保持打开

// 入站消息类型
const (
	TypePing        = "ping"
	TypeSubscribe   = "subscribe"
	TypeUnsubscribe = "unsubscribe"
)

// 出站消息类型
const (
	TypeWelcome      = "welcome"
	TypeSubscribed   = "subscribed"
	TypeUnsubscribed = "unsubscribed"
	TypeError        = "error"
	TypePong         = "pong"
)

// ClientMessage 入站消息
type ClientMessage struct {
	Type       string `json:"type"`
	ShipmentID uint   `json:"shipment_id,omitempty"`
}

// ServerMessage 出站控制消息(welcome/subscribed/unsubscribed/error/pong)
// 领域事件不走这个结构,直接序列化事件对象
type ServerMessage struct {
	Type           string    `json:"type"`
	ClientID       string    `json:"client_id,omitempty"`
	ShipmentID     uint      `json:"shipment_id,omitempty"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	Message        string    `json:"message,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

func newServerMessage(msgType string) ServerMessage {
	return ServerMessage{Type: msgType, Timestamp: time.Now()}
}
