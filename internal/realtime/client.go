package realtime

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// Client 一条WebSocket连接
// 设计说明:
// 1. 每个连接有独立的带缓冲发送通道+写goroutine(write pump):
//    广播方只做非阻塞入队,慢客户端永远不会拖住其他订阅者
// 2. 缓冲打满视为投递失败,该连接被断开(只影响它自己)
// 3. conn可以为nil(测试用),此时不启动write pump,
//    测试直接从send通道读取出站消息
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan interface{}
	done chan struct{}
}

// trySend 非阻塞入队
// 返回false表示缓冲已满(慢客户端),调用方应断开该连接
// send通道从不close(避免与并发广播竞争),断连靠done通道通知
func (c *Client) trySend(message interface{}) bool {
	select {
	case <-c.done:
		return true
	default:
	}

	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// writePump 独立写goroutine
// done关闭时发送Close帧并退出
func (c *Client) writePump(writeTimeout time.Duration) {
	defer c.conn.Close()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(message); err != nil {
				log.Printf("WebSocket写入失败: client=%s err=%v", c.ID, err)
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// readPump 读循环(在升级连接的handler goroutine中运行)
// 协议错误只回error消息不断连;读错误(对端关闭)触发Disconnect
func (c *Client) readPump(ctx context.Context) {
	defer c.hub.Disconnect(c)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("消息格式错误")
			continue
		}

		switch msg.Type {
		case TypePing:
			c.trySend(newServerMessage(TypePong))
		case TypeSubscribe:
			c.hub.Subscribe(ctx, c, msg.ShipmentID)
		case TypeUnsubscribe:
			c.hub.Unsubscribe(c, msg.ShipmentID)
		default:
			c.sendError("未知的消息类型: " + msg.Type)
		}
	}
}

// sendError 回送协议错误消息
func (c *Client) sendError(text string) {
	msg := newServerMessage(TypeError)
	msg.Message = text
	c.trySend(msg)
}
