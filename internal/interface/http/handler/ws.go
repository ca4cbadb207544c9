package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/xiebiao/shiptrack/internal/infrastructure/config"
	"github.com/xiebiao/shiptrack/internal/realtime"
)

// WSHandler WebSocket接入处理器
// 只负责HTTP升级,协议处理全部在realtime.Hub
type WSHandler struct {
	hub      *realtime.Hub
	cfg      config.WebSocketConfig
	upgrader websocket.Upgrader
}

// NewWSHandler 创建WebSocket处理器
func NewWSHandler(hub *realtime.Hub, cfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub: hub,
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 追踪通道对外公开(与公开追踪接口同级),不校验Origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve 升级连接并接管
// @Summary      实时追踪WebSocket
// @Description  连接后发送{"type":"subscribe","shipment_id":N}订阅运单事件
// @Tags         追踪模块
// @Router       /ws/tracking [get]
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket升级失败: %v", err)
		return
	}

	h.hub.HandleConnection(c.Request.Context(), conn, h.cfg.ReadLimit, h.cfg.WriteTimeout)
}
