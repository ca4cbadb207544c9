// Package metrics 提供基于Prometheus的指标收集
//
// 核心概念：
// - **Counter（计数器）**: 只增不减的累计值（请求总数、事件发布总数）
// - **Gauge（仪表盘）**: 可增可减的瞬时值（当前WebSocket连接数、订阅数）
// - **Histogram（直方图）**: 观测值的分布（请求耗时，自动计算P50/P90/P99）
//
// 指标命名规范：
// 1. Counter以`_total`结尾（如 ws_events_published_total）
// 2. Histogram以单位结尾（如 http_request_duration_seconds）
// 3. Gauge使用现在时态（如 ws_connections_active）
//
// 使用方式：
//
//	// 程序启动时注册一次
//	metrics.InitMetrics()
//
//	// 暴露/metrics端点（main.go中通过promhttp.Handler()）
//
//	// 业务代码中记录
//	metrics.IncGauge(metrics.WSConnectionsActive)
//	defer metrics.DecGauge(metrics.WSConnectionsActive)
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册panic）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// WebSocket实时通道指标

	// WSConnectionsActive 当前活跃WebSocket连接数（Gauge）
	WSConnectionsActive prometheus.Gauge

	// WSSubscriptionsActive 当前活跃订阅数（client×topic对的总数，Gauge）
	WSSubscriptionsActive prometheus.Gauge

	// WSEventsPublishedTotal 实时事件发布总数（Counter）
	// 标签：type（location_update/status_update）
	WSEventsPublishedTotal *prometheus.CounterVec

	// WSDeliveryFailuresTotal 投递失败总数（发送失败触发断连，Counter）
	WSDeliveryFailuresTotal prometheus.Counter

	// 库存业务指标

	// InventoryReservationsTotal 预留操作总数（Counter）
	// 标签：result（success/insufficient/not_found）
	InventoryReservationsTotal *prometheus.CounterVec

	// InventoryOverReleaseTotal 超量释放次数（释放量超过已预留量，Counter）
	// 超量释放被容忍（落地为0）但必须可观测
	InventoryOverReleaseTotal prometheus.Counter

	// 运单业务指标

	// ShipmentStatusChangesTotal 运单状态流转总数（Counter）
	// 标签：from、to
	ShipmentStatusChangesTotal *prometheus.CounterVec

	// LocationUpdatesTotal 位置上报总数（Counter）
	LocationUpdatesTotal prometheus.Counter

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange、routing_key
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagePublishFailuresTotal 消息发布失败总数（Counter）
	MessagePublishFailuresTotal prometheus.Counter

	// BreakerState 发布保护器状态（0=CLOSED, 1=OPEN，Gauge）
	// 标签：name
	BreakerState *prometheus.GaugeVec
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，注册所有指标到默认Registry。
// 重复调用是安全的（幂等）。
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// WebSocket指标
	WSConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_connections_active",
			Help: "当前活跃WebSocket连接数",
		},
	)

	WSSubscriptionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_subscriptions_active",
			Help: "当前活跃订阅数（连接×运单）",
		},
	)

	WSEventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ws_events_published_total",
			Help: "实时事件发布总数",
		},
		[]string{"type"},
	)

	WSDeliveryFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ws_delivery_failures_total",
			Help: "实时事件投递失败总数（失败连接会被断开）",
		},
	)

	// 库存指标
	InventoryReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_reservations_total",
			Help: "库存预留操作总数",
		},
		[]string{"result"},
	)

	InventoryOverReleaseTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_over_release_total",
			Help: "超量释放次数（释放量超过已预留量，已兜底为0）",
		},
	)

	// 运单指标
	ShipmentStatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shipment_status_changes_total",
			Help: "运单状态流转总数",
		},
		[]string{"from", "to"},
	)

	LocationUpdatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "location_updates_total",
			Help: "位置上报总数",
		},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)

	MessagePublishFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "message_publish_failures_total",
			Help: "消息发布失败总数",
		},
	)

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "publish_breaker_state",
			Help: "发布保护器状态（0=CLOSED, 1=OPEN）",
		},
		[]string{"name"},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
