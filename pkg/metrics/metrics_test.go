package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestInitMetrics 测试指标初始化（幂等）
func TestInitMetrics(t *testing.T) {
	InitMetrics()
	// 重复调用不能panic（promauto重复注册会panic，靠initialized标记保护）
	InitMetrics()

	if HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal未初始化")
	}
	if WSConnectionsActive == nil {
		t.Error("WSConnectionsActive未初始化")
	}
	if InventoryOverReleaseTotal == nil {
		t.Error("InventoryOverReleaseTotal未初始化")
	}
	if WSDeliveryFailuresTotal == nil {
		t.Error("WSDeliveryFailuresTotal未初始化")
	}
}

// TestCounter 测试Counter指标
func TestCounter(t *testing.T) {
	InitMetrics()

	before := getCounterValue(t, InventoryOverReleaseTotal)

	IncCounter(InventoryOverReleaseTotal)
	IncCounter(InventoryOverReleaseTotal)

	after := getCounterValue(t, InventoryOverReleaseTotal)
	if after-before != 2 {
		t.Errorf("Counter值错误: expected=+2, got=+%f", after-before)
	}
}

// TestCounterVec 测试CounterVec指标
func TestCounterVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"from": "pending", "to": "dispatched"}
	before := getCounterVecValue(t, ShipmentStatusChangesTotal, labels)

	IncCounterVec(ShipmentStatusChangesTotal, labels)
	IncCounterVec(ShipmentStatusChangesTotal, map[string]string{"from": "pending", "to": "cancelled"})
	IncCounterVec(ShipmentStatusChangesTotal, labels)

	after := getCounterVecValue(t, ShipmentStatusChangesTotal, labels)
	if after-before != 2 {
		t.Errorf("CounterVec值错误: expected=+2, got=+%f", after-before)
	}
}

// TestGauge 测试Gauge指标（连接数增减）
func TestGauge(t *testing.T) {
	InitMetrics()

	SetGauge(WSConnectionsActive, 0)

	IncGauge(WSConnectionsActive)
	IncGauge(WSConnectionsActive)
	if v := getGaugeValue(t, WSConnectionsActive); v != 2 {
		t.Errorf("Gauge递增后值错误: expected=2, got=%f", v)
	}

	DecGauge(WSConnectionsActive)
	if v := getGaugeValue(t, WSConnectionsActive); v != 1 {
		t.Errorf("Gauge递减后值错误: expected=1, got=%f", v)
	}
}

// TestHistogramVec 测试HistogramVec指标
func TestHistogramVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"method": "POST", "path": "/api/v1/shipments"}
	before := getHistogramVecCount(t, HTTPRequestDuration, labels)

	ObserveHistogramVec(HTTPRequestDuration, labels, 0.05)
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.2)

	after := getHistogramVecCount(t, HTTPRequestDuration, labels)
	if after-before != 2 {
		t.Errorf("HistogramVec观测次数错误: expected=+2, got=+%d", after-before)
	}
}

// 辅助函数：获取Counter值
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取CounterVec值
func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	var metric dto.Metric
	counter := counterVec.With(labels)
	if err := counter.(prometheus.Counter).Write(&metric); err != nil {
		t.Fatalf("读取CounterVec值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

// 辅助函数：获取Gauge值
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

// 辅助函数：获取HistogramVec观测次数
func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	var metric dto.Metric
	histogram := histogramVec.With(labels)
	if err := histogram.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("读取HistogramVec值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}
