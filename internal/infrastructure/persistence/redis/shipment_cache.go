package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/shiptrack/internal/domain/shipment"
	apperrors "github.com/xiebiao/shiptrack/pkg/errors"
)

// ShipmentCache 运单缓存(按追踪号)
// 设计说明：
// 1. 公开追踪接口(GET /api/v1/track/:tracking_number)是读热点,
//    用Cache-Aside缓解数据库压力
// 2. Key设计：shiptrack:shipment:tracking:{tracking_number}
// 3. 状态变更/明细变更后由调用方Invalidate,配合短TTL兜底
type ShipmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewShipmentCache 创建运单缓存
func NewShipmentCache(client *redis.Client) *ShipmentCache {
	return &ShipmentCache{
		client: client,
		ttl:    5 * time.Minute,
	}
}

func trackingKey(trackingNumber string) string {
	return Key("shipment", "tracking", trackingNumber)
}

// Get 读取缓存
// 未命中返回(nil, nil),不是错误
func (c *ShipmentCache) Get(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	data, err := c.client.Get(ctx, trackingKey(trackingNumber)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "读取运单缓存失败")
	}

	var s shipment.Shipment
	if err := json.Unmarshal(data, &s); err != nil {
		// 缓存数据损坏:当作未命中,让调用方回源并覆盖
		return nil, nil
	}
	return &s, nil
}

// Set 写入缓存
func (c *ShipmentCache) Set(ctx context.Context, s *shipment.Shipment) error {
	data, err := json.Marshal(s)
	if err != nil {
		return apperrors.Wrap(err, "序列化运单失败")
	}

	if err := c.client.Set(ctx, trackingKey(s.TrackingNumber), data, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入运单缓存失败")
	}
	return nil
}

// Invalidate 失效缓存(状态/明细变更后调用)
func (c *ShipmentCache) Invalidate(ctx context.Context, trackingNumber string) error {
	if err := c.client.Del(ctx, trackingKey(trackingNumber)).Err(); err != nil {
		return apperrors.Wrap(err, "失效运单缓存失败")
	}
	return nil
}
