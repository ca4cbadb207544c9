package shipment

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateTrackingNumber 生成追踪号
// 格式:ST + 时间戳(秒) + 6位随机数
// 示例:ST1767052800123456
// 调用方可以自带追踪号(对接外部承运商),不带时用这里生成
func GenerateTrackingNumber() string {
	timestamp := time.Now().Unix()
	random := rand.Intn(1000000)
	return fmt.Sprintf("ST%d%06d", timestamp, random)
}
