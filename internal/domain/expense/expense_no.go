package expense

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateExpenseNumber 生成费用单号
// 格式:EXP + 时间戳(秒) + 6位随机数
// 示例:EXP1767052800123456
// 数据库唯一索引兜底同秒冲突
func GenerateExpenseNumber() string {
	timestamp := time.Now().Unix()
	random := rand.Intn(1000000)
	return fmt.Sprintf("EXP%d%06d", timestamp, random)
}
