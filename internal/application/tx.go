// Package application 聚合各业务用例的公共抽象
package application

import (
	"context"
)

// TxManager 事务边界抽象
// mysql.TxManager满足该接口;用例测试用fake实现(直接调用fn)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
