package inventory

import (
	"context"
	"errors"
	"log"

	"github.com/xiebiao/shiptrack/pkg/metrics"
)

// Service 库存领域服务接口
// 设计说明:
// 1. 封装跨记录的库存台账操作(预留/释放/转移)
// 2. 所有写操作都通过ctx加入调用方的事务(不自己开事务)
//    事务边界由application层的用例控制,保证状态流转+库存变更的原子性
type Service interface {
	// Reserve 预留库存
	// 业务规则:
	// - 记录不存在 → ErrRecordNotFound,不产生任何变更
	// - 可用量不足 → ErrInsufficientInventory,不产生任何变更
	// - 行锁保证并发预留串行化,不会超卖
	Reserve(ctx context.Context, productID, locationID uint, qty int) error

	// Release 释放预留
	// 释放量超过已预留量时兜底为0(容忍但计数告警);
	// 记录不存在视为全额超量释放,同样容忍
	Release(ctx context.Context, productID, locationID uint, qty int) error

	// Move 转移库存(源端出库+目的端入库)
	// 目的端记录不存在时惰性创建(quantity=qty, reserved=0);
	// 源端总量不做下限检查,调用方必须先Reserve覆盖转移量
	Move(ctx context.Context, productID, fromLocationID, toLocationID uint, qty int) error

	// CreateRecord 显式创建库存记录
	CreateRecord(ctx context.Context, productID, locationID uint, quantity, reserved int) (*Record, error)

	// GetRecord 查询单条库存记录
	GetRecord(ctx context.Context, productID, locationID uint) (*Record, error)

	// ListRecords 分页查询库存记录
	ListRecords(ctx context.Context, page, pageSize int) ([]*Record, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建库存领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Reserve 预留库存
func (s *service) Reserve(ctx context.Context, productID, locationID uint, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	// 1. 行锁查询(FOR UPDATE),并发Reserve在此串行化
	record, err := s.repo.LockByProductAndLocation(ctx, productID, locationID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			metrics.IncCounterVec(metrics.InventoryReservationsTotal, map[string]string{"result": "not_found"})
		}
		return err
	}

	// 2. 检查可用量并预留(实体内校验,失败不落库)
	if err := record.Reserve(qty); err != nil {
		metrics.IncCounterVec(metrics.InventoryReservationsTotal, map[string]string{"result": "insufficient"})
		return err
	}

	// 3. 持久化
	if err := s.repo.Update(ctx, record); err != nil {
		return err
	}

	metrics.IncCounterVec(metrics.InventoryReservationsTotal, map[string]string{"result": "success"})
	return nil
}

// Release 释放预留
func (s *service) Release(ctx context.Context, productID, locationID uint, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	record, err := s.repo.LockByProductAndLocation(ctx, productID, locationID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			// 记录不存在等价于预留量为0的全额超量释放:容忍但可观测
			log.Printf("库存释放目标不存在: product=%d location=%d qty=%d", productID, locationID, qty)
			metrics.IncCounter(metrics.InventoryOverReleaseTotal)
			return nil
		}
		return err
	}

	if overflow := record.Release(qty); overflow > 0 {
		log.Printf("超量释放已兜底: product=%d location=%d 超出=%d", productID, locationID, overflow)
		metrics.IncCounter(metrics.InventoryOverReleaseTotal)
	}

	return s.repo.Update(ctx, record)
}

// Move 转移库存
// 同一事务内先锁源端再锁目的端;锁序固定为(源,目的),
// 单一业务流内不存在反向转移,不会死锁
func (s *service) Move(ctx context.Context, productID, fromLocationID, toLocationID uint, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	// 1. 源端出库
	source, err := s.repo.LockByProductAndLocation(ctx, productID, fromLocationID)
	if err != nil {
		return err
	}
	source.ApplyOutbound(qty)
	if err := s.repo.Update(ctx, source); err != nil {
		return err
	}

	// 2. 目的端入库(不存在则惰性创建)
	dest, err := s.repo.LockByProductAndLocation(ctx, productID, toLocationID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return s.repo.Create(ctx, NewRecord(productID, toLocationID, qty, 0))
		}
		return err
	}
	dest.ApplyInbound(qty)
	return s.repo.Update(ctx, dest)
}

// CreateRecord 显式创建库存记录
func (s *service) CreateRecord(ctx context.Context, productID, locationID uint, quantity, reserved int) (*Record, error) {
	if quantity < 0 || reserved < 0 || reserved > quantity {
		return nil, ErrInvalidInitialStock
	}

	// 先查重,数据库唯一索引兜底并发窗口
	existing, err := s.repo.FindByProductAndLocation(ctx, productID, locationID)
	if err == nil && existing != nil {
		return nil, ErrRecordDuplicate
	}
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return nil, err
	}

	record := NewRecord(productID, locationID, quantity, reserved)
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetRecord 查询单条库存记录
func (s *service) GetRecord(ctx context.Context, productID, locationID uint) (*Record, error) {
	return s.repo.FindByProductAndLocation(ctx, productID, locationID)
}

// ListRecords 分页查询库存记录
func (s *service) ListRecords(ctx context.Context, page, pageSize int) ([]*Record, int64, error) {
	return s.repo.List(ctx, page, pageSize)
}
