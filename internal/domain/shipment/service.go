package shipment

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/shiptrack/internal/domain/inventory"
	"github.com/xiebiao/shiptrack/pkg/metrics"
)

// Service 运单领域服务接口
// 设计说明:
// 1. 封装状态机流转及其库存台账副作用
// 2. 所有写操作通过ctx加入调用方事务:状态流转与库存变更
//    要么全部生效要么全部回滚,事务边界由application层用例控制
// 3. 领域服务不发布事件,只返回事件对象;发布必须发生在事务提交之后,
//    由application层负责
type Service interface {
	// CreateShipment 创建运单
	// 业务规则:追踪号全局唯一,起止站点不能相同
	CreateShipment(ctx context.Context, params CreateParams) (*Shipment, error)

	// GetByID 根据ID查询运单(含明细)
	GetByID(ctx context.Context, id uint) (*Shipment, error)

	// GetByTrackingNumber 根据追踪号查询运单
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*Shipment, error)

	// List 分页查询运单
	List(ctx context.Context, params ListParams) ([]*Shipment, int64, error)

	// UpdateInfo 更新运单基本信息(不含状态,状态走ChangeStatus)
	UpdateInfo(ctx context.Context, id uint, carrier, recipientName string, estimatedDelivery *time.Time) (*Shipment, error)

	// ChangeStatus 状态流转(含库存副作用)
	// - pending→dispatched: 每条明细从起运站点转移到目的站点
	// - pending→cancelled: 每条明细在起运站点释放预留
	// - 其余合法流转为纯状态变更
	// 返回的事件由调用方在事务提交后发布
	ChangeStatus(ctx context.Context, id uint, target Status) (*StatusUpdateEvent, error)

	// AddItem 追加明细
	// 业务规则:仅pending状态允许;必须在起运站点预留成功,
	// 预留失败则整体拒绝(不产生明细)
	AddItem(ctx context.Context, shipmentID, productID uint, quantity int, notes string) (*Item, error)

	// UpdateItem 修改明细数量(按差额调整预留)
	UpdateItem(ctx context.Context, shipmentID, itemID uint, quantity int, notes string) (*Item, error)

	// RemoveItem 删除明细(释放其预留)
	RemoveItem(ctx context.Context, shipmentID, itemID uint) error

	// ListItems 查询运单明细
	ListItems(ctx context.Context, shipmentID uint) ([]*Item, error)
}

// CreateParams 创建运单参数
type CreateParams struct {
	TrackingNumber        string
	OriginLocationID      uint
	DestinationLocationID uint
	Carrier               string
	RecipientName         string
	EstimatedDelivery     *time.Time
}

// service 领域服务实现
type service struct {
	repo      Repository
	inventory inventory.Service
}

// NewService 创建运单领域服务
func NewService(repo Repository, inventorySvc inventory.Service) Service {
	return &service{repo: repo, inventory: inventorySvc}
}

// CreateShipment 创建运单
func (s *service) CreateShipment(ctx context.Context, params CreateParams) (*Shipment, error) {
	if params.OriginLocationID == params.DestinationLocationID {
		return nil, ErrSameLocation
	}

	// 追踪号查重(数据库唯一索引兜底并发窗口)
	existing, err := s.repo.FindByTrackingNumber(ctx, params.TrackingNumber)
	if err == nil && existing != nil {
		return nil, ErrTrackingNoDuplicate
	}
	if err != nil && !errors.Is(err, ErrShipmentNotFound) {
		return nil, err
	}

	shipment := NewShipment(
		params.TrackingNumber,
		params.OriginLocationID,
		params.DestinationLocationID,
		params.Carrier,
		params.RecipientName,
		params.EstimatedDelivery,
	)
	if err := s.repo.Create(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// GetByID 根据ID查询运单
func (s *service) GetByID(ctx context.Context, id uint) (*Shipment, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByTrackingNumber 根据追踪号查询运单
func (s *service) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*Shipment, error) {
	return s.repo.FindByTrackingNumber(ctx, trackingNumber)
}

// List 分页查询运单
func (s *service) List(ctx context.Context, params ListParams) ([]*Shipment, int64, error) {
	return s.repo.List(ctx, params)
}

// UpdateInfo 更新运单基本信息
func (s *service) UpdateInfo(ctx context.Context, id uint, carrier, recipientName string, estimatedDelivery *time.Time) (*Shipment, error) {
	shipment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if carrier != "" {
		shipment.Carrier = carrier
	}
	if recipientName != "" {
		shipment.RecipientName = recipientName
	}
	if estimatedDelivery != nil {
		shipment.EstimatedDelivery = estimatedDelivery
	}
	shipment.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// ChangeStatus 状态流转(含库存副作用)
func (s *service) ChangeStatus(ctx context.Context, id uint, target Status) (*StatusUpdateEvent, error) {
	// 1. 行锁查询,并发流转在此串行化(防止重复取消导致双重释放)
	shipment, err := s.repo.LockByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := shipment.Status

	// 2. 流转表校验(涉及未知状态一律拒绝)
	if !shipment.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	// 3. 库存副作用(同一事务,失败则整体回滚)
	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case oldStatus == StatusPending && target == StatusDispatched:
		// 派发:每条明细从起运站点转移到目的站点
		for _, item := range items {
			if err := s.inventory.Move(ctx, item.ProductID, shipment.OriginLocationID, shipment.DestinationLocationID, item.Quantity); err != nil {
				return nil, err
			}
		}
	case oldStatus == StatusPending && target == StatusCancelled:
		// 取消:每条明细在起运站点释放预留
		// 派发之后取消不再释放(库存已转移到目的站点)
		for _, item := range items {
			if err := s.inventory.Release(ctx, item.ProductID, shipment.OriginLocationID, item.Quantity); err != nil {
				return nil, err
			}
		}
	}

	// 4. 状态落库
	if err := shipment.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, shipment); err != nil {
		return nil, err
	}

	metrics.IncCounterVec(metrics.ShipmentStatusChangesTotal, map[string]string{
		"from": string(oldStatus),
		"to":   string(target),
	})

	event := NewStatusUpdateEvent(shipment, oldStatus)
	return &event, nil
}

// AddItem 追加明细
func (s *service) AddItem(ctx context.Context, shipmentID, productID uint, quantity int, notes string) (*Item, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	shipment, err := s.repo.LockByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if !shipment.IsMutable() {
		return nil, ErrShipmentImmutable
	}

	// 起运站点预留,失败则整体拒绝(事务回滚,不留明细)
	if err := s.inventory.Reserve(ctx, productID, shipment.OriginLocationID, quantity); err != nil {
		return nil, err
	}

	item := &Item{
		ShipmentID: shipmentID,
		ProductID:  productID,
		Quantity:   quantity,
		Notes:      notes,
	}
	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem 修改明细数量(按差额调整预留)
func (s *service) UpdateItem(ctx context.Context, shipmentID, itemID uint, quantity int, notes string) (*Item, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	shipment, err := s.repo.LockByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if !shipment.IsMutable() {
		return nil, ErrShipmentImmutable
	}

	item, err := s.repo.FindItem(ctx, shipmentID, itemID)
	if err != nil {
		return nil, err
	}

	// 差额调整:增量走Reserve(可能因可用量不足拒绝),减量走Release
	delta := quantity - item.Quantity
	if delta > 0 {
		if err := s.inventory.Reserve(ctx, item.ProductID, shipment.OriginLocationID, delta); err != nil {
			return nil, err
		}
	} else if delta < 0 {
		if err := s.inventory.Release(ctx, item.ProductID, shipment.OriginLocationID, -delta); err != nil {
			return nil, err
		}
	}

	item.Quantity = quantity
	if notes != "" {
		item.Notes = notes
	}
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem 删除明细(释放其预留)
func (s *service) RemoveItem(ctx context.Context, shipmentID, itemID uint) error {
	shipment, err := s.repo.LockByID(ctx, shipmentID)
	if err != nil {
		return err
	}
	if !shipment.IsMutable() {
		return ErrShipmentImmutable
	}

	item, err := s.repo.FindItem(ctx, shipmentID, itemID)
	if err != nil {
		return err
	}

	if err := s.inventory.Release(ctx, item.ProductID, shipment.OriginLocationID, item.Quantity); err != nil {
		return err
	}

	return s.repo.DeleteItem(ctx, shipmentID, itemID)
}

// ListItems 查询运单明细
func (s *service) ListItems(ctx context.Context, shipmentID uint) ([]*Item, error) {
	return s.repo.ListItems(ctx, shipmentID)
}
