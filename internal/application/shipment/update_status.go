package shipment

import (
	"context"
	"log"

	"github.com/xiebiao/shiptrack/internal/application"
	"github.com/xiebiao/shiptrack/internal/domain/shipment"
)

// UpdateStatusUseCase 运单状态流转用例
// 这是整个项目最核心的用例:状态落库与库存台账变更必须原子,
// 实时事件必须在事务提交之后才对外发布
type UpdateStatusUseCase struct {
	shipmentSvc shipment.Service
	txManager   application.TxManager
	publisher   shipment.EventPublisher
	cache       Cache
}

// NewUpdateStatusUseCase 创建用例
func NewUpdateStatusUseCase(
	shipmentSvc shipment.Service,
	txManager application.TxManager,
	publisher shipment.EventPublisher,
	cache Cache,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		shipmentSvc: shipmentSvc,
		txManager:   txManager,
		publisher:   publisher,
		cache:       cache,
	}
}

// UpdateStatusRequest 状态流转请求DTO
type UpdateStatusRequest struct {
	Target string
}

// Execute 执行状态流转
//
// 核心约束:
//  1. 状态落库+库存副作用在同一事务:
//     - pending→dispatched: 每条明细从起运站点转移到目的站点
//     - pending→cancelled: 每条明细在起运站点释放预留
//     任一步失败整体回滚,不会出现"状态变了库存没动"
//  2. 事件发布严格在COMMIT之后:
//     提交前发布会把可能回滚的状态广播给订阅者
//  3. 发布是尽力而为:失败不影响已提交的流转结果
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, id uint, req UpdateStatusRequest) (*ShipmentResponse, error) {
	target := shipment.Status(req.Target)

	var event *shipment.StatusUpdateEvent
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		e, err := uc.shipmentSvc.ChangeStatus(txCtx, id, target)
		if err != nil {
			return err
		}
		event = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 事务已提交:发布事件+失效缓存(都是尽力而为)
	if uc.publisher != nil {
		uc.publisher.PublishStatusUpdate(*event)
	}
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, event.TrackingNumber); err != nil {
			log.Printf("失效运单缓存失败: tracking=%s err=%v", event.TrackingNumber, err)
		}
	}

	s, err := uc.shipmentSvc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toShipmentResponse(s), nil
}
