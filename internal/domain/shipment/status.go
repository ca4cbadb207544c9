package shipment

// Status 运单状态
// 设计说明:
// 1. 使用string类型(与存储、API、事件载荷同形,免去来回映射)
// 2. 未知状态值允许存在和展示(历史数据/外部导入),
//    但状态机拒绝任何涉及未知状态的流转
type Status string

const (
	StatusPending    Status = "pending"    // 待派发
	StatusDispatched Status = "dispatched" // 已派发
	StatusInTransit  Status = "in_transit" // 运输中
	StatusDelivered  Status = "delivered"  // 已送达
	StatusCancelled  Status = "cancelled"  // 已取消
)

// transitions 合法的状态流转表
// 终态(delivered/cancelled)没有后续状态
var transitions = map[Status][]Status{
	StatusPending:    {StatusDispatched, StatusCancelled},
	StatusDispatched: {StatusInTransit, StatusCancelled},
	StatusInTransit:  {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// IsKnown 是否为已定义的状态值
func (s Status) IsKnown() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal 是否为终态
func (s Status) IsTerminal() bool {
	targets, ok := transitions[s]
	return ok && len(targets) == 0
}

// CanTransitionTo 检查是否可以流转到目标状态
// 源或目标为未知状态时一律拒绝
func (s Status) CanTransitionTo(target Status) bool {
	allowed, ok := transitions[s]
	if !ok || !target.IsKnown() {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// String 实现Stringer接口
func (s Status) String() string {
	return string(s)
}
