//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 使用方式：
// Step 1: 修改本文件中的Providers
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: 用InitializeApp()替换main.go中的手动组装
//
// 核心概念：
// - Provider: 提供依赖的构造函数（如NewShipmentRepository）
// - Injector: 声明最终要构造的目标类型（*gin.Engine）
// - wire.Build(): 告诉Wire如何组装依赖链

package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"github.com/xiebiao/shiptrack/internal/application"
	appcatalog "github.com/xiebiao/shiptrack/internal/application/catalog"
	appexpense "github.com/xiebiao/shiptrack/internal/application/expense"
	appinventory "github.com/xiebiao/shiptrack/internal/application/inventory"
	appshipment "github.com/xiebiao/shiptrack/internal/application/shipment"
	apptracking "github.com/xiebiao/shiptrack/internal/application/tracking"
	"github.com/xiebiao/shiptrack/internal/domain/inventory"
	"github.com/xiebiao/shiptrack/internal/domain/shipment"
	"github.com/xiebiao/shiptrack/internal/infrastructure/config"
	"github.com/xiebiao/shiptrack/internal/infrastructure/events"
	"github.com/xiebiao/shiptrack/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/shiptrack/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/shiptrack/internal/interface/http/handler"
	"github.com/xiebiao/shiptrack/internal/interface/http/middleware"
	"github.com/xiebiao/shiptrack/internal/realtime"
	"github.com/xiebiao/shiptrack/pkg/breaker"
	"github.com/xiebiao/shiptrack/pkg/metrics"
	"github.com/xiebiao/shiptrack/pkg/mq"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
// 包含：配置加载、数据库连接、Redis连接
var infrastructureSet = wire.NewSet(
	config.Load,     // 加载配置文件
	mysql.NewDB,     // 创建MySQL连接
	redis.NewClient, // 创建Redis连接
)

// repositorySet 仓储层依赖
// 包含：所有Repository的构造函数和事务管理器
// 教学要点：用例依赖的是application.TxManager接口，
// mysql.NewTxManager返回具体类型，需要wire.Bind做接口绑定
var repositorySet = wire.NewSet(
	mysql.NewShipmentRepository,       // 运单仓储
	mysql.NewInventoryRepository,      // 库存仓储
	mysql.NewLocationUpdateRepository, // 轨迹仓储
	mysql.NewProductRepository,        // 商品仓储
	mysql.NewLocationRepository,       // 站点仓储
	mysql.NewExpenseRepository,        // 费用仓储
	mysql.NewTxManager,                // 事务管理器
	wire.Bind(new(application.TxManager), new(*mysql.TxManager)),

	redis.NewShipmentCache, // 公开追踪缓存
	wire.Bind(new(appshipment.Cache), new(*redis.ShipmentCache)),
)

// domainSet 领域层依赖
// 包含：所有领域服务的构造函数
var domainSet = wire.NewSet(
	inventory.NewService, // 库存领域服务
	shipment.NewService,  // 运单领域服务
)

// applicationSet 应用层依赖
// 包含：所有Use Case的构造函数
var applicationSet = wire.NewSet(
	appshipment.NewCreateShipmentUseCase,   // 创建运单用例
	appshipment.NewGetShipmentUseCase,      // 运单详情用例
	appshipment.NewListShipmentsUseCase,    // 运单列表用例
	appshipment.NewUpdateShipmentUseCase,   // 更新运单用例
	appshipment.NewUpdateStatusUseCase,     // 状态流转用例
	appshipment.NewManageItemsUseCase,      // 明细管理用例
	appshipment.NewTrackShipmentUseCase,    // 公开追踪用例
	apptracking.NewReportLocationUseCase,   // 位置上报用例
	apptracking.NewLocationHistoryUseCase,  // 轨迹查询用例
	appinventory.NewManageRecordsUseCase,   // 库存记录用例
	appcatalog.NewManageProductsUseCase,    // 商品管理用例
	appcatalog.NewManageLocationsUseCase,   // 站点管理用例
	appexpense.NewCreateExpenseUseCase,     // 创建费用用例
	appexpense.NewQueryExpensesUseCase,     // 费用查询用例
	appexpense.NewReviewExpenseUseCase,     // 费用审批用例
	appexpense.NewManageBudgetsUseCase,     // 预算管理用例
	appexpense.NewManageReferenceUseCase,   // 类目与供应商用例
)

// realtimeSet 实时推送依赖
// 包含：Hub、组合事件发布器（需要从config提取参数）
// 教学要点：用例依赖的是domain层的shipment.EventPublisher接口，
// 组合发布器是具体类型，同样需要wire.Bind
var realtimeSet = wire.NewSet(
	provideHub,
	provideEventPublisher,
	wire.Bind(new(shipment.EventPublisher), new(*events.Publisher)),
)

// handlerSet HTTP处理器依赖
// 包含：所有Handler的构造函数
var handlerSet = wire.NewSet(
	handler.NewShipmentHandler,  // 运单处理器
	handler.NewTrackingHandler,  // 追踪处理器
	handler.NewInventoryHandler, // 库存处理器
	handler.NewCatalogHandler,   // 主数据处理器
	handler.NewExpenseHandler,   // 费用处理器
	provideWSHandler,            // WebSocket处理器
)

// ========================================
// Custom Providers (自定义Provider)
// ========================================

// provideHub 创建实时推送中枢
// 教学要点：realtime.NewHub需要发送缓冲大小，Wire无法自动从
// Config提取单个字段，所以需要手动编写Provider
func provideHub(cfg *config.Config, shipmentSvc shipment.Service) *realtime.Hub {
	return realtime.NewHub(shipmentSvc, cfg.WebSocket.SendBufferSize)
}

// provideEventPublisher 创建组合事件发布器
// MQ未启用时只走进程内Hub广播
func provideEventPublisher(cfg *config.Config, hub *realtime.Hub) (*events.Publisher, error) {
	var mqPublisher events.MQPublisher
	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
		if err != nil {
			return nil, err
		}
		mqPublisher = publisher
	}

	publishBreaker := breaker.New(
		"mq-publish",
		cfg.MQ.BreakerThreshold,
		cfg.MQ.BreakerCooldown,
		breaker.WithStateChangeHook(func(name string, state breaker.State) {
			metrics.SetGaugeVec(metrics.BreakerState, map[string]string{"name": name}, float64(state))
			log.Printf("发布保护器状态变化: name=%s state=%s", name, state)
		}),
	)
	return events.NewPublisher(hub, mqPublisher, publishBreaker, cfg.MQ.Exchange), nil
}

// provideWSHandler 创建WebSocket处理器
func provideWSHandler(hub *realtime.Hub, cfg *config.Config) *handler.WSHandler {
	return handler.NewWSHandler(hub, cfg.WebSocket)
}

// provideGinEngine 创建并配置Gin引擎
// 路由注册复用main.go中的registerRoutes，保证手动组装和Wire
// 组装跑的是同一套路由
func provideGinEngine(
	cfg *config.Config,
	shipmentHandler *handler.ShipmentHandler,
	trackingHandler *handler.TrackingHandler,
	inventoryHandler *handler.InventoryHandler,
	catalogHandler *handler.CatalogHandler,
	expenseHandler *handler.ExpenseHandler,
	wsHandler *handler.WSHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())

	registerRoutes(r, shipmentHandler, trackingHandler, inventoryHandler, catalogHandler, expenseHandler, wsHandler)

	return r
}

// ========================================
// Wire Injector (依赖注入器)
// ========================================

// InitializeApp 初始化整个应用
// 返回：配置好的Gin引擎
//
// 依赖链示例：
// *gin.Engine 需要 → *handler.ShipmentHandler
// *handler.ShipmentHandler 需要 → *appshipment.UpdateStatusUseCase
// *appshipment.UpdateStatusUseCase 需要 → shipment.Service + *events.Publisher
// *events.Publisher 需要 → *realtime.Hub
// *realtime.Hub 需要 → shipment.Service + *config.Config
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		// 基础设施层
		infrastructureSet,

		// 仓储层
		repositorySet,

		// 领域层
		domainSet,

		// 实时推送
		realtimeSet,

		// 应用层
		applicationSet,

		// 接口层
		handlerSet,

		// Gin引擎
		provideGinEngine,
	)

	// 占位返回值，实际代码由wire_gen.go生成
	return nil, nil
}
