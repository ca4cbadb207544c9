package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/xiebiao/shiptrack/pkg/response"
	"github.com/xiebiao/shiptrack/pkg/tracing"
)

// main 主程序入口
// 说明:手动依赖注入,Wire版本见wire.go(wire gen ./cmd/api)
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	fmt.Printf("  - MQ启用: %t\n", cfg.MQ.Enabled)

	// 2. 指标注册
	metrics.InitMetrics()

	// 3. 分布式追踪(可选)
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("初始化追踪失败: %v", err)
		}
		defer shutdown(context.Background())
	}

	// 4. 基础设施连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// RabbitMQ发布者(可选,连不上直接启动失败而不是静默降级)
	var mqPublisher events.MQPublisher
	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
		if err != nil {
			log.Fatalf("初始化MQ失败: %v", err)
		}
		defer publisher.Close()
		mqPublisher = publisher
	}

	// 5. 依赖注入(手动组装)
	// Repository ← Service ← UseCase ← Handler

	// 仓储层
	shipmentRepo := mysql.NewShipmentRepository(db)
	inventoryRepo := mysql.NewInventoryRepository(db)
	trackingRepo := mysql.NewLocationUpdateRepository(db)
	productRepo := mysql.NewProductRepository(db)
	locationRepo := mysql.NewLocationRepository(db)
	expenseRepo := mysql.NewExpenseRepository(db)
	txManager := mysql.NewTxManager(db)
	shipmentCache := redis.NewShipmentCache(redisClient)

	// 领域层
	inventorySvc := inventory.NewService(inventoryRepo)
	shipmentSvc := shipment.NewService(shipmentRepo, inventorySvc)

	// 实时推送中枢+组合事件发布器
	hub := realtime.NewHub(shipmentSvc, cfg.WebSocket.SendBufferSize)
	publishBreaker := breaker.New(
		"mq-publish",
		cfg.MQ.BreakerThreshold,
		cfg.MQ.BreakerCooldown,
		breaker.WithStateChangeHook(func(name string, state breaker.State) {
			metrics.SetGaugeVec(metrics.BreakerState, map[string]string{"name": name}, float64(state))
			log.Printf("发布保护器状态变化: name=%s state=%s", name, state)
		}),
	)
	eventPublisher := events.NewPublisher(hub, mqPublisher, publishBreaker, cfg.MQ.Exchange)

	// 应用层
	createShipmentUC := appshipment.NewCreateShipmentUseCase(shipmentSvc, txManager)
	getShipmentUC := appshipment.NewGetShipmentUseCase(shipmentSvc)
	listShipmentsUC := appshipment.NewListShipmentsUseCase(shipmentSvc)
	updateShipmentUC := appshipment.NewUpdateShipmentUseCase(shipmentSvc, shipmentCache)
	updateStatusUC := appshipment.NewUpdateStatusUseCase(shipmentSvc, txManager, eventPublisher, shipmentCache)
	manageItemsUC := appshipment.NewManageItemsUseCase(shipmentSvc, txManager, shipmentCache)
	trackShipmentUC := appshipment.NewTrackShipmentUseCase(shipmentSvc, trackingRepo, shipmentCache)
	reportLocationUC := apptracking.NewReportLocationUseCase(shipmentSvc, trackingRepo, eventPublisher)
	locationHistoryUC := apptracking.NewLocationHistoryUseCase(shipmentSvc, trackingRepo)
	manageRecordsUC := appinventory.NewManageRecordsUseCase(inventorySvc, txManager)
	manageProductsUC := appcatalog.NewManageProductsUseCase(productRepo)
	manageLocationsUC := appcatalog.NewManageLocationsUseCase(locationRepo)
	createExpenseUC := appexpense.NewCreateExpenseUseCase(expenseRepo)
	queryExpensesUC := appexpense.NewQueryExpensesUseCase(expenseRepo)
	reviewExpenseUC := appexpense.NewReviewExpenseUseCase(expenseRepo)
	manageBudgetsUC := appexpense.NewManageBudgetsUseCase(expenseRepo)
	manageReferenceUC := appexpense.NewManageReferenceUseCase(expenseRepo)

	// 接口层
	shipmentHandler := handler.NewShipmentHandler(
		createShipmentUC, getShipmentUC, listShipmentsUC,
		updateShipmentUC, updateStatusUC, manageItemsUC,
	)
	trackingHandler := handler.NewTrackingHandler(reportLocationUC, locationHistoryUC, trackShipmentUC)
	inventoryHandler := handler.NewInventoryHandler(manageRecordsUC)
	catalogHandler := handler.NewCatalogHandler(manageProductsUC, manageLocationsUC)
	expenseHandler := handler.NewExpenseHandler(
		createExpenseUC, queryExpensesUC, reviewExpenseUC,
		manageBudgetsUC, manageReferenceUC,
	)
	wsHandler := handler.NewWSHandler(hub, cfg.WebSocket)

	// 6. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 7. 注册路由
	registerRoutes(r, shipmentHandler, trackingHandler, inventoryHandler, catalogHandler, expenseHandler, wsHandler)

	// 8. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   公开追踪: GET http://localhost%s/api/v1/track/{tracking_number}\n", addr)
	fmt.Printf("   实时通道: ws://localhost%s/ws/tracking\n", addr)
	fmt.Printf("   指标端点: http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	shipmentHandler *handler.ShipmentHandler,
	trackingHandler *handler.TrackingHandler,
	inventoryHandler *handler.InventoryHandler,
	catalogHandler *handler.CatalogHandler,
	expenseHandler *handler.ExpenseHandler,
	wsHandler *handler.WSHandler,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档(http://localhost:8080/swagger/index.html)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 实时追踪WebSocket
	r.GET("/ws/tracking", wsHandler.Serve)

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 公开追踪(无需登录的唯一读接口)
		v1.GET("/track/:tracking_number", trackingHandler.Track)

		// 运单模块
		shipments := v1.Group("/shipments")
		{
			shipments.POST("", shipmentHandler.Create)
			shipments.GET("", shipmentHandler.List)
			shipments.GET("/:id", shipmentHandler.Get)
			shipments.PUT("/:id", shipmentHandler.Update)
			shipments.PUT("/:id/status", shipmentHandler.UpdateStatus)

			// 明细子资源
			shipments.POST("/:id/items", shipmentHandler.AddItem)
			shipments.GET("/:id/items", shipmentHandler.ListItems)
			shipments.PUT("/:id/items/:item_id", shipmentHandler.UpdateItem)
			shipments.DELETE("/:id/items/:item_id", shipmentHandler.RemoveItem)

			// 位置上报与轨迹
			shipments.POST("/:id/location", trackingHandler.ReportLocation)
			shipments.GET("/:id/locations", trackingHandler.LocationHistory)
		}

		// 库存模块
		inventoryGroup := v1.Group("/inventory")
		{
			inventoryGroup.POST("", inventoryHandler.Create)
			inventoryGroup.GET("", inventoryHandler.List)
			inventoryGroup.GET("/record", inventoryHandler.Get)
		}

		// 主数据模块
		products := v1.Group("/products")
		{
			products.POST("", catalogHandler.CreateProduct)
			products.GET("", catalogHandler.ListProducts)
			products.GET("/:id", catalogHandler.GetProduct)
		}
		locations := v1.Group("/locations")
		{
			locations.POST("", catalogHandler.CreateLocation)
			locations.GET("", catalogHandler.ListLocations)
			locations.GET("/:id", catalogHandler.GetLocation)
		}

		// 费用模块
		expenses := v1.Group("/expenses")
		{
			expenses.POST("", expenseHandler.Create)
			expenses.GET("", expenseHandler.List)
			expenses.GET("/:id", expenseHandler.Get)
			expenses.PUT("/:id", expenseHandler.Update)
			expenses.POST("/:id/submit", expenseHandler.Submit)
			expenses.POST("/:id/approve", expenseHandler.Approve)
			expenses.POST("/:id/reject", expenseHandler.Reject)
		}
		v1.POST("/expense-categories", expenseHandler.CreateCategory)
		v1.GET("/expense-categories", expenseHandler.ListCategories)
		v1.POST("/vendors", expenseHandler.CreateVendor)
		v1.GET("/vendors", expenseHandler.ListVendors)
		budgets := v1.Group("/budgets")
		{
			budgets.POST("", expenseHandler.CreateBudget)
			budgets.GET("", expenseHandler.ListBudgets)
			budgets.GET("/:id/variance", expenseHandler.BudgetVariance)
		}
	}
}
