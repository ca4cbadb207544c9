package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/shiptrack/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ProductModel{},
		&LocationModel{},
		&InventoryRecordModel{},
		&ShipmentModel{},
		&ShipmentItemModel{},
		&LocationUpdateModel{},
		&CategoryModel{},
		&VendorModel{},
		&ExpenseModel{},
		&BudgetModel{},
	)
}

// ProductModel GORM商品模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain层实体不依赖GORM，Repository负责两者转换
type ProductModel struct {
	ID          uint      `gorm:"primaryKey"`
	SKU         string    `gorm:"uniqueIndex;size:64;not null;comment:商品编码"`
	Name        string    `gorm:"size:200;not null;comment:商品名称"`
	Description string    `gorm:"type:text;comment:商品描述"`
	UnitWeight  float64   `gorm:"comment:单件重量(kg)"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// LocationModel GORM站点模型
type LocationModel struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"uniqueIndex;size:32;not null;comment:站点编码"`
	Name      string    `gorm:"size:100;not null;comment:站点名称"`
	Address   string    `gorm:"size:255;comment:地址"`
	City      string    `gorm:"size:64;comment:城市"`
	Country   string    `gorm:"size:64;comment:国家"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (LocationModel) TableName() string {
	return "locations"
}

// InventoryRecordModel GORM库存记录模型
// 设计说明:
// 1. (ProductID, LocationID)复合唯一索引,一个商品在一个站点只有一条记录
// 2. Quantity/Reserved的不变式由领域层保证,数据库只存储
type InventoryRecordModel struct {
	ID         uint      `gorm:"primaryKey"`
	ProductID  uint      `gorm:"uniqueIndex:idx_product_location;not null;comment:商品ID"`
	LocationID uint      `gorm:"uniqueIndex:idx_product_location;not null;comment:站点ID"`
	Quantity   int       `gorm:"not null;default:0;comment:在库总量"`
	Reserved   int       `gorm:"not null;default:0;comment:已预留量"`
	CreatedAt  time.Time `gorm:"comment:创建时间"`
	UpdatedAt  time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (InventoryRecordModel) TableName() string {
	return "inventory_records"
}

// ShipmentModel GORM运单模型
// 教学要点:
// 1. 与ShipmentItemModel是一对多关系
// 2. TrackingNumber有唯一索引(业务主键)
// 3. Status存字符串(与API/事件载荷同形,免映射;历史未知值可原样保存)
type ShipmentModel struct {
	ID                    uint                `gorm:"primaryKey"`
	TrackingNumber        string              `gorm:"uniqueIndex;size:32;not null;comment:追踪号"`
	OriginLocationID      uint                `gorm:"index;not null;comment:起运站点ID"`
	DestinationLocationID uint                `gorm:"index;not null;comment:目的站点ID"`
	Status                string              `gorm:"index;size:20;not null;default:pending;comment:运单状态"`
	Carrier               string              `gorm:"size:64;comment:承运方"`
	RecipientName         string              `gorm:"size:100;comment:收件人"`
	EstimatedDelivery     *time.Time          `gorm:"comment:预计送达时间"`
	Items                 []ShipmentItemModel `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"` // 一对多关联,随运单级联删除
	CreatedAt             time.Time           `gorm:"index;comment:创建时间"`
	UpdatedAt             time.Time           `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ShipmentItemModel GORM运单明细模型
type ShipmentItemModel struct {
	ID         uint   `gorm:"primaryKey"`
	ShipmentID uint   `gorm:"index;not null;comment:运单ID"`
	ProductID  uint   `gorm:"index;not null;comment:商品ID"`
	Quantity   int    `gorm:"not null;comment:数量"`
	Notes      string `gorm:"size:255;comment:备注"`
}

// TableName 指定表名
func (ShipmentItemModel) TableName() string {
	return "shipment_items"
}

// LocationUpdateModel GORM位置记录模型
// 只追加不修改,按(ShipmentID, ReportedAt)索引支持轨迹查询
type LocationUpdateModel struct {
	ID         uint      `gorm:"primaryKey"`
	ShipmentID uint      `gorm:"index:idx_shipment_reported;not null;comment:运单ID"`
	Latitude   float64   `gorm:"not null;comment:纬度"`
	Longitude  float64   `gorm:"not null;comment:经度"`
	Speed      *float64  `gorm:"comment:速度(km/h)"`
	Heading    *float64  `gorm:"comment:方向角(0-360)"`
	ReportedAt time.Time `gorm:"index:idx_shipment_reported;not null;comment:设备上报时间"`
	CreatedAt  time.Time `gorm:"comment:落库时间"`
}

// TableName 指定表名
func (LocationUpdateModel) TableName() string {
	return "location_updates"
}

// CategoryModel GORM费用类别模型
type CategoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"uniqueIndex;size:100;not null;comment:类别名称"`
	Description string    `gorm:"size:255;comment:描述"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "expense_categories"
}

// VendorModel GORM供应商模型
type VendorModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:200;not null;comment:供应商名称"`
	ContactInfo string    `gorm:"size:255;comment:联系方式"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (VendorModel) TableName() string {
	return "vendors"
}

// ExpenseModel GORM费用单模型
// 金额以"分"为单位的int64存储,AmountUSD按创建时汇率冗余
type ExpenseModel struct {
	ID            uint       `gorm:"primaryKey"`
	ExpenseNumber string     `gorm:"uniqueIndex;size:32;not null;comment:费用单号"`
	CategoryID    uint       `gorm:"index;not null;comment:类别ID"`
	VendorID      uint       `gorm:"index;not null;comment:供应商ID"`
	ShipmentID    *uint      `gorm:"index;comment:关联运单ID"`
	Description   string     `gorm:"size:500;comment:描述"`
	Amount        int64      `gorm:"not null;comment:原币金额(分)"`
	Currency      string     `gorm:"size:3;not null;default:USD;comment:币种"`
	AmountUSD     int64      `gorm:"not null;comment:美元金额(美分)"`
	Status        string     `gorm:"index;size:20;not null;default:draft;comment:工作流状态"`
	ExpenseDate   time.Time  `gorm:"index;comment:费用发生日期"`
	ApprovedBy    string     `gorm:"size:100;comment:审批人"`
	ReviewedAt    *time.Time `gorm:"comment:审批时间"`
	CreatedAt     time.Time  `gorm:"comment:创建时间"`
	UpdatedAt     time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ExpenseModel) TableName() string {
	return "expenses"
}

// BudgetModel GORM预算模型
type BudgetModel struct {
	ID          uint      `gorm:"primaryKey"`
	CategoryID  uint      `gorm:"index;not null;comment:类别ID"`
	PeriodStart time.Time `gorm:"not null;comment:周期开始"`
	PeriodEnd   time.Time `gorm:"not null;comment:周期结束"`
	AmountUSD   int64     `gorm:"not null;comment:预算金额(美分)"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BudgetModel) TableName() string {
	return "budgets"
}
