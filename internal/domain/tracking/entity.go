package tracking

import (
	"time"
)

// LocationUpdate 位置上报记录(不可变实体)
// 设计说明:
// 1. 只追加不修改:每次上报持久化为一条独立记录,构成轨迹历史
// 2. Speed/Heading可选(部分设备不上报),用指针区分"未上报"和"0值"
// 3. ReportedAt是设备侧时间戳,CreatedAt是服务端落库时间
type LocationUpdate struct {
	ID         uint
	ShipmentID uint
	Latitude   float64
	Longitude  float64
	Speed      *float64 // km/h,可选
	Heading    *float64 // 角度0-360,可选
	ReportedAt time.Time
	CreatedAt  time.Time
}

// NewLocationUpdate 创建位置记录(工厂方法)
func NewLocationUpdate(shipmentID uint, latitude, longitude float64, speed, heading *float64, reportedAt time.Time) *LocationUpdate {
	return &LocationUpdate{
		ShipmentID: shipmentID,
		Latitude:   latitude,
		Longitude:  longitude,
		Speed:      speed,
		Heading:    heading,
		ReportedAt: reportedAt,
		CreatedAt:  time.Now(),
	}
}

// Validate 坐标范围校验
func (l *LocationUpdate) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return ErrInvalidLatitude
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return ErrInvalidLongitude
	}
	return nil
}
