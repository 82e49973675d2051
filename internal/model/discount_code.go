package model

import "time"

// 折扣码状态
const (
	CodeStatusActive  = "Active"  // 生效中，公开页面只展示该状态
	CodeStatusExpired = "Expired" // 已过期，由后台任务标记
)

// DiscountCode 折扣码
// 一个 Store 下有多个折扣码，公开页按 created_at 倒序展示 Active 的
type DiscountCode struct {
	BaseModel
	StoreID     string `gorm:"type:varchar(36);index;not null" json:"store_id"`
	Code        string `gorm:"size:100;not null" json:"code"`
	Description string `gorm:"size:500" json:"description"`
	Status      string `gorm:"size:20;default:'Active'" json:"status"`

	// 可选过期时间，到期后由巡检任务置为 Expired
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (DiscountCode) TableName() string {
	return "discount_codes"
}
