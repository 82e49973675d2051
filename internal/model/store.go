package model

import "time"

// 联盟链接健康状态
const (
	LinkStatusUnknown = 0 // 未检测
	LinkStatusOK      = 1 // 正常
	LinkStatusBroken  = 2 // 不可达
)

// Store 商家
// slug 是对外的查询键，写入时统一转小写，唯一性由数据库索引保证
type Store struct {
	BaseModel
	Name          string `gorm:"size:100;not null" json:"name"`
	Slug          string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	LogoURL       string `gorm:"size:500" json:"logo_url"`
	AffiliateLink string `gorm:"size:500;not null" json:"affiliate_link"`

	// 联盟链接巡检结果，由后台任务维护
	LinkStatus    int        `gorm:"default:0" json:"link_status"`
	LinkCheckedAt *time.Time `json:"link_checked_at,omitempty"`

	DiscountCodes []DiscountCode `gorm:"foreignKey:StoreID" json:"-"`
}

func (Store) TableName() string {
	return "stores"
}
