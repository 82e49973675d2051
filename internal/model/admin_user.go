package model

import "time"

// AdminUser 后台管理员账号
type AdminUser struct {
	BaseModel
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希
	IsActive bool   `gorm:"default:true" json:"is_active"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
