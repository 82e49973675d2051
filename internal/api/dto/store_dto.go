package dto

import "time"

// ==================== 商家 ====================

// CreateStoreRequest 新建商家请求
// slug 允许大小写混写，落库前统一转小写
type CreateStoreRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	Slug          string `json:"slug" binding:"required,max=100"`
	LogoURL       string `json:"logo_url" binding:"omitempty,url,max=500"`
	AffiliateLink string `json:"affiliate_link" binding:"required,url,max=500"`
}

// StoreInfo 商家信息
type StoreInfo struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	LogoURL       string    `json:"logo_url"`
	AffiliateLink string    `json:"affiliate_link"`
	LinkStatus    int       `json:"link_status"`
	CodeCount     int64     `json:"code_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ==================== 折扣码 ====================

// CreateDiscountCodeRequest 新建折扣码请求
// 不接受调用方指定 status，落库一律 Active
type CreateDiscountCodeRequest struct {
	StoreID     string     `json:"store_id" binding:"required"`
	Code        string     `json:"code" binding:"required,max=100"`
	Description string     `json:"description" binding:"required,max=500"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// DiscountCodeInfo 折扣码信息
type DiscountCodeInfo struct {
	ID          string     `json:"id"`
	StoreID     string     `json:"store_id"`
	Code        string     `json:"code"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
