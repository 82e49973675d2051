package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"nabtheprice/internal/model"
)

// ==================== DiscountCodeRepository 折扣码仓库 ====================

// DiscountCodeRepository 折扣码仓库接口
type DiscountCodeRepository interface {
	Create(ctx context.Context, code *model.DiscountCode) error
	ListActiveByStore(ctx context.Context, storeID string) ([]model.DiscountCode, error)
	CountByStore(ctx context.Context, storeID string) (int64, error)
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
}

// ==================== 实现 ====================

type discountCodeRepository struct {
	db *gorm.DB
}

// NewDiscountCodeRepository 创建折扣码仓库
func NewDiscountCodeRepository(db *gorm.DB) DiscountCodeRepository {
	return &discountCodeRepository{db: db}
}

// Create 创建折扣码
func (r *discountCodeRepository) Create(ctx context.Context, code *model.DiscountCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

// ListActiveByStore 某商家生效中的折扣码，按创建时间倒序
func (r *discountCodeRepository) ListActiveByStore(ctx context.Context, storeID string) ([]model.DiscountCode, error) {
	var codes []model.DiscountCode
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND status = ?", storeID, model.CodeStatusActive).
		Order("created_at DESC").
		Find(&codes).Error
	return codes, err
}

// CountByStore 某商家折扣码总数（后台列表用）
func (r *discountCodeRepository) CountByStore(ctx context.Context, storeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DiscountCode{}).
		Where("store_id = ?", storeID).
		Count(&count).Error
	return count, err
}

// ExpireDue 把已过期仍为 Active 的折扣码批量置为 Expired，返回影响行数
func (r *discountCodeRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.DiscountCode{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", model.CodeStatusActive, now).
		Update("status", model.CodeStatusExpired)
	return result.RowsAffected, result.Error
}
