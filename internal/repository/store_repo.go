package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"nabtheprice/internal/model"
)

// ==================== StoreRepository 商家仓库 ====================

// StoreRepository 商家仓库接口
type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	GetByID(ctx context.Context, id string) (*model.Store, error)
	GetBySlug(ctx context.Context, slug string) (*model.Store, error)
	List(ctx context.Context) ([]model.Store, error)
	ListTrending(ctx context.Context, limit int) ([]model.Store, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ListForLinkCheck(ctx context.Context) ([]model.Store, error)
	UpdateLinkStatus(ctx context.Context, id string, status int, checkedAt time.Time) error
}

// ==================== 实现 ====================

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository 创建商家仓库
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

// Create 创建商家
func (r *storeRepository) Create(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

// GetByID 根据 ID 获取商家
func (r *storeRepository) GetByID(ctx context.Context, id string) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &store, err
}

// GetBySlug 根据 slug 获取商家，未命中返回 nil 而不是错误
func (r *storeRepository) GetBySlug(ctx context.Context, slug string) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &store, err
}

// List 全部商家，按名称排序（后台列表用）
func (r *storeRepository) List(ctx context.Context) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.WithContext(ctx).Order("name").Find(&stores).Error
	return stores, err
}

// ListTrending 首页热门商家，取前 limit 条
func (r *storeRepository) ListTrending(ctx context.Context, limit int) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.WithContext(ctx).Limit(limit).Find(&stores).Error
	return stores, err
}

// ExistsBySlug 检查 slug 是否已存在
func (r *storeRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

// ListForLinkCheck 巡检任务取全部商家
func (r *storeRepository) ListForLinkCheck(ctx context.Context) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.WithContext(ctx).
		Where("affiliate_link <> ''").
		Find(&stores).Error
	return stores, err
}

// UpdateLinkStatus 更新联盟链接巡检结果
func (r *storeRepository) UpdateLinkStatus(ctx context.Context, id string, status int, checkedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"link_status":     status,
			"link_checked_at": checkedAt,
		}).Error
}
