package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"nabtheprice/internal/model"
)

// ==================== UserRepository 管理员仓库 ====================

// UserRepository 管理员仓库接口
type UserRepository interface {
	Create(ctx context.Context, user *model.AdminUser) error
	GetByID(ctx context.Context, id string) (*model.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id string, hashedPassword string) error
	UpdateLastLogin(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// ==================== 实现 ====================

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建管理员仓库
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建管理员
func (r *userRepository) Create(ctx context.Context, user *model.AdminUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID 根据 ID 获取管理员
func (r *userRepository) GetByID(ctx context.Context, id string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// GetByEmail 根据邮箱获取管理员
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var user model.AdminUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

// ExistsByEmail 检查邮箱是否已存在
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AdminUser{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

// UpdatePassword 更新密码哈希
func (r *userRepository) UpdatePassword(ctx context.Context, id string, hashedPassword string) error {
	return r.db.WithContext(ctx).
		Model(&model.AdminUser{}).
		Where("id = ?", id).
		Update("password", hashedPassword).Error
}

// UpdateLastLogin 更新最后登录时间
func (r *userRepository) UpdateLastLogin(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.AdminUser{}).
		Where("id = ?", id).
		Update("last_login_at", time.Now()).Error
}

// Count 管理员总数（启动引导用）
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AdminUser{}).Count(&count).Error
	return count, err
}
