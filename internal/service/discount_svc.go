package service

import (
	"context"
	"time"

	"nabtheprice/internal/api/dto"
	"nabtheprice/internal/model"
	"nabtheprice/internal/repository"
)

// ==================== DiscountService 折扣码服务 ====================

// DiscountService 折扣码服务
type DiscountService struct {
	discountRepo repository.DiscountCodeRepository
	storeRepo    repository.StoreRepository
}

// NewDiscountService 创建折扣码服务
func NewDiscountService(discountRepo repository.DiscountCodeRepository, storeRepo repository.StoreRepository) *DiscountService {
	return &DiscountService{discountRepo: discountRepo, storeRepo: storeRepo}
}

// ActiveCodes 某商家生效中的折扣码，按创建时间倒序
func (s *DiscountService) ActiveCodes(ctx context.Context, storeID string) ([]dto.DiscountCodeInfo, error) {
	codes, err := s.discountRepo.ListActiveByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.DiscountCodeInfo, 0, len(codes))
	for i := range codes {
		infos = append(infos, toDiscountCodeInfo(&codes[i]))
	}
	return infos, nil
}

// CreateCode 新建折扣码
// 无论调用方传什么，落库状态一律强制为 Active
func (s *DiscountService) CreateCode(ctx context.Context, req *dto.CreateDiscountCodeRequest) (*dto.DiscountCodeInfo, error) {
	store, err := s.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	code := &model.DiscountCode{
		StoreID:     store.ID,
		Code:        req.Code,
		Description: req.Description,
		Status:      model.CodeStatusActive,
		ExpiresAt:   req.ExpiresAt,
	}
	if err := s.discountRepo.Create(ctx, code); err != nil {
		return nil, err
	}

	info := toDiscountCodeInfo(code)
	return &info, nil
}

// ExpireDue 把到期折扣码批量置为 Expired，供巡检任务调用
func (s *DiscountService) ExpireDue(ctx context.Context) (int64, error) {
	return s.discountRepo.ExpireDue(ctx, time.Now())
}

func toDiscountCodeInfo(code *model.DiscountCode) dto.DiscountCodeInfo {
	return dto.DiscountCodeInfo{
		ID:          code.ID,
		StoreID:     code.StoreID,
		Code:        code.Code,
		Description: code.Description,
		Status:      code.Status,
		ExpiresAt:   code.ExpiresAt,
		CreatedAt:   code.CreatedAt,
	}
}
