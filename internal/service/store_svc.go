package service

import (
	"context"
	"strings"

	"nabtheprice/internal/api/dto"
	"nabtheprice/internal/model"
	"nabtheprice/internal/repository"
)

// 首页热门商家数量
const TrendingStoreLimit = 6

// ==================== StoreService 商家服务 ====================

// StoreService 商家服务
type StoreService struct {
	storeRepo    repository.StoreRepository
	discountRepo repository.DiscountCodeRepository
}

// NewStoreService 创建商家服务
func NewStoreService(storeRepo repository.StoreRepository, discountRepo repository.DiscountCodeRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo, discountRepo: discountRepo}
}

// ==================== 查询 ====================

// ListStores 全部商家，按名称排序，附带各自折扣码数量
func (s *StoreService) ListStores(ctx context.Context) ([]dto.StoreInfo, error) {
	stores, err := s.storeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.StoreInfo, 0, len(stores))
	for i := range stores {
		info := toStoreInfo(&stores[i])
		// 数量查询失败只影响展示，不中断列表
		if count, err := s.discountRepo.CountByStore(ctx, stores[i].ID); err == nil {
			info.CodeCount = count
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// TrendingStores 首页热门商家，最多 6 条
func (s *StoreService) TrendingStores(ctx context.Context) ([]dto.StoreInfo, error) {
	stores, err := s.storeRepo.ListTrending(ctx, TrendingStoreLimit)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.StoreInfo, 0, len(stores))
	for i := range stores {
		infos = append(infos, toStoreInfo(&stores[i]))
	}
	return infos, nil
}

// GetBySlug 按 slug 查商家，未命中返回 nil，页面渲染"未找到"状态
func (s *StoreService) GetBySlug(ctx context.Context, slug string) (*model.Store, error) {
	return s.storeRepo.GetBySlug(ctx, NormalizeSlug(slug))
}

// ==================== 写入 ====================

// CreateStore 新建商家
// slug 统一转小写；重复 slug 在插入前先查一次，给用户友好报错，
// 真正的唯一性仍由数据库唯一索引兜底
func (s *StoreService) CreateStore(ctx context.Context, req *dto.CreateStoreRequest) (*dto.StoreInfo, error) {
	slug := NormalizeSlug(req.Slug)
	if !validSlug(slug) {
		return nil, ErrInvalidSlug
	}

	exists, err := s.storeRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSlugExists
	}

	store := &model.Store{
		Name:          req.Name,
		Slug:          slug,
		LogoURL:       req.LogoURL,
		AffiliateLink: req.AffiliateLink,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}

	info := toStoreInfo(store)
	return &info, nil
}

// ==================== 辅助 ====================

// NormalizeSlug slug 归一化：去首尾空白并转小写
// 幂等：对已经是小写的 slug 再做一次结果不变
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func validSlug(slug string) bool {
	if slug == "" {
		return false
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}

func toStoreInfo(store *model.Store) dto.StoreInfo {
	return dto.StoreInfo{
		ID:            store.ID,
		Name:          store.Name,
		Slug:          store.Slug,
		LogoURL:       store.LogoURL,
		AffiliateLink: store.AffiliateLink,
		LinkStatus:    store.LinkStatus,
		CreatedAt:     store.CreatedAt,
	}
}
