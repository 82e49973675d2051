package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"nabtheprice/internal/api/dto"
	"nabtheprice/internal/model"
	"nabtheprice/internal/repository"
)

// ==================== 测试辅助 ====================

func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	db.AutoMigrate(&model.Store{}, &model.DiscountCode{}, &model.AdminUser{})
	return db
}

func newStoreService(db *gorm.DB) *StoreService {
	return NewStoreService(
		repository.NewStoreRepository(db),
		repository.NewDiscountCodeRepository(db),
	)
}

// ==================== 单元测试 ====================

func TestStoreService_CreateStore_LowercasesSlug(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newStoreService(db)
	ctx := context.Background()

	info, err := svc.CreateStore(ctx, &dto.CreateStoreRequest{
		Name:          "Nike",
		Slug:          "Nike",
		AffiliateLink: "https://nike.com/?aff=1",
	})
	if err != nil {
		t.Fatalf("CreateStore 失败: %v", err)
	}
	if info.Slug != "nike" {
		t.Errorf("slug = %s, want nike", info.Slug)
	}

	// 落库后可按小写 slug 查到
	store, err := svc.GetBySlug(ctx, "nike")
	if err != nil || store == nil {
		t.Fatalf("按小写 slug 查询失败: store=%v err=%v", store, err)
	}
	if store.Name != "Nike" || store.LogoURL != "" {
		t.Errorf("store = %+v, want Name=Nike LogoURL=空", store)
	}

	// 归一化幂等：小写进小写出
	if NormalizeSlug("nike") != "nike" {
		t.Error("NormalizeSlug 对小写输入应保持不变")
	}
}

func TestStoreService_CreateStore_DuplicateSlug(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newStoreService(db)
	ctx := context.Background()

	req := &dto.CreateStoreRequest{Name: "Nike", Slug: "nike", AffiliateLink: "https://nike.com"}
	if _, err := svc.CreateStore(ctx, req); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}

	// 大小写不同也算重复
	req2 := &dto.CreateStoreRequest{Name: "Nike 2", Slug: "NIKE", AffiliateLink: "https://nike.com"}
	if _, err := svc.CreateStore(ctx, req2); !errors.Is(err, ErrSlugExists) {
		t.Errorf("err = %v, want ErrSlugExists", err)
	}
}

func TestStoreService_CreateStore_InvalidSlug(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newStoreService(db)

	for _, slug := range []string{"", "has space", "ni/ke", "中文"} {
		_, err := svc.CreateStore(context.Background(), &dto.CreateStoreRequest{
			Name: "X", Slug: slug, AffiliateLink: "https://x.com",
		})
		if !errors.Is(err, ErrInvalidSlug) {
			t.Errorf("slug=%q err = %v, want ErrInvalidSlug", slug, err)
		}
	}
}

func TestStoreService_GetBySlug_NotFoundIsNil(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newStoreService(db)

	// 未找到是正常状态，返回 nil 不报错
	store, err := svc.GetBySlug(context.Background(), "missing")
	if err != nil {
		t.Fatalf("不应报错: %v", err)
	}
	if store != nil {
		t.Errorf("store = %+v, want nil", store)
	}
}

func TestStoreService_TrendingStores_Limit(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newStoreService(db)
	ctx := context.Background()

	for _, slug := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		svc.CreateStore(ctx, &dto.CreateStoreRequest{Name: slug, Slug: slug, AffiliateLink: "https://" + slug + ".com"})
	}

	stores, err := svc.TrendingStores(ctx)
	if err != nil {
		t.Fatalf("TrendingStores 失败: %v", err)
	}
	if len(stores) != TrendingStoreLimit {
		t.Errorf("trending count = %d, want %d", len(stores), TrendingStoreLimit)
	}
}

func TestStoreService_ListStores_WithCodeCount(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newStoreService(db)
	discountSvc := NewDiscountService(
		repository.NewDiscountCodeRepository(db),
		repository.NewStoreRepository(db),
	)
	ctx := context.Background()

	info, _ := svc.CreateStore(ctx, &dto.CreateStoreRequest{Name: "Nike", Slug: "nike", AffiliateLink: "https://nike.com"})
	svc.CreateStore(ctx, &dto.CreateStoreRequest{Name: "Adidas", Slug: "adidas", AffiliateLink: "https://adidas.com"})

	discountSvc.CreateCode(ctx, &dto.CreateDiscountCodeRequest{StoreID: info.ID, Code: "SAVE20", Description: "20% off"})

	stores, err := svc.ListStores(ctx)
	if err != nil {
		t.Fatalf("ListStores 失败: %v", err)
	}
	if len(stores) != 2 {
		t.Fatalf("stores count = %d, want 2", len(stores))
	}

	// 按名称排序：Adidas 在前
	if stores[0].Name != "Adidas" {
		t.Errorf("第一条 = %s, want Adidas", stores[0].Name)
	}
	if stores[1].CodeCount != 1 {
		t.Errorf("Nike code_count = %d, want 1", stores[1].CodeCount)
	}
}
