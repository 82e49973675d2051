package repository

import (
	"context"
	"testing"
	"time"

	"nabtheprice/internal/model"
)

func TestDiscountCodeRepository_ListActiveByStore(t *testing.T) {
	db := setupTestDB(t)
	storeRepo := NewStoreRepository(db)
	repo := NewDiscountCodeRepository(db)
	ctx := context.Background()

	store := &model.Store{Name: "Nike", Slug: "nike", AffiliateLink: "https://nike.com"}
	storeRepo.Create(ctx, store)
	other := &model.Store{Name: "Adidas", Slug: "adidas", AffiliateLink: "https://adidas.com"}
	storeRepo.Create(ctx, other)

	// 不同创建时间的三个 Active + 一个 Expired + 一个别家的
	base := time.Now().Add(-time.Hour)
	for i, code := range []string{"OLD10", "MID15", "NEW20"} {
		c := &model.DiscountCode{StoreID: store.ID, Code: code, Status: model.CodeStatusActive}
		repo.Create(ctx, c)
		db.Model(c).Update("created_at", base.Add(time.Duration(i)*time.Minute))
	}
	repo.Create(ctx, &model.DiscountCode{StoreID: store.ID, Code: "DEAD", Status: model.CodeStatusExpired})
	repo.Create(ctx, &model.DiscountCode{StoreID: other.ID, Code: "OTHER", Status: model.CodeStatusActive})

	codes, err := repo.ListActiveByStore(ctx, store.ID)
	if err != nil {
		t.Fatalf("ListActiveByStore 失败: %v", err)
	}

	if len(codes) != 3 {
		t.Fatalf("codes count = %d, want 3", len(codes))
	}
	for _, c := range codes {
		if c.Status != model.CodeStatusActive {
			t.Errorf("返回了非 Active 的折扣码: %s (%s)", c.Code, c.Status)
		}
		if c.StoreID != store.ID {
			t.Errorf("返回了别家的折扣码: %s", c.Code)
		}
	}

	// created_at 倒序：相邻两条前者不早于后者
	for i := 0; i < len(codes)-1; i++ {
		if codes[i].CreatedAt.Before(codes[i+1].CreatedAt) {
			t.Errorf("排序错误: %s(%v) 在 %s(%v) 前面",
				codes[i].Code, codes[i].CreatedAt, codes[i+1].Code, codes[i+1].CreatedAt)
		}
	}
	if codes[0].Code != "NEW20" {
		t.Errorf("第一条 = %s, want NEW20", codes[0].Code)
	}
}

func TestDiscountCodeRepository_ExpireDue(t *testing.T) {
	db := setupTestDB(t)
	storeRepo := NewStoreRepository(db)
	repo := NewDiscountCodeRepository(db)
	ctx := context.Background()

	store := &model.Store{Name: "Nike", Slug: "nike", AffiliateLink: "https://nike.com"}
	storeRepo.Create(ctx, store)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	due := &model.DiscountCode{StoreID: store.ID, Code: "DUE", Status: model.CodeStatusActive, ExpiresAt: &past}
	keep := &model.DiscountCode{StoreID: store.ID, Code: "KEEP", Status: model.CodeStatusActive, ExpiresAt: &future}
	forever := &model.DiscountCode{StoreID: store.ID, Code: "FOREVER", Status: model.CodeStatusActive}
	repo.Create(ctx, due)
	repo.Create(ctx, keep)
	repo.Create(ctx, forever)

	affected, err := repo.ExpireDue(ctx, time.Now())
	if err != nil {
		t.Fatalf("ExpireDue 失败: %v", err)
	}
	if affected != 1 {
		t.Errorf("affected = %d, want 1", affected)
	}

	var check model.DiscountCode
	db.First(&check, "code = ?", "DUE")
	if check.Status != model.CodeStatusExpired {
		t.Errorf("DUE status = %s, want Expired", check.Status)
	}
	check = model.DiscountCode{}
	db.First(&check, "code = ?", "KEEP")
	if check.Status != model.CodeStatusActive {
		t.Errorf("KEEP status = %s, want Active", check.Status)
	}
	check = model.DiscountCode{}
	db.First(&check, "code = ?", "FOREVER")
	if check.Status != model.CodeStatusActive {
		t.Errorf("FOREVER status = %s, want Active", check.Status)
	}
}

func TestDiscountCodeRepository_CountByStore(t *testing.T) {
	db := setupTestDB(t)
	storeRepo := NewStoreRepository(db)
	repo := NewDiscountCodeRepository(db)
	ctx := context.Background()

	store := &model.Store{Name: "Nike", Slug: "nike", AffiliateLink: "https://nike.com"}
	storeRepo.Create(ctx, store)

	repo.Create(ctx, &model.DiscountCode{StoreID: store.ID, Code: "A", Status: model.CodeStatusActive})
	repo.Create(ctx, &model.DiscountCode{StoreID: store.ID, Code: "B", Status: model.CodeStatusExpired})

	// 数量统计不区分状态
	count, err := repo.CountByStore(ctx, store.ID)
	if err != nil || count != 2 {
		t.Errorf("count = %d, err = %v, want 2, nil", count, err)
	}
}
