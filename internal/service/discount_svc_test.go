package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"nabtheprice/internal/api/dto"
	"nabtheprice/internal/model"
	"nabtheprice/internal/repository"
)

func TestDiscountService_CreateCode_ForcesActive(t *testing.T) {
	db := setupServiceTestDB(t)
	storeSvc := newStoreService(db)
	svc := NewDiscountService(
		repository.NewDiscountCodeRepository(db),
		repository.NewStoreRepository(db),
	)
	ctx := context.Background()

	store, _ := storeSvc.CreateStore(ctx, &dto.CreateStoreRequest{
		Name: "Nike", Slug: "nike", AffiliateLink: "https://nike.com",
	})

	info, err := svc.CreateCode(ctx, &dto.CreateDiscountCodeRequest{
		StoreID:     store.ID,
		Code:        "SAVE20",
		Description: "20% off entire order",
	})
	if err != nil {
		t.Fatalf("CreateCode 失败: %v", err)
	}
	if info.Status != model.CodeStatusActive {
		t.Errorf("status = %s, want Active", info.Status)
	}

	// 落库的状态也必须是 Active
	var stored model.DiscountCode
	db.First(&stored, "code = ?", "SAVE20")
	if stored.Status != model.CodeStatusActive {
		t.Errorf("stored status = %s, want Active", stored.Status)
	}
}

func TestDiscountService_CreateCode_UnknownStore(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewDiscountService(
		repository.NewDiscountCodeRepository(db),
		repository.NewStoreRepository(db),
	)

	_, err := svc.CreateCode(context.Background(), &dto.CreateDiscountCodeRequest{
		StoreID: "no-such-id", Code: "X", Description: "x",
	})
	if !errors.Is(err, ErrStoreNotFound) {
		t.Errorf("err = %v, want ErrStoreNotFound", err)
	}
}

func TestDiscountService_ActiveCodes_OnlyActiveDesc(t *testing.T) {
	db := setupServiceTestDB(t)
	storeSvc := newStoreService(db)
	svc := NewDiscountService(
		repository.NewDiscountCodeRepository(db),
		repository.NewStoreRepository(db),
	)
	ctx := context.Background()

	store, _ := storeSvc.CreateStore(ctx, &dto.CreateStoreRequest{
		Name: "Nike", Slug: "nike", AffiliateLink: "https://nike.com",
	})

	base := time.Now().Add(-time.Hour)
	for i, code := range []string{"FIRST", "SECOND"} {
		info, _ := svc.CreateCode(ctx, &dto.CreateDiscountCodeRequest{
			StoreID: store.ID, Code: code, Description: code,
		})
		db.Model(&model.DiscountCode{}).Where("id = ?", info.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute))
	}
	// 手工塞一条 Expired，不应出现在结果里
	db.Create(&model.DiscountCode{StoreID: store.ID, Code: "GONE", Status: model.CodeStatusExpired})

	codes, err := svc.ActiveCodes(ctx, store.ID)
	if err != nil {
		t.Fatalf("ActiveCodes 失败: %v", err)
	}
	if len(codes) != 2 {
		t.Fatalf("codes count = %d, want 2", len(codes))
	}
	if codes[0].Code != "SECOND" || codes[1].Code != "FIRST" {
		t.Errorf("排序错误: %s, %s", codes[0].Code, codes[1].Code)
	}
}

func TestDiscountService_ExpireDue(t *testing.T) {
	db := setupServiceTestDB(t)
	storeSvc := newStoreService(db)
	svc := NewDiscountService(
		repository.NewDiscountCodeRepository(db),
		repository.NewStoreRepository(db),
	)
	ctx := context.Background()

	store, _ := storeSvc.CreateStore(ctx, &dto.CreateStoreRequest{
		Name: "Nike", Slug: "nike", AffiliateLink: "https://nike.com",
	})

	past := time.Now().Add(-time.Minute)
	svc.CreateCode(ctx, &dto.CreateDiscountCodeRequest{
		StoreID: store.ID, Code: "DUE", Description: "x", ExpiresAt: &past,
	})
	svc.CreateCode(ctx, &dto.CreateDiscountCodeRequest{
		StoreID: store.ID, Code: "KEEP", Description: "x",
	})

	expired, err := svc.ExpireDue(ctx)
	if err != nil {
		t.Fatalf("ExpireDue 失败: %v", err)
	}
	if expired != 1 {
		t.Errorf("expired = %d, want 1", expired)
	}

	codes, _ := svc.ActiveCodes(ctx, store.ID)
	if len(codes) != 1 || codes[0].Code != "KEEP" {
		t.Errorf("过期后 Active 列表 = %+v, want 只剩 KEEP", codes)
	}
}
