package task

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/robfig/cron/v3"

	"nabtheprice/internal/model"
	"nabtheprice/internal/repository"
)

// LinkMonitor 联盟链接巡检任务
// 定期探测各商家的 affiliate_link 是否可达，结果写回 link_status，
// 后台列表据此提示运营换链接
type LinkMonitor struct {
	storeRepo repository.StoreRepository
	client    *resty.Client
	Cron      *cron.Cron

	// 控制并发探测数量，避免打满出口带宽
	concurrencyLimit int
}

// NewLinkMonitor 创建链接巡检任务
func NewLinkMonitor(storeRepo repository.StoreRepository) *LinkMonitor {
	return &LinkMonitor{
		storeRepo: storeRepo,
		client: resty.New().
			SetTimeout(10 * time.Second).
			SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)),
		Cron:             cron.New(cron.WithSeconds()),
		concurrencyLimit: 10,
	}
}

// Start 启动链接巡检
func (m *LinkMonitor) Start() {
	// 策略：每 6 小时巡检一次，联盟链接坏得不快
	_, err := m.Cron.AddFunc("0 0 0/6 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		m.Execute(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动 LinkMonitor: %v", err)
	}

	m.Cron.Start()
	log.Println("LinkMonitor 巡检任务已启动 (每6小时检查一次)")
}

// Stop 停止任务
func (m *LinkMonitor) Stop() {
	m.Cron.Stop()
}

// Execute 执行一次完整巡检
func (m *LinkMonitor) Execute(ctx context.Context) {
	log.Println("[LinkMonitor] Start checking affiliate links...")

	stores, err := m.storeRepo.ListForLinkCheck(ctx)
	if err != nil {
		log.Printf("[LinkMonitor] Failed to fetch store list: %v", err)
		return
	}

	if len(stores) == 0 {
		log.Println("[LinkMonitor] No stores found")
		return
	}

	// 信号量控制并发
	var wg sync.WaitGroup
	sem := make(chan struct{}, m.concurrencyLimit)

	for i := range stores {
		store := stores[i]

		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			m.checkOne(ctx, &store)
		}()
	}

	wg.Wait()
	log.Printf("[LinkMonitor] Done, checked %d stores", len(stores))
}

// checkOne 探测单个商家的联盟链接
func (m *LinkMonitor) checkOne(ctx context.Context, store *model.Store) {
	status := model.LinkStatusOK

	resp, err := m.client.R().SetContext(ctx).Head(store.AffiliateLink)
	if err != nil || resp.StatusCode() >= 400 {
		status = model.LinkStatusBroken
		if err != nil {
			log.Printf("[LinkMonitor] %s 探测失败: %v", store.Slug, err)
		} else {
			log.Printf("[LinkMonitor] %s 返回异常状态码 %d", store.Slug, resp.StatusCode())
		}
	}

	if err := m.storeRepo.UpdateLinkStatus(ctx, store.ID, status, time.Now()); err != nil {
		log.Printf("[LinkMonitor] 更新 %s 巡检结果失败: %v", store.Slug, err)
	}
}
