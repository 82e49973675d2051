package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"nabtheprice/internal/service"
)

// CodeExpiryTask 折扣码过期巡检任务
// 把 expires_at 已过的 Active 折扣码批量置为 Expired
type CodeExpiryTask struct {
	discountService *service.DiscountService
	Cron            *cron.Cron
}

// NewCodeExpiryTask 创建过期巡检任务
func NewCodeExpiryTask(discountService *service.DiscountService) *CodeExpiryTask {
	return &CodeExpiryTask{
		discountService: discountService,
		Cron:            cron.New(cron.WithSeconds()),
	}
}

// Start 启动任务，先立即跑一次再进入定时
func (t *CodeExpiryTask) Start() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.Execute(ctx)
	}()

	// 策略：每 10 分钟扫一次
	_, err := t.Cron.AddFunc("0 0/10 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		t.Execute(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动 CodeExpiryTask: %v", err)
	}

	t.Cron.Start()
	log.Println("CodeExpiryTask 已启动 (每10分钟检查一次)")
}

// Stop 停止任务
func (t *CodeExpiryTask) Stop() {
	t.Cron.Stop()
}

// Execute 执行一次过期扫描
func (t *CodeExpiryTask) Execute(ctx context.Context) {
	expired, err := t.discountService.ExpireDue(ctx)
	if err != nil {
		log.Printf("[CodeExpiry] 过期扫描失败: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("[CodeExpiry] 已过期 %d 个折扣码", expired)
	}
}
