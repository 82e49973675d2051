package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"nabtheprice/internal/controller"
	"nabtheprice/internal/middleware"
	"nabtheprice/internal/model"
	"nabtheprice/internal/repository"
	"nabtheprice/internal/router"
	"nabtheprice/internal/service"
	"nabtheprice/internal/task"
	"nabtheprice/pkg/database"
)

// 构建时通过 -ldflags 注入
var (
	version     = "1.0.0"
	environment = "production"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 种子管理员（库里没有任何管理员时才生效）
	bootstrapAdmin(deps.Services.Auth)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由
	r := router.SetupRouter(deps.Controllers, getEnv("TEMPLATE_GLOB", "web/templates/*.html"))

	// 6. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Store    repository.StoreRepository
	Discount repository.DiscountCodeRepository
	User     repository.UserRepository
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	Store    *service.StoreService
	Discount *service.DiscountService
	Mailer   *service.MailerService
	Storage  *service.StorageService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=nab password=nab dbname=nabtheprice port=5432 sslmode=disable")

	return database.InitDB(dsn,
		&model.AdminUser{},
		&model.Store{},
		&model.DiscountCode{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- JWT 配置 --------
	jwtCfg := middleware.DefaultJWTConfig()
	jwtCfg.SecretKey = getEnv("JWT_SECRET", jwtCfg.SecretKey)
	middleware.SetJWTConfig(jwtCfg)

	// -------- Repo 层 --------
	repos := &Repositories{
		Store:    repository.NewStoreRepository(db),
		Discount: repository.NewDiscountCodeRepository(db),
		User:     repository.NewUserRepository(db),
	}

	// -------- 基础服务 --------
	mailer := service.NewMailerService(&service.MailerConfig{
		APIBase: getEnv("MAIL_API_BASE", ""),
		APIKey:  getEnv("MAIL_API_KEY", ""),
		From:    getEnv("MAIL_FROM", "NabThePrice <no-reply@nabtheprice.com>"),
	})

	storageSvc := initStorageService()

	svcs := &Services{
		Auth:     service.NewAuthService(repos.User, mailer),
		Store:    service.NewStoreService(repos.Store, repos.Discount),
		Discount: service.NewDiscountService(repos.Discount, repos.Store),
		Mailer:   mailer,
		Storage:  storageSvc,
	}

	// -------- 控制器 --------
	ctls := &router.Controllers{
		Auth:     controller.NewAuthController(svcs.Auth),
		Store:    controller.NewStoreController(svcs.Store, svcs.Storage),
		Discount: controller.NewDiscountController(svcs.Discount),
		Page:     controller.NewPageController(svcs.Store, svcs.Discount),
		System: controller.NewSystemController(controller.AppInfo{
			Version:     version,
			Environment: environment,
			Database:    "PostgreSQL",
		}),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    svcs,
		Controllers: ctls,
	}
}

// initStorageService 初始化对象存储，未配置返回 nil
func initStorageService() *service.StorageService {
	cfg := &service.StorageConfig{
		Bucket:    getEnv("S3_BUCKET", ""),
		Region:    getEnv("S3_REGION", "us-east-1"),
		AccessKey: getEnv("S3_ACCESS_KEY", ""),
		SecretKey: getEnv("S3_SECRET_KEY", ""),
		CDNDomain: getEnv("S3_CDN_DOMAIN", ""),
		BasePath:  getEnv("S3_BASE_PATH", "logos"),
	}

	if !cfg.Enabled() {
		log.Println("[Storage] 未配置对象存储，Logo 上传接口不可用")
		return nil
	}

	svc, err := service.NewStorageService(cfg)
	if err != nil {
		log.Printf("[Storage] 初始化失败，Logo 上传接口不可用: %v", err)
		return nil
	}
	return svc
}

// bootstrapAdmin 启动时种子管理员
func bootstrapAdmin(auth *service.AuthService) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := getEnv("ADMIN_EMAIL", "")
	password := getEnv("ADMIN_PASSWORD", "")
	if err := auth.Bootstrap(ctx, email, password); err != nil {
		log.Fatalf("初始管理员创建失败: %v", err)
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 折扣码过期巡检
	expiryTask := task.NewCodeExpiryTask(deps.Services.Discount)
	expiryTask.Start()

	// 联盟链接巡检
	linkMonitor := task.NewLinkMonitor(deps.Repos.Store)
	linkMonitor.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(handler http.Handler) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: handler,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

// getEnv 读取环境变量，空值用默认值
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
