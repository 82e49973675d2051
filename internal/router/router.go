package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"nabtheprice/internal/controller"
	"nabtheprice/internal/middleware"
)

// Controllers 控制器集合
type Controllers struct {
	Auth     *controller.AuthController
	Store    *controller.StoreController
	Discount *controller.DiscountController
	Page     *controller.PageController
	System   *controller.SystemController
}

// SetupRouter 注册所有路由
// templateGlob 是页面模板目录，如 web/templates/*.html
func SetupRouter(ctls *Controllers, templateGlob string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if templateGlob != "" {
		r.LoadHTMLGlob(templateGlob)
		r.Static("/static", "web/static")
	}

	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 页面路由
	r.GET("/", ctls.Page.Home)
	r.GET("/search", ctls.Page.Search)
	r.GET("/store/:slug", ctls.Page.StoreDetail)
	r.GET("/login", ctls.Page.Login)
	// 后台页未登录直接 302 到 /login
	r.GET("/admin", middleware.PageSession("/login"), ctls.Page.Admin)

	// 3. API 路由组
	api := r.Group("/api")
	{
		api.GET("/health", ctls.System.Health)

		// auth 鉴权组
		auth := api.Group("/auth")
		{
			auth.POST("/login", ctls.Auth.Login)
			auth.POST("/logout", ctls.Auth.Logout)
			auth.GET("/profile", ctls.Auth.Profile)
			auth.POST("/refresh", ctls.Auth.RefreshToken)
			auth.POST("/reset-password", ctls.Auth.RequestPasswordReset)
			auth.PUT("/password", ctls.Auth.CompletePasswordReset)
		}

		// store 商家组
		stores := api.Group("/stores")
		{
			// 公开读
			stores.GET("/trending", ctls.Store.GetTrending)
			stores.GET("/slug/:slug", ctls.Store.GetBySlug)
			stores.GET("/:id/discount-codes", ctls.Discount.ListByStore)

			// 登录后才能读后台列表和写入
			stores.GET("", middleware.SessionAuth(), ctls.Store.GetList)
			stores.POST("", middleware.SessionAuth(), ctls.Store.Create)
			stores.POST("/logo", middleware.SessionAuth(), ctls.Store.UploadLogo)
		}

		// discount 折扣码组
		api.POST("/discount-codes", middleware.SessionAuth(), ctls.Discount.Create)
	}

	return r
}
