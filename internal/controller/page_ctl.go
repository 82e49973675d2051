package controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"nabtheprice/internal/api/dto"
	"nabtheprice/internal/middleware"
	"nabtheprice/internal/service"
)

// ==================== PageController 页面控制器 ====================

// PageController 服务端渲染页面
// 读路径失败一律降级为空列表渲染，只在服务端打日志，页面不报错
type PageController struct {
	storeService    *service.StoreService
	discountService *service.DiscountService
}

// NewPageController 创建页面控制器
func NewPageController(storeService *service.StoreService, discountService *service.DiscountService) *PageController {
	return &PageController{storeService: storeService, discountService: discountService}
}

// Home 首页：热门商家 + 搜索框
func (c *PageController) Home(ctx *gin.Context) {
	stores, err := c.storeService.TrendingStores(ctx.Request.Context())
	if err != nil {
		log.Printf("[Page] 热门商家查询失败: %v", err)
		stores = []dto.StoreInfo{}
	}

	ctx.HTML(http.StatusOK, "home.html", gin.H{
		"Title":  "NabThePrice - Find the Best Discount Codes & Deals",
		"Stores": stores,
	})
}

// Search 搜索框提交：不校验存在性，小写后直接跳转商家页，
// 不存在的 slug 由商家页渲染"未找到"状态
func (c *PageController) Search(ctx *gin.Context) {
	query := service.NormalizeSlug(ctx.Query("q"))
	if query == "" {
		ctx.Redirect(http.StatusFound, "/")
		return
	}
	ctx.Redirect(http.StatusFound, "/store/"+query)
}

// StoreDetail 商家页：商家信息 + 生效中的折扣码
// 未找到商家是正常状态，渲染带返回首页入口的提示页
func (c *PageController) StoreDetail(ctx *gin.Context) {
	slug := ctx.Param("slug")

	store, err := c.storeService.GetBySlug(ctx.Request.Context(), slug)
	if err != nil {
		log.Printf("[Page] 商家查询失败 slug=%s: %v", slug, err)
	}
	if store == nil {
		ctx.HTML(http.StatusOK, "store.html", gin.H{
			"Title": "Store not found - NabThePrice",
		})
		return
	}

	codes, err := c.discountService.ActiveCodes(ctx.Request.Context(), store.ID)
	if err != nil {
		log.Printf("[Page] 折扣码查询失败 store=%s: %v", store.ID, err)
		codes = []dto.DiscountCodeInfo{}
	}

	ctx.HTML(http.StatusOK, "store.html", gin.H{
		"Title": store.Name + " Discount Codes - NabThePrice",
		"Store": store,
		"Codes": codes,
	})
}

// Login 登录页（登录/重置两种模式由页面内切换）
func (c *PageController) Login(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", gin.H{
		"Title": "Admin Login - NabThePrice",
	})
}

// Admin 后台页，挂在 PageSession 门禁后面
func (c *PageController) Admin(ctx *gin.Context) {
	stores, err := c.storeService.ListStores(ctx.Request.Context())
	if err != nil {
		log.Printf("[Page] 商家列表查询失败: %v", err)
		stores = []dto.StoreInfo{}
	}

	ctx.HTML(http.StatusOK, "admin.html", gin.H{
		"Title":  "Admin Panel - NabThePrice",
		"Email":  middleware.GetEmail(ctx),
		"Stores": stores,
	})
}
