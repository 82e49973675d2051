package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"nabtheprice/internal/api/dto"
	"nabtheprice/internal/service"
)

// Logo 上传大小上限 2MB
const maxLogoSize = 2 << 20

// ==================== StoreController 商家控制器 ====================

// StoreController 商家控制器
type StoreController struct {
	storeService *service.StoreService
	storage      *service.StorageService // 可能为 nil（未配置对象存储）
}

// NewStoreController 创建商家控制器
func NewStoreController(storeService *service.StoreService, storage *service.StorageService) *StoreController {
	return &StoreController{storeService: storeService, storage: storage}
}

// GetList 全部商家（后台列表）
// @Summary 全部商家
// @Tags Store
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.StoreInfo
// @Router /stores [get]
func (c *StoreController) GetList(ctx *gin.Context) {
	stores, err := c.storeService.ListStores(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": stores,
	})
}

// GetTrending 首页热门商家
// @Summary 首页热门商家
// @Tags Store
// @Produce json
// @Success 200 {array} dto.StoreInfo
// @Router /stores/trending [get]
func (c *StoreController) GetTrending(ctx *gin.Context) {
	stores, err := c.storeService.TrendingStores(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": stores,
	})
}

// GetBySlug 按 slug 查商家
// @Summary 按 slug 查商家
// @Tags Store
// @Produce json
// @Param slug path string true "商家 slug"
// @Success 200 {object} dto.StoreInfo
// @Failure 404 {object} map[string]interface{}
// @Router /stores/slug/{slug} [get]
func (c *StoreController) GetBySlug(ctx *gin.Context) {
	store, err := c.storeService.GetBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}
	if store == nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"code":    404,
			"message": "store not found",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": store,
	})
}

// Create 新建商家
// @Summary 新建商家
// @Tags Store
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStoreRequest true "商家信息"
// @Success 200 {object} dto.StoreInfo
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /stores [post]
func (c *StoreController) Create(ctx *gin.Context) {
	var req dto.CreateStoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "invalid request: " + err.Error(),
		})
		return
	}

	info, err := c.storeService.CreateStore(ctx.Request.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrSlugExists):
			status = http.StatusConflict
		case errors.Is(err, service.ErrInvalidSlug):
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{
			"code":    status,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "Store added successfully!",
		"data":    info,
	})
}

// UploadLogo 上传商家 Logo，返回可填入 logo_url 的公开地址
// @Summary 上传商家 Logo
// @Tags Store
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Logo 图片"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /stores/logo [post]
func (c *StoreController) UploadLogo(ctx *gin.Context) {
	if c.storage == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    503,
			"message": "object storage is not configured",
		})
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "missing file: " + err.Error(),
		})
		return
	}
	if fileHeader.Size > maxLogoSize {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "logo file too large (max 2MB)",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	url, err := c.storage.UploadLogo(ctx.Request.Context(), data, fileHeader.Filename)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": gin.H{"url": url},
	})
}
