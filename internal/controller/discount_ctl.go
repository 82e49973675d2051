package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nabtheprice/internal/api/dto"
	"nabtheprice/internal/service"
)

// ==================== DiscountController 折扣码控制器 ====================

// DiscountController 折扣码控制器
type DiscountController struct {
	discountService *service.DiscountService
}

// NewDiscountController 创建折扣码控制器
func NewDiscountController(discountService *service.DiscountService) *DiscountController {
	return &DiscountController{discountService: discountService}
}

// ListByStore 某商家生效中的折扣码，按创建时间倒序
// @Summary 商家折扣码列表
// @Tags Discount
// @Produce json
// @Param id path string true "商家 ID"
// @Success 200 {array} dto.DiscountCodeInfo
// @Router /stores/{id}/discount-codes [get]
func (c *DiscountController) ListByStore(ctx *gin.Context) {
	codes, err := c.discountService.ActiveCodes(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": codes,
	})
}

// Create 新建折扣码，状态强制 Active
// @Summary 新建折扣码
// @Tags Discount
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDiscountCodeRequest true "折扣码信息"
// @Success 200 {object} dto.DiscountCodeInfo
// @Failure 400 {object} map[string]interface{}
// @Router /discount-codes [post]
func (c *DiscountController) Create(ctx *gin.Context) {
	var req dto.CreateDiscountCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "invalid request: " + err.Error(),
		})
		return
	}

	info, err := c.discountService.CreateCode(ctx.Request.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrStoreNotFound) {
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
		"message": "Discount code added successfully!",
		"data":    info,
	})
}
