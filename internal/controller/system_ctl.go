package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ==================== SystemController 系统信息 ====================

// AppInfo 应用元信息，后台设置页展示
type AppInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
}

// SystemController 系统信息控制器
type SystemController struct {
	info AppInfo
}

// NewSystemController 创建系统信息控制器
func NewSystemController(info AppInfo) *SystemController {
	return &SystemController{info: info}
}

// Health 存活探针 + 应用元信息
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} AppInfo
// @Router /health [get]
func (c *SystemController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": c.info,
	})
}
