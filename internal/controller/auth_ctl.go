package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"nabtheprice/internal/api/dto"
	"nabtheprice/internal/middleware"
	"nabtheprice/internal/service"
)

// ==================== AuthController 认证控制器 ====================

// AuthController 认证控制器
type AuthController struct {
	gateway service.SessionGateway
}

// NewAuthController 创建认证控制器
func NewAuthController(gateway service.SessionGateway) *AuthController {
	return &AuthController{gateway: gateway}
}

// Login 管理员登录
// @Summary 管理员登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "invalid request: " + err.Error(),
		})
		return
	}

	resp, err := c.gateway.Login(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": err.Error(),
		})
		return
	}

	// 页面端靠 HttpOnly Cookie 维持会话
	cfg := middleware.GetJWTConfig()
	ctx.SetCookie(middleware.SessionCookieName, resp.AccessToken,
		int(cfg.AccessTokenTTL.Seconds()), "/", "", false, true)

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "login successful",
		"data":    resp,
	})
}

// Logout 退出登录
// @Summary 退出登录
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	// Token 无状态，登出即清掉 Cookie
	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "logged out",
	})
}

// Profile 当前会话用户
// 无会话不是错误，data 为 null，前端据此跳转登录页
// @Summary 当前会话用户
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.UserInfo
// @Router /auth/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	user, err := c.gateway.CurrentUser(ctx.Request.Context(), sessionToken(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"code":    500,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": user,
	})
}

// RefreshToken 刷新 Token
// @Summary 刷新 Token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "invalid request: " + err.Error(),
		})
		return
	}

	resp, err := c.gateway.RefreshToken(ctx.Request.Context(), &req)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "refreshed",
		"data":    resp,
	})
}

// RequestPasswordReset 申请密码重置（发邮件）
// @Summary 申请密码重置
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ResetRequestRequest true "邮箱"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /auth/reset-password [post]
func (c *AuthController) RequestPasswordReset(ctx *gin.Context) {
	var req dto.ResetRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "invalid request: " + err.Error(),
		})
		return
	}

	if err := c.gateway.RequestPasswordReset(ctx.Request.Context(), req.Email, requestOrigin(ctx)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "Password reset instructions sent to your email!",
	})
}

// CompletePasswordReset 凭邮件 Token 完成密码重置
// @Summary 完成密码重置
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "重置信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /auth/password [put]
func (c *AuthController) CompletePasswordReset(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": "invalid request: " + err.Error(),
		})
		return
	}

	if err := c.gateway.CompletePasswordReset(ctx.Request.Context(), &req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"code":    400,
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "Password updated, you can sign in now.",
	})
}

// ==================== 辅助 ====================

// sessionToken 从请求里取会话 Token（Bearer 或 Cookie）
func sessionToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	cookie, err := ctx.Cookie(middleware.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie
}

// requestOrigin 重置链接的站点来源：优先 Origin Header，退回 Host
func requestOrigin(ctx *gin.Context) string {
	if origin := ctx.GetHeader("Origin"); origin != "" {
		return origin
	}
	scheme := "http"
	if ctx.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, ctx.Request.Host)
}
