package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey       string        // 签名密钥
	AccessTokenTTL  time.Duration // Access Token 有效期
	RefreshTokenTTL time.Duration // Refresh Token 有效期
	ResetTokenTTL   time.Duration // 密码重置 Token 有效期
	Issuer          string        // 签发者
}

// DefaultJWTConfig 默认配置
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		SecretKey:       "nabtheprice-secret-key-change-in-production",
		AccessTokenTTL:  2 * time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		ResetTokenTTL:   time.Hour,
		Issuer:          "nabtheprice",
	}
}

// 全局配置
var jwtConfig = DefaultJWTConfig()

// SetJWTConfig 设置 JWT 配置
func SetJWTConfig(cfg *JWTConfig) {
	jwtConfig = cfg
}

// GetJWTConfig 获取 JWT 配置
func GetJWTConfig() *JWTConfig {
	return jwtConfig
}

// ==================== Claims 定义 ====================

// SessionClaims 会话声明
type SessionClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Token 用途，放在 RegisteredClaims.Subject 里区分
const (
	SubjectAccess  = "access"
	SubjectRefresh = "refresh"
	SubjectReset   = "reset"
)

// ==================== Token 生成 ====================

func generateToken(userID, email, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtConfig.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtConfig.SecretKey))
}

// GenerateAccessToken 生成 Access Token
func GenerateAccessToken(userID, email string) (string, error) {
	return generateToken(userID, email, SubjectAccess, jwtConfig.AccessTokenTTL)
}

// GenerateRefreshToken 生成 Refresh Token
func GenerateRefreshToken(userID, email string) (string, error) {
	return generateToken(userID, email, SubjectRefresh, jwtConfig.RefreshTokenTTL)
}

// GenerateResetToken 生成密码重置 Token（邮件链接里带的那个）
func GenerateResetToken(userID, email string) (string, error) {
	return generateToken(userID, email, SubjectReset, jwtConfig.ResetTokenTTL)
}

// GenerateTokenPair 生成 Token 对
func GenerateTokenPair(userID, email string) (accessToken, refreshToken string, err error) {
	accessToken, err = GenerateAccessToken(userID, email)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = GenerateRefreshToken(userID, email)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ==================== Token 解析 ====================

// ParseToken 解析 Token
func ParseToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(jwtConfig.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "email"
	ContextKeyClaims = "claims"
)

// 会话 Cookie 名，页面端用 Cookie，API 也支持 Bearer Header
const SessionCookieName = "nab_session"

// tokenFromRequest 先取 Authorization Header，退回到会话 Cookie
func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie
}

// SessionAuth API 会话认证中间件
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "authentication required",
			})
			c.Abort()
			return
		}

		claims, err := ParseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "invalid or expired session",
			})
			c.Abort()
			return
		}

		// 只接受 Access Token，reset/refresh 不能当会话用
		if claims.Subject != SubjectAccess {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "invalid token type",
			})
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyClaims, claims)

		c.Next()
	}
}

// PageSession 页面会话门禁，未登录直接 302 到登录页
func PageSession(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString != "" {
			if claims, err := ParseToken(tokenString); err == nil && claims.Subject == SubjectAccess {
				c.Set(ContextKeyUserID, claims.UserID)
				c.Set(ContextKeyEmail, claims.Email)
				c.Next()
				return
			}
		}

		c.Redirect(http.StatusFound, loginPath)
		c.Abort()
	}
}

// ==================== Context 取值辅助 ====================

// GetUserID 从 Context 获取当前用户 ID
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

// GetEmail 从 Context 获取当前用户邮箱
func GetEmail(c *gin.Context) string {
	return c.GetString(ContextKeyEmail)
}
