package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTokenRoundTrip(t *testing.T) {
	access, refresh, err := GenerateTokenPair("u-1", "admin@nabtheprice.com")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	claims, err := ParseToken(access)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "admin@nabtheprice.com" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Subject != SubjectAccess {
		t.Errorf("subject = %s, want access", claims.Subject)
	}

	claims, err = ParseToken(refresh)
	if err != nil || claims.Subject != SubjectRefresh {
		t.Errorf("refresh subject = %v, err = %v", claims, err)
	}

	if _, err := ParseToken("not-a-token"); err == nil {
		t.Error("非法 Token 应解析失败")
	}
}

func TestSessionAuth_RejectsResetToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", SessionAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": GetEmail(c)})
	})

	// reset Token 不能当会话用
	reset, _ := GenerateResetToken("u-1", "admin@nabtheprice.com")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+reset)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	// Access Token 正常放行，Cookie 方式也可以
	access, _ := GenerateAccessToken("u-1", "admin@nabtheprice.com")
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: access})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestPageSession_Redirects(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/admin", PageSession("/login"), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Errorf("status = %d location = %s, want 302 /login", w.Code, w.Header().Get("Location"))
	}
}
