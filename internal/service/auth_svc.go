package service

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"nabtheprice/internal/api/dto"
	"nabtheprice/internal/middleware"
	"nabtheprice/internal/model"
	"nabtheprice/internal/repository"
)

// ==================== SessionGateway 会话网关 ====================

// SessionGateway 会话网关接口
// 受保护的页面/接口只依赖这个接口，测试里可以替换成假实现
type SessionGateway interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error)
	CurrentUser(ctx context.Context, token string) (*dto.UserInfo, error)
	RequestPasswordReset(ctx context.Context, email, origin string) error
	CompletePasswordReset(ctx context.Context, req *dto.ResetPasswordRequest) error
}

// ==================== AuthService 认证服务 ====================

// AuthService 认证服务，SessionGateway 的数据库实现
type AuthService struct {
	userRepo repository.UserRepository
	mailer   *MailerService
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo repository.UserRepository, mailer *MailerService) *AuthService {
	return &AuthService{userRepo: userRepo, mailer: mailer}
}

var _ SessionGateway = (*AuthService)(nil)

// Login 管理员登录
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	// 更新最后登录时间，失败不影响登录
	_ = s.userRepo.UpdateLastLogin(ctx, user.ID)

	cfg := middleware.GetJWTConfig()
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
		User:         toUserInfo(user),
	}, nil
}

// RefreshToken 刷新 Token
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	claims, err := middleware.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.Subject != middleware.SubjectRefresh {
		return nil, ErrInvalidToken
	}

	// 确认用户仍然有效
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrUserDisabled
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
	}, nil
}

// CurrentUser 用 Token 查当前会话用户，无会话返回 nil 而不是错误
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*dto.UserInfo, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := middleware.ParseToken(token)
	if err != nil || claims.Subject != middleware.SubjectAccess {
		return nil, nil
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, nil
	}

	return toUserInfo(user), nil
}

// RequestPasswordReset 申请密码重置
// 生成一小时有效的重置 Token，拼上来源站点的登录路径后发邮件
func (s *AuthService) RequestPasswordReset(ctx context.Context, email, origin string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	token, err := middleware.GenerateResetToken(user.ID, user.Email)
	if err != nil {
		return err
	}

	resetURL := origin + "/login?reset_token=" + token
	return s.mailer.SendPasswordReset(ctx, user.Email, resetURL)
}

// CompletePasswordReset 凭邮件里的重置 Token 改密码
func (s *AuthService) CompletePasswordReset(ctx context.Context, req *dto.ResetPasswordRequest) error {
	claims, err := middleware.ParseToken(req.Token)
	if err != nil || claims.Subject != middleware.SubjectReset {
		return ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, string(hashedPassword))
}

// Bootstrap 启动时种子管理员
// 库里一个管理员都没有时才创建，替代原来在托管后台手工建号的流程
func (s *AuthService) Bootstrap(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.AdminUser{
		Email:    email,
		Password: string(hashedPassword),
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	log.Printf("[Auth] 已创建初始管理员: %s", email)
	return nil
}

func toUserInfo(user *model.AdminUser) *dto.UserInfo {
	return &dto.UserInfo{
		ID:          user.ID,
		Email:       user.Email,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
