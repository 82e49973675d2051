package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== 配置 ====================

// MailerConfig 邮件投递配置
// 走 HTTP 投递服务（Mailgun 风格的 messages 接口），不直连 SMTP
type MailerConfig struct {
	APIBase string // 形如 https://api.mailgun.net/v3/<domain>
	APIKey  string
	From    string // 发件人，如 NabThePrice <no-reply@nabtheprice.com>
	Timeout time.Duration
}

// ==================== MailerService 邮件服务 ====================

// MailerService 邮件服务
// 未配置 APIBase 时退化为只打日志（本地开发用，重置链接直接看日志）
type MailerService struct {
	config *MailerConfig
	client *resty.Client
}

// NewMailerService 创建邮件服务
func NewMailerService(cfg *MailerConfig) *MailerService {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetBasicAuth("api", cfg.APIKey)

	return &MailerService{config: cfg, client: client}
}

// SendPasswordReset 发送密码重置邮件
func (s *MailerService) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	subject := "Reset your NabThePrice password"
	body := fmt.Sprintf(
		"We received a request to reset the password for your admin account.\n\n"+
			"Open the link below to choose a new password. The link expires in one hour.\n\n%s\n\n"+
			"If you did not request this, you can ignore this email.",
		resetURL,
	)
	return s.send(ctx, to, subject, body)
}

func (s *MailerService) send(ctx context.Context, to, subject, body string) error {
	if s.config.APIBase == "" {
		log.Printf("[Mailer] 未配置投递服务，邮件只打日志: to=%s subject=%q\n%s", to, subject, body)
		return nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"from":    s.config.From,
			"to":      to,
			"subject": subject,
			"text":    body,
		}).
		Post(s.config.APIBase + "/messages")

	if err != nil {
		return fmt.Errorf("邮件请求发送失败: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("投递服务拒绝 (Status %d): %s", resp.StatusCode(), resp.String())
	}
	return nil
}
