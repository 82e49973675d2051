package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ==================== 配置 ====================

// StorageConfig 对象存储配置
type StorageConfig struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	CDNDomain string // 可选 CDN 域名
	BasePath  string // 路径前缀，如 logos
}

// Enabled 是否配置了存储
func (c *StorageConfig) Enabled() bool {
	return c != nil && c.Bucket != ""
}

// ==================== StorageService 存储服务 ====================

// StorageService Logo 上传走 S3，返回可公开访问的 URL
// 未配置时整个服务为 nil，调用方需判空（Logo 仍可直接填外链 URL）
type StorageService struct {
	client *s3.Client
	config *StorageConfig
}

// NewStorageService 创建存储服务
func NewStorageService(cfg *StorageConfig) (*StorageService, error) {
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %w", err)
	}

	return &StorageService{
		client: s3.NewFromConfig(awsCfg),
		config: cfg,
	}, nil
}

// UploadLogo 上传商家 Logo，返回公开 URL
func (s *StorageService) UploadLogo(ctx context.Context, data []byte, filename string) (string, error) {
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("只支持图片文件，收到 %s", contentType)
	}

	key := s.generateKey(filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("上传S3失败: %w", err)
	}

	return s.publicURL(key), nil
}

// generateKey 生成对象 Key：前缀/日期/uuid.后缀
func (s *StorageService) generateKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := uuid.NewString() + ext
	datePath := time.Now().Format("2006/01")

	if s.config.BasePath != "" {
		return path.Join(s.config.BasePath, datePath, name)
	}
	return path.Join(datePath, name)
}

func (s *StorageService) publicURL(key string) string {
	if s.config.CDNDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.config.CDNDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.Bucket, s.config.Region, key)
}
