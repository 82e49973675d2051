package service

import "errors"

// 服务层哨兵错误，message 会原样展示给前台用户
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("account is disabled")
	ErrUserNotFound       = errors.New("no user found with this email")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrSlugExists    = errors.New("a store with this slug already exists")
	ErrInvalidSlug   = errors.New("slug may only contain letters, digits and hyphens")
	ErrStoreNotFound = errors.New("store not found")
)
