package service

import (
	"context"
	"time"
)

// VideoEventPublisher 视频变更事件发布（搜索索引同步）
type VideoEventPublisher interface {
	PublishVideoEvent(ctx context.Context, eventType string, videoID int64) error
}

// TokenStore 刷新令牌与吊销列表存储
type TokenStore interface {
	SaveRefresh(ctx context.Context, userID int64, token string, ttl time.Duration) error
	GetRefresh(ctx context.Context, userID int64) (string, error)
	DeleteRefresh(ctx context.Context, userID int64) error
	RevokeAccess(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

func totalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}
