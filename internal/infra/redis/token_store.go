package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	refreshKeyPrefix = "auth:refresh:"
	revokedKeyPrefix = "auth:revoked:"
)

// TokenStore 基于 Redis 的令牌存储：当前刷新令牌 + 已吊销的访问令牌 ID
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// SaveRefresh 保存用户当前的刷新令牌，覆盖旧值
func (s *TokenStore) SaveRefresh(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, refreshKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// GetRefresh 获取用户当前的刷新令牌，不存在时返回空串
func (s *TokenStore) GetRefresh(ctx context.Context, userID int64) (string, error) {
	token, err := s.client.Get(ctx, refreshKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get refresh token: %w", err)
	}
	return token, nil
}

// DeleteRefresh 删除用户的刷新令牌
func (s *TokenStore) DeleteRefresh(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, refreshKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

// RevokeAccess 吊销访问令牌直到其过期
func (s *TokenStore) RevokeAccess(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}
	return nil
}

// IsRevoked 访问令牌是否已吊销
func (s *TokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

func refreshKey(userID int64) string {
	return fmt.Sprintf("%s%d", refreshKeyPrefix, userID)
}
