package middleware

import (
	"context"
	"strings"
	"time"

	"vidtube/internal/api/response"
	"vidtube/pkg/logger"
	"vidtube/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextKeyUserID      = "currentUserID"
	ContextKeyTokenID     = "currentTokenID"
	ContextKeyTokenExpiry = "currentTokenExpiry"

	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// RevocationChecker 查询访问令牌是否已被吊销
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthRequired JWT 认证中间件，令牌来自 Authorization 头或 accessToken cookie
func AuthRequired(revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "Unauthorized request")
			c.Abort()
			return
		}

		claims, err := utils.ParseAccessToken(token)
		if err != nil {
			response.Unauthorized(c, "Invalid access token")
			c.Abort()
			return
		}

		if revoked != nil && claims.ID != "" {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// 吊销列表不可用时放行，令牌本身仍有过期时间兜底
				logger.Warn("Check token revocation failed", zap.Error(err))
			} else if isRevoked {
				response.Unauthorized(c, "Invalid access token")
				c.Abort()
				return
			}
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(ContextKeyTokenExpiry, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

// GetCurrentUserID 从 Gin Context 中获取当前登录用户 ID
func GetCurrentUserID(c *gin.Context) (int64, bool) {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := val.(int64)
	return userID, ok
}

// GetCurrentToken 当前访问令牌的 jti 和过期时间
func GetCurrentToken(c *gin.Context) (string, time.Time) {
	jti := c.GetString(ContextKeyTokenID)
	exp, _ := c.Get(ContextKeyTokenExpiry)
	expiresAt, _ := exp.(time.Time)
	return jti, expiresAt
}

func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}
