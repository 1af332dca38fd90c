package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"job_assessment_backend/internal/model"
	"job_assessment_backend/internal/util"
	"job_assessment_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticator 校验令牌并返回仍然存在的用户
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*util.Claims, *model.User, error)
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")); token != "" && token != h {
			return token
		}
	}
	return c.Query("token")
}

// AuthMiddleware 角色以数据库中的用户为准，而不是令牌里的声明
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			util.Error(c, http.StatusUnauthorized, "No token, authorization denied")
			c.Abort()
			return
		}

		claims, user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, util.ErrInvalidToken) {
				logger.Log.Debug("authentication failed", zap.Error(err))
				util.Error(c, http.StatusUnauthorized, util.ErrInvalidToken.Message)
			} else {
				util.LogInternalError(c, err)
			}
			c.Abort()
			return
		}

		c.Set(util.ContextUserKey, claims)
		c.Set(util.ContextRoleKey, user.Role)
		c.Next()
	}
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if util.GetUserFromContext(c) == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		role := util.CurrentRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		util.Forbidden(c)
		c.Abort()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(ctx context.Context, userID string) error
}

func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims := util.GetUserFromContext(c); claims != nil {
			// 异步更新，不阻塞主流程
			go func(userID string) {
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				if err := repo.UpdateLastSeen(ctx, userID); err != nil {
					logger.Log.Debug("update last seen failed", zap.String("userId", userID), zap.Error(err))
				}
			}(claims.UserID)
		}
		c.Next()
	}
}
