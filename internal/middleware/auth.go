package middleware

import (
	"bible_trivia_backend/internal/config"
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/util"
	"bible_trivia_backend/pkg/logger"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// tokenFromRequest prefers the Authorization header and falls back to the cookie.
func tokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		scheme, token, found := strings.Cut(authHeader, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie(util.AccessTokenCookie); err == nil {
		return strings.TrimPrefix(cookie, "Bearer ")
	}
	return ""
}

// UserResolver loads the stored account behind a token.
type UserResolver interface {
	CurrentUser(ctx context.Context, claims *util.Claims) (*model.User, error)
}

// AuthMiddleware verifies the token and reloads its user on every request, so
// role changes and deletions apply to tokens that are already issued.
func AuthMiddleware(cfg *config.JWTConfig, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			util.RespondError(c, util.ErrInvalidToken)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.Secret)
		if err != nil {
			logger.Log.Debug("rejected bearer token", zap.Error(err))
			util.RespondError(c, util.ErrInvalidToken)
			c.Abort()
			return
		}

		user, err := users.CurrentUser(c.Request.Context(), claims)
		if err != nil {
			util.RespondError(c, err)
			c.Abort()
			return
		}
		claims.UserID = user.ID
		claims.Role = user.Role

		c.Set("user", claims)
		c.Next()
	}
}

// ByUser keys rate limits on the authenticated username, falling back to the client IP.
func ByUser(c *gin.Context) string {
	if claims := util.GetUserFromContext(c); claims != nil {
		return "user:" + claims.Username()
	}
	return "ip:" + c.ClientIP()
}

// OptionalAuth attaches claims when a valid token is present and never rejects.
func OptionalAuth(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := tokenFromRequest(c); tokenString != "" {
			if claims, err := util.ParseJWT(tokenString, cfg.Secret); err == nil {
				c.Set("user", claims)
			}
		}
		c.Next()
	}
}
