package middleware

import (
	"net/http"
	"strings"

	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/infrastructure/auth"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const (
	// ActorKey is the gin context key the authenticated actor is stored under
	ActorKey = "actor"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// AuthConfig holds configuration for the JWT auth middleware
type AuthConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
}

// DefaultAuthConfig returns the default auth middleware configuration
func DefaultAuthConfig(jwtService *auth.JWTService) AuthConfig {
	return AuthConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
		},
	}
}

// Auth validates the bearer token and attaches the resulting actor to the
// request context. Repository reads downstream scope themselves to this
// actor; requests without a valid token never reach a handler.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(authHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Token validation failed")
			return
		}
		actor, err := claims.Actor()
		if err != nil {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		ctx := identity.WithActor(c.Request.Context(), actor)
		ctx, _ = logger.WithOwnerID(ctx, logger.FromContext(ctx), actor.OwnerID.String())
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), actor.UserID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Set(ActorKey, actor)

		c.Next()
	}
}

// GetActor retrieves the authenticated actor from the gin context
func GetActor(c *gin.Context) (identity.Actor, bool) {
	value, exists := c.Get(ActorKey)
	if !exists {
		return identity.Actor{}, false
	}
	actor, ok := value.(identity.Actor)
	return actor, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	requestID := c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message, requestID))
}
