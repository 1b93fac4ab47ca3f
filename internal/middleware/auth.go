package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JonnyWalker81/nutrisense/backend/internal/apierror"
	"github.com/JonnyWalker81/nutrisense/backend/internal/logger"
	"github.com/JonnyWalker81/nutrisense/backend/pkg/supabase"
)

// TokenVerifier resolves a bearer token to a user
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*supabase.User, error)
}

// Auth middleware to verify JWT tokens
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.FromContext(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Debug("authentication failed: missing authorization header")
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			log.Debug("authentication failed: invalid authorization format")
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			return
		}

		token := parts[1]

		user, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			log.Warn("authentication failed: token verification error", logger.Err(err))
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			return
		}

		setUser(c, user.ID)
		c.Set("user_email", user.Email)

		// Repository calls run under the caller's JWT so row-level security applies
		ctx := supabase.WithUserToken(c.Request.Context(), token)
		c.Request = c.Request.WithContext(ctx)

		log.Debug("authentication successful", logger.String("user_id", user.ID))

		c.Next()
	}
}

// DevAuth trusts the X-User-ID header, falling back to defaultUser.
// Only for the local SQLite driver; never mount it in front of Supabase.
func DevAuth(defaultUser string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-ID"))
		if userID == "" {
			userID = defaultUser
		}
		if userID == "" {
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			return
		}
		setUser(c, userID)
		c.Next()
	}
}

func setUser(c *gin.Context, userID string) {
	c.Set("user_id", userID)
	ctx := logger.WithUserID(c.Request.Context(), userID)
	c.Request = c.Request.WithContext(ctx)
}
