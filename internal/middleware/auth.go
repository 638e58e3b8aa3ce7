package middleware

import (
	"strings"

	"lab-document-tracking/internal/auth"
	"lab-document-tracking/internal/authz"
	"lab-document-tracking/internal/domain"
	"lab-document-tracking/internal/errors"

	"github.com/gin-gonic/gin"
)

type UserProvider interface {
	GetUserByID(id uint64) (*domain.User, error)
}

type Auth struct {
	UserService UserProvider
}

// AuthMiddleware verifies the bearer token and attaches the live subject to
// the request context before any protected handler runs.
func (m *Auth) AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.Error(errors.Unauthorized("Sesi tidak ditemukan", nil))
			ctx.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		parsedToken, err := auth.VerifyJWT(token)
		if err != nil {
			ctx.Error(errors.Unauthorized("Sesi tidak valid", err))
			ctx.Abort()
			return
		}

		userID, _, err := auth.GetDataFromToken(parsedToken)
		if err != nil {
			ctx.Error(errors.Unauthorized("Sesi tidak valid", err))
			ctx.Abort()
			return
		}

		// token must still resolve to a live account
		user, err := m.UserService.GetUserByID(userID)
		if err != nil {
			ctx.Error(errors.Unauthorized("Sesi tidak valid", err))
			ctx.Abort()
			return
		}

		ctx.Set("user_id", user.ID)
		ctx.Set("user_email", user.Email)
		ctx.Set("user_role", user.Role)
		ctx.Next()
	}
}

// SuperadminOnly must run after AuthMiddleware. Lacking the role is a
// distinct forbidden error, never an authentication one.
func SuperadminOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role := ctx.GetString("user_role")
		if !authz.CanManageUsers(role) {
			ctx.Error(errors.Forbidden("Akses khusus superadmin", nil))
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
