package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/packhouse/internal/domain/models"
	"github.com/mamadbah2/packhouse/internal/service/permission"
	"github.com/mamadbah2/packhouse/internal/store"
)

// Authenticate resolves the X-User-ID header against the store.
func Authenticate(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(UserHeader)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + UserHeader + " header"})
			return
		}
		user, err := s.User(id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireView aborts with 403 unless the caller may open view.
func RequireView(view models.ViewID) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !permission.CanAccess(user, view) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access to " + string(view) + " denied"})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the caller is an administrator.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "administrator role required"})
			return
		}
		c.Next()
	}
}
