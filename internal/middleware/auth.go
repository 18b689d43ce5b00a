package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/response"
)

// AdminOnly gates a route group on the resolved user's role flags. It must
// run after UserAuth. Services repeat the check for their own callers.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.UserFrom(c.Request.Context())
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "Unauthorized, invalid token")
			return
		}
		if !user.IsAdmin && !user.IsSuperAdmin {
			response.Fail(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}
