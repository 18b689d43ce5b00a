package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/response"
)

// UserResolver resolves the caller from an Authorization header.
type UserResolver interface {
	Resolve(ctx context.Context, header string) (models.User, error)
}

// UserAuth resolves the caller once per request and attaches the user to
// the request context. Failures stop the chain with a 401 envelope.
func UserAuth(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolver.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			response.Error(c, "AUTH", err)
			return
		}

		logrus.WithFields(logrus.Fields{
			"area":       "AUTH",
			"request_id": c.GetString(RequestIDKey),
			"user_id":    user.ID.Hex(),
		}).Debug("user resolved")

		c.Request = c.Request.WithContext(auth.WithUser(c.Request.Context(), user))
		c.Next()
	}
}
