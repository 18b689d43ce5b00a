package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/apperr"
	"storefront/internal/response"
)

// Recovery turns a panic into the generic 500 envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithFields(logrus.Fields{
					"request_id": c.GetString(RequestIDKey),
					"route":      c.FullPath(),
					"panic":      r,
				}).Error("panic recovered\n" + string(debug.Stack()))
				response.Fail(c, http.StatusInternalServerError, apperr.InternalMessage)
			}
		}()
		c.Next()
	}
}
