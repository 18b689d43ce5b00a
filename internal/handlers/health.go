package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/response"
)

// Pinger reports whether the document store is reachable.
type Pinger func(ctx context.Context) error

func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.OK(c, "Welcome to the storefront API", nil)
	}
}

func Health(ping Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ping(c.Request.Context()); err != nil {
			logrus.WithField("area", "HEALTH").WithError(err).Error("database ping failed")
			response.Fail(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		response.OK(c, "ok", nil)
	}
}
