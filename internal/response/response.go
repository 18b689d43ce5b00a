// Package response writes the {status, msg, data} envelope used by every route.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/apperr"
)

const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

type Envelope struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
	Data   any    `json:"data"`
}

func OK(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, Msg: msg, Data: data})
}

func Created(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusCreated, Envelope{Status: StatusSuccess, Msg: msg, Data: data})
}

// Fail aborts the request with a failure envelope and no data.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Status: StatusFailed, Msg: msg})
}

// Error maps err through the apperr taxonomy. Internal failures are logged
// with their cause and reported with the generic message only.
func Error(c *gin.Context, area string, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"area":       area,
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).WithError(err).Error("request failed")
	} else {
		logrus.WithFields(logrus.Fields{
			"area":       area,
			"request_id": c.GetString("request_id"),
			"kind":       apperr.KindOf(err).String(),
		}).Debug(err.Error())
	}
	Fail(c, status, apperr.PublicMessage(err))
}
