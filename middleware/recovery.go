package middleware

import (
	"net/http"
	"runtime/debug"

	"git.thinkinpower.net/cardmeta/mod"
	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
)

// Recovery turns a panicking handler into a 500 with the failure envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.WithField("requestId", GetRequestID(c)).
					Errorf("panic: %v\n%s", err, debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					mod.ResponseValue{Code: mod.ResponseCodeFailure, Msg: "internal error"})
			}
		}()
		c.Next()
	}
}
