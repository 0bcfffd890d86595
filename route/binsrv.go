package route

import (
	"net/http"

	"git.thinkinpower.net/cardmeta/bdata"
	"git.thinkinpower.net/cardmeta/data"
	"git.thinkinpower.net/cardmeta/mod"
	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
)

func (h *Handler) binQuery(ctx *gin.Context) {
	prefix := ctx.Param("prefix")
	if !isPrefix(prefix) {
		fail(ctx, http.StatusBadRequest, mod.ResponseCodeInvalidParams, "prefix must be 6 digits")
		return
	}
	lang := ctx.DefaultQuery("lang", h.lang)

	ranges, err := bdata.Query(ctx.Request.Context(), h.db, prefix, lang)
	if err != nil {
		logger.WithField("prefix", prefix).Errorf("query bin ranges error: %s", err)
		fail(ctx, http.StatusInternalServerError, mod.ResponseCodeFailure, "query failed")
		return
	}
	if len(ranges) == 0 {
		fail(ctx, http.StatusNotFound, mod.ResponseCodeNotFound, "no ranges for prefix")
		return
	}
	success(ctx, ranges)
}

func isPrefix(s string) bool {
	if len(s) != data.PrefixLengthForMetadataRequest {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
