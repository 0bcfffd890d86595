package route

import (
	"net/http"

	"git.thinkinpower.net/cardmeta/bdata"
	"git.thinkinpower.net/cardmeta/mod"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

// feedback stores a precise range reported for prefix
func (h *Handler) feedback(ctx *gin.Context) {
	var r mod.BinRange
	if err := ctx.ShouldBindJSON(&r); err != nil {
		logger.Warnf("cannot parse feedback body: %s", err)
		fail(ctx, http.StatusBadRequest, mod.ResponseCodeMissingParams, "cannot parse request body")
		return
	}

	prefix := ctx.Param("prefix")
	if err := bdata.CreateBinRange(ctx.Request.Context(), h.db, prefix, r); err != nil {
		if errors.Is(err, bdata.ErrInvalidBinRange) {
			fail(ctx, http.StatusBadRequest, mod.ResponseCodeInvalidParams, err.Error())
			return
		}
		logger.WithField("prefix", prefix).Errorf("save feedback error: %s", err)
		fail(ctx, http.StatusInternalServerError, mod.ResponseCodeFailure, "cannot save feedback")
		return
	}
	logger.WithFields(logger.Fields{"prefix": prefix, "low": r.Low, "high": r.High, "brand": r.Brand}).Info("bin range feedback saved")
	success(ctx, nil)
}
