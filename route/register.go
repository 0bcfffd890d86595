package route

import (
	"net/http"
	"time"

	"git.thinkinpower.net/cardmeta/bdata"
	"git.thinkinpower.net/cardmeta/data"
	"git.thinkinpower.net/cardmeta/metrics"
	"git.thinkinpower.net/cardmeta/mod"
	"git.thinkinpower.net/cardmeta/validator"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	db     bdata.BinDatabase
	cards  *validator.CardValidator
	expiry validator.ExpiryValidator
	// default language of country names
	lang string
}

func NewHandler(db bdata.BinDatabase, cards *validator.CardValidator, lang string) *Handler {
	return &Handler{db: db, cards: cards, lang: lang}
}

func Register(r *gin.Engine, h *Handler) {
	g := r.Group("/cardmeta")
	{
		g.GET("/index", func(context *gin.Context) {
			context.String(http.StatusOK, "Hello cardmeta, date: %s", time.Now().Format(data.DateTimePattern))
		})

		g.GET("/bins/:prefix", h.binQuery)
		g.POST("/bins/:prefix/feedback", h.feedback)

		g.POST("/validate/card", h.validateCard)
		g.POST("/validate/expiry", h.validateExpiry)
		g.POST("/validate/cvc", h.validateCVC)
		g.POST("/validate/iban", h.validateIBAN)
	}
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, mod.ResponseData{ResponseValue: mod.ResponseValue{Code: mod.ResponseCodeSuccess, Msg: "ok"}, Data: data})
}

func fail(ctx *gin.Context, status, code int, msg string) {
	ctx.JSON(status, mod.ResponseValue{Code: code, Msg: msg})
}
