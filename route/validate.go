package route

import (
	"context"
	"net/http"
	"time"

	"git.thinkinpower.net/cardmeta/metrics"
	"git.thinkinpower.net/cardmeta/mod"
	"git.thinkinpower.net/cardmeta/validator"
	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
)

// how long a card validation waits for card metadata before answering
// with the ranges already known
const cardRefineTimeout = 3 * time.Second

type cardRequest struct {
	Number string `json:"number"`
}

type cardResponse struct {
	validator.State
	Brand     mod.Brand `json:"brand"`
	PanLength int       `json:"pan_length"`
}

type expiryRequest struct {
	Expiry string `json:"expiry"`
}

type cvcRequest struct {
	CVC      string    `json:"cvc"`
	Brand    mod.Brand `json:"brand"`
	Optional bool      `json:"optional"`
}

type ibanRequest struct {
	IBAN     string `json:"iban"`
	Optional bool   `json:"optional"`
}

func (h *Handler) validateCard(ctx *gin.Context) {
	var req cardRequest
	if !bind(ctx, &req) {
		return
	}
	c, cancel := context.WithTimeout(ctx.Request.Context(), cardRefineTimeout)
	defer cancel()

	state := h.cards.ValidateContext(c, req.Number)
	r := h.cards.Range(req.Number)
	logger.WithFields(logger.Fields{"pan": mod.MaskPAN(h.cards.Sanitize(req.Number)), "state": state}).Debug("card validated")
	respond(ctx, "card", state.Status, cardResponse{State: state, Brand: r.Brand, PanLength: r.PanLength})
}

func (h *Handler) validateExpiry(ctx *gin.Context) {
	var req expiryRequest
	if !bind(ctx, &req) {
		return
	}
	state := h.expiry.Validate(req.Expiry)
	respond(ctx, "expiry", state.Status, state)
}

func (h *Handler) validateCVC(ctx *gin.Context) {
	var req cvcRequest
	if !bind(ctx, &req) {
		return
	}
	state := validator.ValidateCVC(req.CVC, req.Brand, req.Optional)
	respond(ctx, "cvc", state.Status, state)
}

func (h *Handler) validateIBAN(ctx *gin.Context) {
	var req ibanRequest
	if !bind(ctx, &req) {
		return
	}
	state := validator.ValidateIBAN(req.IBAN, req.Optional)
	respond(ctx, "iban", state.Status, state)
}

func bind(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		fail(ctx, http.StatusBadRequest, mod.ResponseCodeMissingParams, "cannot parse request body")
		return false
	}
	return true
}

func respond(ctx *gin.Context, field string, status validator.Status, result interface{}) {
	metrics.Validations.WithLabelValues(field, status.String()).Inc()
	success(ctx, result)
}
