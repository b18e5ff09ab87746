package handler

import (
	"strings"

	"checkout-gateway/internal/adapter/http/dto"
	"checkout-gateway/internal/core/ports"
	"checkout-gateway/pkg/apperror"
	"checkout-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// CheckoutHandler handles the hosted card/bank checkout endpoints.
type CheckoutHandler struct {
	hosted ports.HostedCheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(hosted ports.HostedCheckoutService) *CheckoutHandler {
	return &CheckoutHandler{hosted: hosted}
}

// CreateSession handles POST /api/v1/checkout/sessions.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	sess, err := h.hosted.CreateSession(c.Request.Context(), ports.HostedSessionRequest{
		AmountMinor: req.Amount,
		Currency:    strings.ToLower(req.Currency),
		Origin:      c.GetHeader("Origin"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.CreateSessionResponse{
		SessionID:   sess.ID,
		RedirectURL: sess.RedirectURL,
	})
}

// GetSession handles GET /api/v1/checkout/sessions/:id and the
// ?session_id= form used by the success page.
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	q := dto.SessionQuery{SessionID: c.Param("id")}
	if q.SessionID == "" {
		q.SessionID = c.Query("session_id")
	}
	if q.SessionID == "" {
		response.Error(c, apperror.Validation("session_id is required"))
		return
	}
	if err := binding.Validator.ValidateStruct(&q); err != nil {
		response.Error(c, apperror.Validation("session_id is malformed"))
		return
	}

	sess, err := h.hosted.GetSession(c.Request.Context(), q.SessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SessionResponse{
		ID:              sess.ID,
		AmountTotal:     sess.AmountTotal,
		Currency:        sess.Currency,
		Status:          sess.Status,
		PaymentStatus:   sess.PaymentStatus,
		Paid:            sess.IsPaid(),
		PaymentIntentID: sess.PaymentIntentID,
		CustomerEmail:   sess.CustomerEmail,
	})
}
