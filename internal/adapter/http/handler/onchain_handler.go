package handler

import (
	"strconv"
	"strings"
	"time"

	"checkout-gateway/internal/adapter/http/dto"
	"checkout-gateway/internal/core/domain"
	"checkout-gateway/internal/core/ports"
	"checkout-gateway/pkg/apperror"
	"checkout-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// HeaderCheckoutTicket carries the ticket issued with an unsigned transfer.
const HeaderCheckoutTicket = "X-Checkout-Ticket"

// WaitConfig bounds the ?wait= parameter of the confirmation endpoint.
type WaitConfig struct {
	Default time.Duration // used for ?wait=true
	Max     time.Duration
}

// OnChainHandler handles the on-chain rail endpoints.
type OnChainHandler struct {
	checkout      ports.OnChainCheckoutService
	confirmations ports.ConfirmationService
	tickets       ports.TicketService
	wait          WaitConfig
}

// NewOnChainHandler creates a new OnChainHandler. tickets may be nil, in
// which case X-Checkout-Ticket is ignored.
func NewOnChainHandler(
	checkout ports.OnChainCheckoutService,
	confirmations ports.ConfirmationService,
	tickets ports.TicketService,
	wait WaitConfig,
) *OnChainHandler {
	return &OnChainHandler{
		checkout:      checkout,
		confirmations: confirmations,
		tickets:       tickets,
		wait:          wait,
	}
}

// Quote handles GET /api/v1/onchain/quote.
func (h *OnChainHandler) Quote(c *gin.Context) {
	var q dto.QuoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(q.FiatAmount))
	if err != nil {
		response.Error(c, apperror.Validation("fiat_amount must be a decimal number"))
		return
	}

	result, err := h.checkout.Quote(c.Request.Context(), ports.QuoteRequest{
		FiatAmount: amount,
		Currency:   q.Currency,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	conv := result.Conversion
	response.OK(c, dto.QuoteResponse{
		FiatAmount:          result.FiatAmount.String(),
		Currency:            result.Currency,
		Pair:                conv.Quote.Pair,
		Price:               conv.Quote.RealizedPrice().String(),
		PriceSource:         string(conv.Quote.Source),
		PriceObservedAt:     conv.Quote.ObservedAt.UTC().Format(time.RFC3339),
		BufferPercent:       conv.BufferPercent.String(),
		BufferedPrice:       conv.BufferedPrice.String(),
		AssetQuantity:       conv.Quantity,
		HumanReadableAmount: result.HumanReadableAmount,
	})
}

// CreateTransfer handles POST /api/v1/onchain/transfers.
func (h *OnChainHandler) CreateTransfer(c *gin.Context) {
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.checkout.CreateTransfer(c.Request.Context(), domain.PaymentRequest{
		FiatAmount:   req.FiatAmount,
		Currency:     req.Currency,
		PayerAddress: req.PayerAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	d := result.Descriptor
	expiresAt := d.Checkpoint.ExpiresAt.UTC().Format(time.RFC3339)
	response.Created(c, dto.CreateTransferResponse{
		UnsignedTransferBase64: d.Base64(),
		HumanReadableAmount:    result.HumanReadableAmount,
		AssetQuantity:          d.AssetQuantity,
		Payer:                  d.Payer,
		Payee:                  d.Payee,
		Checkpoint: dto.CheckpointResponse{
			BlockID:         d.Checkpoint.BlockID,
			LastValidHeight: d.Checkpoint.LastValidHeight,
			ExpiresAt:       expiresAt,
		},
		ExpiresAt:       expiresAt,
		CheckoutTicket:  result.Ticket,
		TicketExpiresAt: result.TicketExpiresAt.UTC().Format(time.RFC3339),
		State:           string(result.State),
		Price:           result.Conversion.Quote.RealizedPrice().String(),
		BufferedPrice:   result.Conversion.BufferedPrice.String(),
	})
}

// CreatePaymentLink handles POST /api/v1/onchain/payment-links.
func (h *OnChainHandler) CreatePaymentLink(c *gin.Context) {
	var req dto.CreatePaymentLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.checkout.PaymentLink(c.Request.Context(), ports.PaymentLinkRequest{
		FiatAmount: req.FiatAmount,
		Currency:   req.Currency,
		Memo:       req.Memo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.PaymentLinkResponse{
		URL:           result.URL,
		AssetAmount:   result.Conversion.AssetAmount.String(),
		AssetQuantity: result.Conversion.Quantity,
	})
}

// GetConfirmation handles GET /api/v1/onchain/confirmations/:signature.
// With ?wait= it blocks until the signature is terminal or the wait elapses.
func (h *OnChainHandler) GetConfirmation(c *gin.Context) {
	signature := strings.TrimSpace(c.Param("signature"))
	if signature == "" {
		response.Error(c, apperror.Validation("signature is required"))
		return
	}

	var q dto.ConfirmationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	wait, err := h.parseWait(q.Wait)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Parse the ticket first so a bad ticket fails before any ledger call.
	var claims *ports.TicketClaims
	if token := c.GetHeader(HeaderCheckoutTicket); token != "" && h.tickets != nil {
		claims, err = h.tickets.Parse(token)
		if err != nil {
			response.Error(c, apperror.Validation("invalid checkout ticket"))
			return
		}
	}

	var rec *domain.ConfirmationRecord
	if wait > 0 {
		rec, err = h.confirmations.WaitForFinality(c.Request.Context(), signature, wait)
	} else {
		rec, err = h.confirmations.Resolve(c.Request.Context(), signature)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := toConfirmationResponse(rec)
	if claims != nil {
		flow := &domain.CheckoutFlow{State: claims.State}
		// Only a signature the node has never seen can be abandoned.
		lapsed := rec.Status == domain.FinalityPending && rec.NotFound &&
			h.confirmations.CheckpointLapsed(c.Request.Context(), claims.Checkpoint())
		state, err := flow.ApplyFinality(rec, lapsed)
		if err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
		resp.State = string(state)
	}

	response.OK(c, resp)
}

// parseWait accepts "", "false", "0", "true", a Go duration or whole seconds.
func (h *OnChainHandler) parseWait(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	var d time.Duration
	switch raw {
	case "", "false", "0":
		return 0, nil
	case "true":
		d = h.wait.Default
	default:
		if secs, err := strconv.Atoi(raw); err == nil {
			d = time.Duration(secs) * time.Second
		} else if parsed, err := time.ParseDuration(raw); err == nil {
			d = parsed
		} else {
			return 0, apperror.Validation("wait must be a duration such as 10s")
		}
	}
	if d < 0 {
		return 0, apperror.Validation("wait must not be negative")
	}
	if h.wait.Max > 0 && d > h.wait.Max {
		d = h.wait.Max
	}
	return d, nil
}

func toConfirmationResponse(rec *domain.ConfirmationRecord) dto.ConfirmationResponse {
	resp := dto.ConfirmationResponse{
		Signature:   rec.SignatureID,
		Status:      string(rec.Status),
		LedgerError: rec.LedgerError,
		Slot:        rec.Slot,
		ObservedAt:  rec.ObservedAt.UTC().Format(time.RFC3339),
	}
	if rec.BlockTime != nil {
		s := rec.BlockTime.UTC().Format(time.RFC3339)
		resp.BlockTime = &s
	}
	return resp
}
