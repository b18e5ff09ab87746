package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"checkout-gateway/internal/core/domain"
	"checkout-gateway/internal/core/ports"
	"checkout-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog records successful write operations after the handler has run.
// Entries hold request metadata only; bodies are never recorded.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		if c.Request.Method != http.MethodPost {
			return
		}

		action, resourceType := mapPathToAction(c.FullPath())
		if action == "" {
			return
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": status,
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			RequestID:    c.GetString(response.CtxRequestID),
			Action:       action,
			ResourceType: resourceType,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

func mapPathToAction(route string) (domain.AuditAction, string) {
	switch route {
	case "/api/v1/checkout/sessions":
		return domain.AuditActionHostedSession, "hosted_session"
	case "/api/v1/onchain/transfers":
		return domain.AuditActionTransferBuilt, "transfer"
	case "/api/v1/onchain/payment-links":
		return domain.AuditActionPaymentLink, "payment_link"
	}
	return "", ""
}
