package handler

import (
	"checkout-gateway/config"
	"checkout-gateway/internal/adapter/http/middleware"
	"checkout-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxBodyBytes limits request bodies; every request body here is a few fields.
const maxBodyBytes = 64 << 10

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	OnChainSvc      ports.OnChainCheckoutService
	ConfirmationSvc ports.ConfirmationService
	HostedSvc       ports.HostedCheckoutService
	TicketSvc       ports.TicketService // nil = X-Checkout-Ticket ignored
	RateLimiter     ports.RateLimiter   // nil = rate limiting disabled
	RateLimits      config.RateLimitConfig
	Wait            WaitConfig
	HealthCheckers  []ports.HealthChecker
	AuditSvc        ports.AuditService // nil = audit logging disabled
	OpenAPISpec     []byte             // served at /swagger/spec
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", OpenAPISpec(deps.OpenAPISpec))
	}

	rules := middleware.RateLimitRules(deps.RateLimits)

	// Helper: return rate limiter middleware if a limiter is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimiter == nil || !deps.RateLimits.Enabled {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimiter, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Hosted card/bank rail ---
	checkoutHandler := NewCheckoutHandler(deps.HostedSvc)
	sessions := v1.Group("/checkout/sessions")
	{
		sessions.POST("", rl(middleware.GroupSessions), checkoutHandler.CreateSession)
		sessions.GET("", rl(middleware.GroupSessions), checkoutHandler.GetSession)
		sessions.GET("/:id", rl(middleware.GroupSessions), checkoutHandler.GetSession)
	}

	// --- On-chain rail ---
	onchainHandler := NewOnChainHandler(deps.OnChainSvc, deps.ConfirmationSvc, deps.TicketSvc, deps.Wait)
	onchain := v1.Group("/onchain")
	{
		onchain.GET("/quote", rl(middleware.GroupQuotes), onchainHandler.Quote)
		onchain.POST("/transfers", rl(middleware.GroupTransfers), onchainHandler.CreateTransfer)
		onchain.POST("/payment-links", rl(middleware.GroupTransfers), onchainHandler.CreatePaymentLink)
		onchain.GET("/confirmations/:signature", rl(middleware.GroupConfirmations), onchainHandler.GetConfirmation)
	}

	return r
}
