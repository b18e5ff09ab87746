package middleware

import (
	"fmt"
	"strconv"
	"time"

	"checkout-gateway/config"
	"checkout-gateway/internal/core/ports"
	"checkout-gateway/pkg/apperror"
	"checkout-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Endpoint groups with their own budgets.
const (
	GroupQuotes        = "quotes"
	GroupTransfers     = "transfers"
	GroupConfirmations = "confirmations"
	GroupSessions      = "sessions"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// RateLimitRules builds per-minute rules from config. Groups with a
// non-positive budget are left unlimited.
func RateLimitRules(cfg config.RateLimitConfig) map[string]RateLimitRule {
	rules := make(map[string]RateLimitRule)
	add := func(group string, limit int64) {
		if limit > 0 {
			rules[group] = RateLimitRule{Limit: limit, Window: time.Minute}
		}
	}
	add(GroupQuotes, cfg.Quotes)
	add(GroupTransfers, cfg.Transfers)
	add(GroupConfirmations, cfg.Confirmations)
	add(GroupSessions, cfg.Sessions)
	return rules
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
// Requests are counted per client IP.
func RateLimiter(limiter ports.RateLimiter, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", c.ClientIP(), group)

		result, err := limiter.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		// Always set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}
