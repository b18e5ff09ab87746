package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := CreateTransferRequest{
		FiatAmount:   decimal.NewFromInt(25),
		PayerAddress: "  9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM  ",
		Currency:     " usd ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM", req.PayerAddress)
	assert.Equal(t, "usd", req.Currency)
	assert.True(t, req.FiatAmount.Equal(decimal.NewFromInt(25)))
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := CreatePaymentLinkRequest{Memo: "order <script>alert('x')</script>"}
	SanitizeStruct(&req)

	assert.Contains(t, req.Memo, "&lt;script&gt;")
	assert.NotContains(t, req.Memo, "<script>")
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	note := "  thanks  "
	req := struct {
		Note  *string
		Empty *string
	}{Note: &note}
	SanitizeStruct(&req)

	assert.Equal(t, "thanks", *req.Note)
	assert.Nil(t, req.Empty)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestSafeID_Valid(t *testing.T) {
	cases := []string{
		"cs_test_a1b2c3",
		"REF_002",
		"a.b.c",
		"ABC-def_GHI.123",
	}
	for _, tc := range cases {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestSafeID_Invalid(t *testing.T) {
	cases := []string{
		"cs 001",
		"cs<001>",
		"cs;DROP",
		"",
		"cs\n001",
		"../etc/passwd?x",
	}
	for _, tc := range cases {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestISOCurrency_Binding(t *testing.T) {
	valid := CreateSessionRequest{Amount: 2500, Currency: "usd"}
	assert.NoError(t, binding.Validator.ValidateStruct(&valid))

	noCurrency := CreateSessionRequest{Amount: 2500}
	assert.NoError(t, binding.Validator.ValidateStruct(&noCurrency))

	for _, bad := range []string{"US", "usdx", "u$d", "123"} {
		req := CreateSessionRequest{Amount: 2500, Currency: bad}
		assert.Error(t, binding.Validator.ValidateStruct(&req), bad)
	}

	zero := CreateSessionRequest{Currency: "usd"}
	assert.Error(t, binding.Validator.ValidateStruct(&zero))
}

func TestSessionQuery_Binding(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(&SessionQuery{SessionID: "cs_test_a1b2c3"}))
	assert.Error(t, binding.Validator.ValidateStruct(&SessionQuery{}))
	assert.Error(t, binding.Validator.ValidateStruct(&SessionQuery{SessionID: "cs test"}))
}
