package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  PaymentRequest
		want error
	}{
		{"valid", PaymentRequest{FiatAmount: decimal.NewFromInt(25), Currency: "USD", PayerAddress: "payer"}, nil},
		{"lowercase currency", PaymentRequest{FiatAmount: decimal.NewFromInt(1), Currency: "usd", PayerAddress: "payer"}, nil},
		{"zero amount", PaymentRequest{FiatAmount: decimal.Zero, Currency: "USD", PayerAddress: "payer"}, ErrNonPositiveFiatAmount},
		{"negative amount", PaymentRequest{FiatAmount: decimal.NewFromInt(-5), Currency: "USD", PayerAddress: "payer"}, ErrNonPositiveFiatAmount},
		{"bad currency", PaymentRequest{FiatAmount: decimal.NewFromInt(1), Currency: "US1", PayerAddress: "payer"}, ErrInvalidCurrency},
		{"missing payer", PaymentRequest{FiatAmount: decimal.NewFromInt(1), Currency: "USD", PayerAddress: "  "}, ErrMissingPayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.req.Validate(), tt.want)
		})
	}
}

func TestPriceQuote_RealizedPrice(t *testing.T) {
	q := PriceQuote{BasePrice: decimal.NewFromInt(2000000000), Exponent: -8}
	assert.True(t, q.RealizedPrice().Equal(decimal.NewFromInt(20)), q.RealizedPrice().String())

	q = PriceQuote{BasePrice: decimal.NewFromInt(15), Exponent: 1}
	assert.True(t, q.RealizedPrice().Equal(decimal.NewFromInt(150)))
}

func TestPriceQuote_Validate(t *testing.T) {
	tests := []struct {
		name    string
		quote   PriceQuote
		wantErr bool
	}{
		{"positive", PriceQuote{BasePrice: decimal.NewFromInt(14217), Exponent: -2}, false},
		{"zero", PriceQuote{BasePrice: decimal.Zero, Exponent: -8}, true},
		{"negative", PriceQuote{BasePrice: decimal.NewFromInt(-1), Exponent: 0}, true},
		{"exponent too small", PriceQuote{BasePrice: decimal.NewFromInt(1), Exponent: -33}, true},
		{"exponent too large", PriceQuote{BasePrice: decimal.NewFromInt(1), Exponent: 33}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.quote.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransferDescriptor_Validate(t *testing.T) {
	d := TransferDescriptor{Payer: "a", Payee: "b", FeePayer: "a", AssetQuantity: 1}
	assert.NoError(t, d.Validate())

	d.AssetQuantity = 0
	assert.ErrorIs(t, d.Validate(), ErrZeroQuantity)

	d.AssetQuantity = 1
	d.FeePayer = "b"
	assert.ErrorIs(t, d.Validate(), ErrFeePayerMismatch)
}

func TestTransferDescriptor_Base64(t *testing.T) {
	d := TransferDescriptor{Serialized: []byte{0x01, 0x02, 0x03}}
	assert.Equal(t, "AQID", d.Base64())
}

func TestCheckpoint_LapsedAt(t *testing.T) {
	cp := Checkpoint{LastValidHeight: 3090, ExpiresAt: time.Now().Add(-time.Minute)}

	assert.False(t, cp.LapsedAt(3000), "wall clock expiry alone does not lapse")
	assert.False(t, cp.LapsedAt(3090), "last valid height is still valid")
	assert.True(t, cp.LapsedAt(3091))
	assert.False(t, Checkpoint{}.LapsedAt(1<<40), "unknown height never lapses")
}

func TestFinalityStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status FinalityStatus
		want   bool
	}{
		{FinalityPending, false},
		{FinalityUnknown, false},
		{FinalityConfirmed, true},
		{FinalityFailed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsTerminal())
			assert.Equal(t, tt.want, (&ConfirmationRecord{Status: tt.status}).IsTerminal())
		})
	}
}

func TestCheckoutFlow_HappyPath(t *testing.T) {
	f := NewCheckoutFlow()
	assert.Equal(t, StateAwaitingQuote, f.State)

	for _, step := range []struct {
		ev   CheckoutEvent
		want CheckoutState
	}{
		{EventDescriptorBuilt, StateDescriptorBuilt},
		{EventDescriptorDelivered, StateAwaitingSignature},
		{EventBroadcast, StateBroadcast},
		{EventFinalized, StateConfirmed},
	} {
		got, err := f.Fire(step.ev)
		require.NoError(t, err)
		assert.Equal(t, step.want, got)
	}
	assert.True(t, f.State.IsTerminal())
}

func TestCheckoutFlow_IllegalTransition(t *testing.T) {
	f := NewCheckoutFlow()
	_, err := f.Fire(EventFinalized)
	assert.Error(t, err)
	assert.Equal(t, StateAwaitingQuote, f.State, "state unchanged on illegal event")

	f.State = StateConfirmed
	_, err = f.Fire(EventRejected)
	assert.Error(t, err, "terminal states accept no events")
}

func TestCheckoutFlow_ApplyFinality(t *testing.T) {
	tests := []struct {
		name     string
		from     CheckoutState
		status   FinalityStatus
		notFound bool
		lapsed   bool
		want     CheckoutState
	}{
		{"pending after delivery", StateAwaitingSignature, FinalityPending, true, false, StateBroadcast},
		{"unseen with lapsed checkpoint restarts", StateAwaitingSignature, FinalityPending, true, true, StateAwaitingQuote},
		{"seen at processed with lapsed checkpoint stays broadcast", StateAwaitingSignature, FinalityPending, false, true, StateBroadcast},
		{"confirmed", StateAwaitingSignature, FinalityConfirmed, false, false, StateConfirmed},
		{"confirmed even past expiry", StateAwaitingSignature, FinalityConfirmed, false, true, StateConfirmed},
		{"failed", StateBroadcast, FinalityFailed, false, false, StateFailed},
		{"timed out wait is unknown", StateBroadcast, FinalityUnknown, false, false, StateUnknown},
		{"unknown resumes polling", StateUnknown, FinalityPending, true, false, StateBroadcast},
		{"unknown then confirmed", StateUnknown, FinalityConfirmed, false, false, StateConfirmed},
		{"broadcast unseen and lapsed restarts", StateBroadcast, FinalityPending, true, true, StateAwaitingQuote},
		{"broadcast seen and lapsed stays broadcast", StateBroadcast, FinalityPending, false, true, StateBroadcast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &CheckoutFlow{State: tt.from}
			rec := &ConfirmationRecord{Status: tt.status, NotFound: tt.notFound}
			if !tt.notFound {
				rec.Slot = 72
			}
			got, err := f.ApplyFinality(rec, tt.lapsed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := (&CheckoutFlow{State: StateBroadcast}).ApplyFinality(nil, true)
	assert.Error(t, err)
}

func TestCheckoutState_Valid(t *testing.T) {
	assert.True(t, StateBroadcast.Valid())
	assert.False(t, CheckoutState("signed").Valid())
}

func TestHostedSession_IsPaid(t *testing.T) {
	assert.True(t, (&HostedSession{PaymentStatus: "paid"}).IsPaid())
	assert.False(t, (&HostedSession{PaymentStatus: "unpaid"}).IsPaid())
}

func TestIsCurrencyCode(t *testing.T) {
	assert.True(t, IsCurrencyCode("USD"))
	assert.True(t, IsCurrencyCode("eur"))
	assert.False(t, IsCurrencyCode("US"))
	assert.False(t, IsCurrencyCode("U$D"))
}
