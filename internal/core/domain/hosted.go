package domain

// HostedSession is the provider-agnostic view of a hosted checkout session.
type HostedSession struct {
	ID              string `json:"id"`
	RedirectURL     string `json:"redirect_url,omitempty"`
	AmountTotal     int64  `json:"amount_total"` // minor units
	Currency        string `json:"currency"`
	Status          string `json:"status"`         // open, complete, expired
	PaymentStatus   string `json:"payment_status"` // paid, unpaid, no_payment_required
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
	CustomerEmail   string `json:"customer_email,omitempty"`
}

// IsPaid reports whether the provider settled the session.
func (s *HostedSession) IsPaid() bool {
	return s.PaymentStatus == "paid"
}
