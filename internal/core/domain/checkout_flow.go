package domain

import (
	"errors"
	"fmt"
)

// CheckoutState is a step of the client-driven on-chain checkout.
type CheckoutState string

const (
	StateAwaitingQuote     CheckoutState = "awaiting-quote"
	StateDescriptorBuilt   CheckoutState = "descriptor-built"
	StateAwaitingSignature CheckoutState = "awaiting-signature"
	StateBroadcast         CheckoutState = "broadcast"
	StateConfirmed         CheckoutState = "confirmed"
	StateFailed            CheckoutState = "failed"
	StateUnknown           CheckoutState = "unknown"
)

// CheckoutEvent drives a transition.
type CheckoutEvent string

const (
	EventDescriptorBuilt     CheckoutEvent = "descriptor_built"
	EventDescriptorDelivered CheckoutEvent = "descriptor_delivered"
	EventCheckpointExpired   CheckoutEvent = "checkpoint_expired"
	EventBroadcast           CheckoutEvent = "broadcast"
	EventFinalized           CheckoutEvent = "finalized"
	EventRejected            CheckoutEvent = "rejected"
	EventWaitTimedOut        CheckoutEvent = "wait_timed_out"
	EventResumePolling       CheckoutEvent = "resume_polling"
)

var checkoutTransitions = map[CheckoutState]map[CheckoutEvent]CheckoutState{
	StateAwaitingQuote: {
		EventDescriptorBuilt: StateDescriptorBuilt,
	},
	StateDescriptorBuilt: {
		EventDescriptorDelivered: StateAwaitingSignature,
		EventCheckpointExpired:   StateAwaitingQuote,
	},
	StateAwaitingSignature: {
		EventBroadcast:         StateBroadcast,
		EventCheckpointExpired: StateAwaitingQuote,
	},
	StateBroadcast: {
		EventFinalized:         StateConfirmed,
		EventRejected:          StateFailed,
		EventWaitTimedOut:      StateUnknown,
		EventCheckpointExpired: StateAwaitingQuote,
	},
	StateUnknown: {
		EventResumePolling: StateBroadcast,
		EventFinalized:     StateConfirmed,
		EventRejected:      StateFailed,
	},
}

// IsTerminal reports whether no further transitions are possible.
func (s CheckoutState) IsTerminal() bool {
	return s == StateConfirmed || s == StateFailed
}

// Valid reports whether s is a known state.
func (s CheckoutState) Valid() bool {
	switch s {
	case StateAwaitingQuote, StateDescriptorBuilt, StateAwaitingSignature,
		StateBroadcast, StateConfirmed, StateFailed, StateUnknown:
		return true
	}
	return false
}

// CheckoutFlow tracks one checkout attempt. It is a value owned by a single
// request; the server carries it between requests inside the checkout ticket.
type CheckoutFlow struct {
	State CheckoutState `json:"state"`
}

// NewCheckoutFlow starts a flow awaiting a quote.
func NewCheckoutFlow() *CheckoutFlow {
	return &CheckoutFlow{State: StateAwaitingQuote}
}

// Fire applies ev and returns the new state, or an error if ev is not
// allowed in the current state.
func (f *CheckoutFlow) Fire(ev CheckoutEvent) (CheckoutState, error) {
	next, ok := checkoutTransitions[f.State][ev]
	if !ok {
		return f.State, fmt.Errorf("checkout: event %q not allowed in state %q", ev, f.State)
	}
	f.State = next
	return next, nil
}

// ApplyFinality maps a confirmation record onto the flow. The flow restarts
// only when the ledger has never seen the signature and its checkpoint has
// lapsed: the transfer can no longer land. A signature the node has seen at
// any commitment keeps the flow in broadcast.
func (f *CheckoutFlow) ApplyFinality(rec *ConfirmationRecord, checkpointLapsed bool) (CheckoutState, error) {
	if rec == nil {
		return f.State, errors.New("checkout: nil confirmation record")
	}
	status := rec.Status
	restart := status == FinalityPending && rec.NotFound && checkpointLapsed

	if f.State == StateAwaitingSignature {
		if restart {
			return f.Fire(EventCheckpointExpired)
		}
		if _, err := f.Fire(EventBroadcast); err != nil {
			return f.State, err
		}
	}

	switch status {
	case FinalityConfirmed:
		return f.Fire(EventFinalized)
	case FinalityFailed:
		return f.Fire(EventRejected)
	case FinalityUnknown:
		return f.Fire(EventWaitTimedOut)
	case FinalityPending:
		if f.State == StateUnknown {
			return f.Fire(EventResumePolling)
		}
		if restart && f.State == StateBroadcast {
			return f.Fire(EventCheckpointExpired)
		}
		return f.State, nil
	}
	return f.State, fmt.Errorf("checkout: unknown finality status %q", status)
}
