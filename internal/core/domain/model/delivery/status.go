package delivery

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with defined transitions to ensure
// deliveries follow the correct business workflow.
//
// State transitions:
//
//	pending ──> assigned ──> out_for_delivery ──> delivered
//	   │            │               │
//	   └────────────┴───────────────┴──> cancelled
//
// delivered and cancelled are terminal: no further transitions are allowed.
// The string values are the exact literals exposed externally.
type Status string

const (
	// StatusPending is the initial status when a delivery is created from a
	// paid order and is waiting for a driver.
	StatusPending Status = "pending"

	// StatusAssigned indicates a driver has been assigned to the delivery.
	StatusAssigned Status = "assigned"

	// StatusOutForDelivery indicates the driver is in transit with the order.
	StatusOutForDelivery Status = "out_for_delivery"

	// StatusDelivered indicates the delivery reached its destination.
	// Terminal state.
	StatusDelivered Status = "delivered"

	// StatusCancelled indicates the delivery was cancelled before completion.
	// Terminal state, reachable from any non-terminal status.
	StatusCancelled Status = "cancelled"
)

// ErrInvalidTransition is the sentinel for status transition failures.
// Use errors.Is to classify; the concrete *InvalidTransitionError carries
// the (current, attempted) pair for diagnostics.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError is returned when a status change is not permitted
// by the transition table. Unwraps to ErrInvalidTransition.
type InvalidTransitionError struct {
	Current   Status
	Attempted Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// current and attempted statuses.
func NewInvalidTransitionError(current Status, attempted Status) *InvalidTransitionError {
	return &InvalidTransitionError{Current: current, Attempted: attempted}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.Current, e.Attempted)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// getTransitionTable returns the exhaustive map of allowed transitions.
// Terminal statuses map to an empty set.
func getTransitionTable() map[Status]map[Status]struct{} {
	return map[Status]map[Status]struct{}{
		StatusPending: {
			StatusAssigned:  {},
			StatusCancelled: {},
		},
		StatusAssigned: {
			StatusOutForDelivery: {},
			StatusCancelled:      {},
		},
		StatusOutForDelivery: {
			StatusDelivered: {},
			StatusCancelled: {},
		},
		StatusDelivered: {},
		StatusCancelled: {},
	}
}

// Validate checks that the Status is one of the five known literals.
// Used to vet values arriving from requests or persistence before use.
func (s Status) Validate() error {
	if _, ok := getTransitionTable()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String returns the external string literal of the status.
// It implements the fmt.Stringer interface.
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether the transition from s to target is
// permitted by the transition table. Pure lookup, no side effects; any
// pair outside the table returns false, including transitions out of
// terminal states and from unknown statuses.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, ok := getTransitionTable()[s]
	if !ok {
		return false
	}
	_, ok = allowed[target]
	return ok
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// TransitionTo returns target if the transition is permitted, or an
// InvalidTransitionError carrying the (current, attempted) pair otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}

	if !s.CanTransitionTo(target) {
		return "", NewInvalidTransitionError(s, target)
	}

	return target, nil
}
