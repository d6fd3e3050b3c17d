package workflow

import (
	"fmt"
	"strings"
)

// TransitionPolicy decides which status moves the engine accepts.
//
// The observed system never validated ordering: any status is reachable from
// any other, including backward moves such as Completed back to review. That
// behavior is kept as the default, with the ordered variant available until
// product clarifies whether backward moves are intended.
type TransitionPolicy string

const (
	// PolicyFree allows any status to follow any other.
	PolicyFree TransitionPolicy = "free"
	// PolicyOrdered rejects moves to an earlier catalog position. Re-stamping
	// the current status stays allowed; the original UI re-submits it.
	PolicyOrdered TransitionPolicy = "ordered"
)

// ParsePolicy resolves a policy name from configuration.
func ParsePolicy(s string) (TransitionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(PolicyFree):
		return PolicyFree, nil
	case string(PolicyOrdered):
		return PolicyOrdered, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Check returns a validation error when the policy forbids the move.
func (p TransitionPolicy) Check(from, to Status) error {
	if p != PolicyOrdered {
		return nil
	}
	if statusIndex(to) < statusIndex(from) {
		return newValidationError("status", "backward transition %q -> %q not allowed by ordered policy", from, to)
	}
	return nil
}
