package workflow

import (
	"errors"
	"testing"
)

func TestParsePolicy(t *testing.T) {
	got, err := ParsePolicy("")
	if err != nil || got != PolicyFree {
		t.Fatalf("ParsePolicy(\"\") = %q, %v", got, err)
	}

	got, err = ParsePolicy("Ordered")
	if err != nil || got != PolicyOrdered {
		t.Fatalf("ParsePolicy(Ordered) = %q, %v", got, err)
	}

	_, err = ParsePolicy("strict")
	if !errors.Is(err, ErrUnknownPolicy) {
		t.Fatalf("ParsePolicy(strict) error = %v, want ErrUnknownPolicy", err)
	}
}

func TestFreePolicyAllowsBackwardMoves(t *testing.T) {
	if err := PolicyFree.Check(StatusCompleted, StatusEngineeringReview); err != nil {
		t.Fatalf("free policy rejected backward move: %v", err)
	}
}

func TestOrderedPolicyRejectsBackwardMoves(t *testing.T) {
	err := PolicyOrdered.Check(StatusSAPCreation, StatusQuotation)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("ordered policy backward move error = %v, want ValidationError", err)
	}

	if err := PolicyOrdered.Check(StatusQuotation, StatusQuotation); err != nil {
		t.Fatalf("ordered policy rejected re-stamp of current status: %v", err)
	}
	if err := PolicyOrdered.Check(StatusQuotation, StatusCompleted); err != nil {
		t.Fatalf("ordered policy rejected forward move: %v", err)
	}
}
