package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"mattrack/internal/domain/workflow"
)

func TestTransitionQuotationScenario(t *testing.T) {
	svc := setupService(t, workflow.PolicyFree)
	ctx := context.Background()
	m := createOne(t, svc, "eng", "DP 02")
	jarol := lineOwner(t, svc, "Jarol")

	event, err := svc.Transition(ctx, TransitionInput{
		MaterialID: m.MaterialID,
		NewStatus:  "In quotation",
		Actor:      jarol,
		Comment:    "sent to purchasing",
	})
	if err != nil {
		t.Fatalf("Transition() error = %v", err)
	}
	if event.PreviousStatus != string(workflow.InitialStatus) || event.NewStatus != string(workflow.StatusQuotation) {
		t.Fatalf("event = %+v", event)
	}
	if event.Actor != "Jarol" || event.ActorRole != string(workflow.RoleLineOwner) {
		t.Fatalf("event actor = %q/%q", event.Actor, event.ActorRole)
	}

	stored, err := svc.repo.GetMaterial(ctx, m.MaterialID)
	if err != nil {
		t.Fatalf("GetMaterial() error = %v", err)
	}
	if stored.Status != string(workflow.StatusQuotation) {
		t.Fatalf("status = %q", stored.Status)
	}
	if stored.Owner != "Jarol" {
		t.Fatalf("owner = %q", stored.Owner)
	}
	if stored.StatusComment != "sent to purchasing" {
		t.Fatalf("status comment = %q", stored.StatusComment)
	}
	if stored.QuotationAt != event.OccurredAt {
		t.Fatalf("quotation_at = %q, event at %q", stored.QuotationAt, event.OccurredAt)
	}
	if _, err := time.Parse(time.RFC3339Nano, stored.QuotationAt); err != nil {
		t.Fatalf("quotation_at not RFC3339: %v", err)
	}
	if stored.ReviewAt != "" || stored.SAPCreationAt != "" || stored.InfoRecordAt != "" || stored.CompletedAt != "" {
		t.Fatalf("extra stamps set: %+v", stored)
	}

	events, err := svc.History(ctx, jarol, m.MaterialID)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(events) != 1 || events[0].EventID != event.EventID {
		t.Fatalf("history = %+v", events)
	}
}

func TestTransitionChainAuditTrail(t *testing.T) {
	svc := setupService(t, workflow.PolicyFree)
	ctx := context.Background()
	m := createOne(t, svc, "eng", "KGT 22")
	niko := lineOwner(t, svc, "Niko")

	chain := []workflow.Status{
		workflow.StatusQuotation,
		workflow.StatusSAPCreation,
		workflow.StatusWaitingInfoRecord,
		workflow.StatusInfoRecordCreated,
		workflow.StatusCompleted,
	}
	for _, status := range chain {
		if _, err := svc.Transition(ctx, TransitionInput{
			MaterialID: m.MaterialID,
			NewStatus:  string(status),
			Actor:      niko,
			Comment:    "step " + string(status),
		}); err != nil {
			t.Fatalf("Transition(%s) error = %v", status, err)
		}
	}

	events, err := svc.History(ctx, niko, m.MaterialID)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(events) != len(chain) {
		t.Fatalf("events = %d, want %d", len(events), len(chain))
	}

	// Newest first: walk backward and verify each event links to the
	// previous status.
	prev := string(workflow.InitialStatus)
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		if e.PreviousStatus != prev {
			t.Fatalf("event %d previous = %q, want %q", i, e.PreviousStatus, prev)
		}
		prev = e.NewStatus
	}
	if prev != string(workflow.StatusCompleted) {
		t.Fatalf("final status in trail = %q", prev)
	}

	stored, err := svc.repo.GetMaterial(ctx, m.MaterialID)
	if err != nil {
		t.Fatalf("GetMaterial() error = %v", err)
	}
	if stored.CompletedAt == "" || stored.QuotationAt == "" || stored.SAPCreationAt == "" || stored.InfoRecordAt == "" {
		t.Fatalf("missing stamps after full chain: %+v", stored)
	}
}

func TestTransitionEmptyCommentMutatesNothing(t *testing.T) {
	svc := setupService(t, workflow.PolicyFree)
	ctx := context.Background()
	m := createOne(t, svc, "eng", "DP 02")
	jarol := lineOwner(t, svc, "Jarol")

	_, err := svc.Transition(ctx, TransitionInput{
		MaterialID: m.MaterialID,
		NewStatus:  "In quotation",
		Actor:      jarol,
		Comment:    "   ",
	})
	var ve *workflow.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("empty comment error = %v", err)
	}

	stored, err := svc.repo.GetMaterial(ctx, m.MaterialID)
	if err != nil {
		t.Fatalf("GetMaterial() error = %v", err)
	}
	if stored.Status != string(workflow.InitialStatus) || stored.Owner != m.Owner || stored.QuotationAt != "" {
		t.Fatalf("material mutated: %+v", stored)
	}

	events, err := svc.History(ctx, jarol, m.MaterialID)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("events after rejected transition = %d", len(events))
	}
}

func TestTransitionUnknownStatus(t *testing.T) {
	svc := setupService(t, workflow.PolicyFree)
	m := createOne(t, svc, "eng", "DP 02")

	_, err := svc.Transition(context.Background(), TransitionInput{
		MaterialID: m.MaterialID,
		NewStatus:  "Shipped",
		Actor:      lineOwner(t, svc, "Jarol"),
		Comment:    "x",
	})
	var ve *workflow.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("unknown status error = %v", err)
	}
}

func TestTransitionForbidden(t *testing.T) {
	svc := setupService(t, workflow.PolicyFree)
	ctx := context.Background()
	m := createOne(t, svc, "eng", "DP 02")

	// A requester never transitions, even their own material.
	_, err := svc.Transition(ctx, TransitionInput{
		MaterialID: m.MaterialID,
		NewStatus:  "In quotation",
		Actor:      workflow.Actor{Identity: "eng", Role: workflow.RoleRequester},
		Comment:    "please",
	})
	if !errors.Is(err, workflow.ErrForbidden) {
		t.Fatalf("requester transition error = %v, want ErrForbidden", err)
	}

	// A line owner of a different line is equally out.
	_, err = svc.Transition(ctx, TransitionInput{
		MaterialID: m.MaterialID,
		NewStatus:  "In quotation",
		Actor:      lineOwner(t, svc, "Niko"),
		Comment:    "not mine",
	})
	if !errors.Is(err, workflow.ErrForbidden) {
		t.Fatalf("foreign line owner error = %v, want ErrForbidden", err)
	}

	events, err := svc.History(ctx, workflow.Actor{Identity: "boss", Role: workflow.RoleOversight}, m.MaterialID)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("denied transitions left %d events", len(events))
	}
}

func TestTransitionOrderedPolicy(t *testing.T) {
	svc := setupService(t, workflow.PolicyOrdered)
	ctx := context.Background()
	m := createOne(t, svc, "eng", "DP 02")
	jarol := lineOwner(t, svc, "Jarol")

	if _, err := svc.Transition(ctx, TransitionInput{
		MaterialID: m.MaterialID,
		NewStatus:  string(workflow.StatusSAPCreation),
		Actor:      jarol,
		Comment:    "skipping ahead is allowed",
	}); err != nil {
		t.Fatalf("forward transition error = %v", err)
	}

	_, err := svc.Transition(ctx, TransitionInput{
		MaterialID: m.MaterialID,
		NewStatus:  string(workflow.StatusQuotation),
		Actor:      jarol,
		Comment:    "go back",
	})
	var ve *workflow.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("backward transition error = %v, want ValidationError", err)
	}

	stored, err := svc.repo.GetMaterial(ctx, m.MaterialID)
	if err != nil {
		t.Fatalf("GetMaterial() error = %v", err)
	}
	if stored.Status != string(workflow.StatusSAPCreation) {
		t.Fatalf("status after rejected backward move = %q", stored.Status)
	}
}

func TestTransitionRecordsSAPRefs(t *testing.T) {
	svc := setupService(t, workflow.PolicyFree)
	ctx := context.Background()
	m := createOne(t, svc, "eng", "SERVO 10")
	lalo := lineOwner(t, svc, "Lalo")

	sap := "10012345"
	if _, err := svc.Transition(ctx, TransitionInput{
		MaterialID:     m.MaterialID,
		NewStatus:      string(workflow.StatusSAPCreation),
		Actor:          lalo,
		Comment:        "created in SAP",
		SAPMaterialRef: &sap,
	}); err != nil {
		t.Fatalf("Transition() error = %v", err)
	}

	// A later transition without refs must leave the stored ones alone.
	info := "5300054321"
	if _, err := svc.Transition(ctx, TransitionInput{
		MaterialID:       m.MaterialID,
		NewStatus:        string(workflow.StatusInfoRecordCreated),
		Actor:            lalo,
		Comment:          "inforecord done",
		SAPInfoRecordRef: &info,
	}); err != nil {
		t.Fatalf("Transition() error = %v", err)
	}

	stored, err := svc.repo.GetMaterial(ctx, m.MaterialID)
	if err != nil {
		t.Fatalf("GetMaterial() error = %v", err)
	}
	if stored.SAPMaterialRef != sap || stored.SAPInfoRecordRef != info {
		t.Fatalf("sap refs = %q/%q", stored.SAPMaterialRef, stored.SAPInfoRecordRef)
	}
}

func TestTransitionSharedInfoRecordStamp(t *testing.T) {
	svc := setupService(t, workflow.PolicyFree)
	ctx := context.Background()
	m := createOne(t, svc, "eng", "SENSOR 28")
	jime := lineOwner(t, svc, "Jime")

	if _, err := svc.Transition(ctx, TransitionInput{
		MaterialID: m.MaterialID,
		NewStatus:  string(workflow.StatusWaitingInfoRecord),
		Actor:      jime,
		Comment:    "waiting",
	}); err != nil {
		t.Fatalf("Transition(waiting) error = %v", err)
	}
	first, err := svc.repo.GetMaterial(ctx, m.MaterialID)
	if err != nil {
		t.Fatalf("GetMaterial() error = %v", err)
	}
	if first.InfoRecordAt == "" {
		t.Fatalf("inforecord_at not stamped")
	}

	event, err := svc.Transition(ctx, TransitionInput{
		MaterialID: m.MaterialID,
		NewStatus:  string(workflow.StatusInfoRecordCreated),
		Actor:      jime,
		Comment:    "created",
	})
	if err != nil {
		t.Fatalf("Transition(created) error = %v", err)
	}

	second, err := svc.repo.GetMaterial(ctx, m.MaterialID)
	if err != nil {
		t.Fatalf("GetMaterial() error = %v", err)
	}
	// Both InfoRecord statuses write the same column; the second transition
	// overwrites the first stamp.
	if second.InfoRecordAt != event.OccurredAt {
		t.Fatalf("inforecord_at = %q, want %q", second.InfoRecordAt, event.OccurredAt)
	}
	if second.InfoRecordAt == first.InfoRecordAt {
		t.Fatalf("inforecord_at not overwritten")
	}
}
