package lifecycle

import (
	"context"
	"testing"
	"time"

	"mattrack/internal/domain/workflow"
)

func TestBuildReport(t *testing.T) {
	svc := setupService(t, workflow.PolicyFree)
	ctx := context.Background()

	m1 := createOne(t, svc, "eng", "DP 02")
	createOne(t, svc, "eng", "SCU 33")
	createOne(t, svc, "eng", "KGT 22")

	jarol := lineOwner(t, svc, "Jarol")
	if _, err := svc.Transition(ctx, TransitionInput{
		MaterialID: m1.MaterialID,
		NewStatus:  string(workflow.StatusCompleted),
		Actor:      jarol,
		Comment:    "done",
	}); err != nil {
		t.Fatalf("Transition() error = %v", err)
	}

	report, err := svc.BuildReport(ctx, workflow.Actor{Identity: "boss", Role: workflow.RoleOversight})
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	if report.Total != 3 || report.Open != 2 {
		t.Fatalf("report totals = %d/%d", report.Total, report.Open)
	}

	// Status buckets cover the whole catalog in order, zeros included.
	catalog := workflow.StatusCatalog()
	if len(report.ByStatus) != len(catalog) {
		t.Fatalf("ByStatus len = %d", len(report.ByStatus))
	}
	counts := map[string]int{}
	for i, sc := range report.ByStatus {
		if sc.Status != string(catalog[i]) {
			t.Fatalf("ByStatus[%d] = %q, want %q", i, sc.Status, catalog[i])
		}
		counts[sc.Status] = sc.Count
	}
	if counts[string(workflow.InitialStatus)] != 2 || counts[string(workflow.StatusCompleted)] != 1 {
		t.Fatalf("status counts = %v", counts)
	}
	if counts[string(workflow.StatusQuotation)] != 0 {
		t.Fatalf("empty bucket count = %d", counts[string(workflow.StatusQuotation)])
	}

	// The completed material dropped out of the owner load; the two open
	// ones stayed with their routed owners.
	owners := map[string]int{}
	for _, oc := range report.OpenByOwner {
		owners[oc.Owner] = oc.Count
	}
	if owners["Jarol"] != 1 || owners["Niko"] != 1 {
		t.Fatalf("open by owner = %v", owners)
	}

	if len(report.ByWeek) != 1 {
		t.Fatalf("ByWeek = %+v", report.ByWeek)
	}
	wantWeek, ok := isoWeek(time.Now().UTC().Format(time.RFC3339Nano))
	if !ok {
		t.Fatalf("isoWeek() failed on now")
	}
	if report.ByWeek[0].Week != wantWeek || report.ByWeek[0].Count != 3 {
		t.Fatalf("ByWeek[0] = %+v, want %s x3", report.ByWeek[0], wantWeek)
	}
}

func TestReportScopedToActor(t *testing.T) {
	svc := setupService(t, workflow.PolicyFree)
	ctx := context.Background()

	createOne(t, svc, "eng-a", "DP 02")
	createOne(t, svc, "eng-b", "KGT 22")

	report, err := svc.BuildReport(ctx, workflow.Actor{Identity: "eng-a", Role: workflow.RoleRequester})
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	if report.Total != 1 {
		t.Fatalf("requester report total = %d", report.Total)
	}
}
