package workflow

import (
	"strings"
	"testing"
)

func TestNewAssignmentTableValidation(t *testing.T) {
	if _, err := NewAssignmentTable(map[string][]string{"": {"L1"}}); err == nil {
		t.Fatalf("empty owner accepted")
	}
	if _, err := NewAssignmentTable(map[string][]string{"A": {""}}); err == nil {
		t.Fatalf("empty line accepted")
	}
	_, err := NewAssignmentTable(map[string][]string{"A": {"L1"}, "B": {"L1"}})
	if err == nil || !strings.Contains(err.Error(), "L1") {
		t.Fatalf("duplicate line error = %v", err)
	}
}

func TestDefaultAssignmentsRouting(t *testing.T) {
	table, err := NewAssignmentTable(DefaultAssignments())
	if err != nil {
		t.Fatalf("NewAssignmentTable() error = %v", err)
	}

	if got := table.OwnerFor("DP 02"); got != "Jarol" {
		t.Fatalf("OwnerFor(DP 02) = %q", got)
	}
	if got := table.OwnerFor("SERVO 24"); got != "Lalo" {
		t.Fatalf("OwnerFor(SERVO 24) = %q", got)
	}
	if got := table.OwnerFor("SENSOR 5"); got != "Jime" {
		t.Fatalf("OwnerFor(SENSOR 5) = %q", got)
	}
	if got := table.OwnerFor("LG 03"); got != "Niko" {
		t.Fatalf("OwnerFor(LG 03) = %q", got)
	}
	if got := table.OwnerFor("NOPE 99"); got != "" {
		t.Fatalf("OwnerFor(unknown) = %q, want empty", got)
	}

	if len(table.Lines()) != 17 {
		t.Fatalf("Lines() len = %d", len(table.Lines()))
	}
	if !table.HasLine("KGT 23") || table.HasLine("KGT 99") {
		t.Fatalf("HasLine catalog check failed")
	}
}

func TestLinesOfSorted(t *testing.T) {
	table, err := NewAssignmentTable(DefaultAssignments())
	if err != nil {
		t.Fatalf("NewAssignmentTable() error = %v", err)
	}
	lines := table.LinesOf("Lalo")
	want := []string{"APA 36", "APA 38", "SERVO 10", "SERVO 24"}
	if len(lines) != len(want) {
		t.Fatalf("LinesOf(Lalo) = %v", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("LinesOf(Lalo)[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
	if got := table.LinesOf("nobody"); len(got) != 0 {
		t.Fatalf("LinesOf(nobody) = %v", got)
	}
}
