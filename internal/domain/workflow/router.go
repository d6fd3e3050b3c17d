package workflow

import (
	"fmt"
	"sort"
)

// AssignmentTable maps production lines to the practitioner who owns them.
// The table doubles as the line catalog: a line is valid iff it appears here.
type AssignmentTable struct {
	ownerByLine map[string]string
}

// NewAssignmentTable builds and validates a table from owner -> lines.
// Validation happens once at load: an empty owner name, an empty line, or a
// line mapped to two owners is a configuration error.
func NewAssignmentTable(linesByOwner map[string][]string) (AssignmentTable, error) {
	ownerByLine := make(map[string]string)
	for owner, lines := range linesByOwner {
		if owner == "" {
			return AssignmentTable{}, fmt.Errorf("assignment table: empty owner name")
		}
		for _, line := range lines {
			if line == "" {
				return AssignmentTable{}, fmt.Errorf("assignment table: owner %q has an empty line", owner)
			}
			if prev, ok := ownerByLine[line]; ok && prev != owner {
				return AssignmentTable{}, fmt.Errorf("assignment table: line %q mapped to both %q and %q", line, prev, owner)
			}
			ownerByLine[line] = owner
		}
	}
	return AssignmentTable{ownerByLine: ownerByLine}, nil
}

// DefaultAssignments is the line routing observed in production.
func DefaultAssignments() map[string][]string {
	return map[string][]string{
		"Jarol": {"DP 02", "SCU 33", "SCU 34", "SCU 48", "SSL1"},
		"Lalo":  {"APA 36", "APA 38", "SERVO 10", "SERVO 24"},
		"Jime":  {"DP 32", "DP 35", "SENSOR 28", "SENSOR 5"},
		"Niko":  {"KGT 22", "KGT 23", "LG 01", "LG 03"},
	}
}

// OwnerFor returns the owning practitioner for a line, or "" when the line is
// not in the table. Unassigned is a valid result, not an error.
func (t AssignmentTable) OwnerFor(line string) string {
	return t.ownerByLine[line]
}

// HasLine reports whether line is in the catalog.
func (t AssignmentTable) HasLine(line string) bool {
	_, ok := t.ownerByLine[line]
	return ok
}

// Lines returns the sorted line catalog.
func (t AssignmentTable) Lines() []string {
	lines := make([]string, 0, len(t.ownerByLine))
	for line := range t.ownerByLine {
		lines = append(lines, line)
	}
	sort.Strings(lines)
	return lines
}

// LinesOf returns the sorted lines owned by one practitioner.
func (t AssignmentTable) LinesOf(owner string) []string {
	lines := make([]string, 0, 4)
	for line, o := range t.ownerByLine {
		if o == owner {
			lines = append(lines, line)
		}
	}
	sort.Strings(lines)
	return lines
}
