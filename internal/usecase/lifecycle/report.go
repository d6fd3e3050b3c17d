package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"mattrack/internal/domain/workflow"
	"mattrack/internal/errs"
)

// StatusCount is one bucket of the status distribution.
type StatusCount struct {
	Status string
	Count  int
}

// OwnerCount is the open-item load of one practitioner.
type OwnerCount struct {
	Owner string
	Count int
}

// WeekCount is the creation volume of one ISO week (YYYY-Www).
type WeekCount struct {
	Week  string
	Count int
}

// Report aggregates the materials visible to the actor: the KPI counters and
// weekly trend the oversight dashboard consumed.
type Report struct {
	Total       int
	Open        int
	ByStatus    []StatusCount
	OpenByOwner []OwnerCount
	ByWeek      []WeekCount
}

// BuildReport computes the report over the actor's visibility scope.
func (s *Service) BuildReport(ctx context.Context, actor workflow.Actor) (Report, error) {
	if ctx == nil {
		return Report{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Report{}, errs.Wrap(err, "check context")
	}

	materials, err := s.repo.ListMaterials(ctx, scopeFor(actor))
	if err != nil {
		return Report{}, err
	}

	byStatus := make(map[string]int)
	byOwner := make(map[string]int)
	byWeek := make(map[string]int)
	open := 0

	for _, m := range materials {
		byStatus[m.Status]++
		if m.Status != string(workflow.StatusCompleted) {
			open++
			owner := m.Owner
			if owner == "" {
				owner = "(unassigned)"
			}
			byOwner[owner]++
		}
		if week, ok := isoWeek(m.CreatedAt); ok {
			byWeek[week]++
		}
	}

	report := Report{
		Total: len(materials),
		Open:  open,
	}

	// Status buckets follow catalog order and include empty ones, the way
	// the KPI row displayed them.
	for _, status := range workflow.StatusCatalog() {
		report.ByStatus = append(report.ByStatus, StatusCount{
			Status: string(status),
			Count:  byStatus[string(status)],
		})
	}

	for owner, count := range byOwner {
		report.OpenByOwner = append(report.OpenByOwner, OwnerCount{Owner: owner, Count: count})
	}
	sort.Slice(report.OpenByOwner, func(i, j int) bool {
		return report.OpenByOwner[i].Owner < report.OpenByOwner[j].Owner
	})

	for week, count := range byWeek {
		report.ByWeek = append(report.ByWeek, WeekCount{Week: week, Count: count})
	}
	sort.Slice(report.ByWeek, func(i, j int) bool {
		return report.ByWeek[i].Week < report.ByWeek[j].Week
	})

	return report, nil
}

func isoWeek(createdAt string) (string, bool) {
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return "", false
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week), true
}
