package config

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"mattrack/internal/bootstrap/logging"
	"mattrack/internal/domain/workflow"
	"mattrack/internal/errs"
)

type assignmentsFile struct {
	Lines map[string][]string `toml:"lines"`
}

// LoadAssignments reads the line->owner routing table from a TOML file of the
// form:
//
//	[lines]
//	Jarol = ["DP 02", "SCU 33"]
//
// A missing file falls back to the built-in default table; a present but
// invalid file is a hard error.
func LoadAssignments(ctx context.Context, path string) (workflow.AssignmentTable, error) {
	if ctx == nil {
		return workflow.AssignmentTable{}, errors.New("context is required")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "bootstrap.assignments"))

	if path == "" {
		logging.Info(logCtx, "no assignments file configured, using default table")
		return workflow.NewAssignmentTable(workflow.DefaultAssignments())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Warn(logCtx, "assignments file not found, using default table", slog.String("path", path))
			return workflow.NewAssignmentTable(workflow.DefaultAssignments())
		}
		return workflow.AssignmentTable{}, errs.Wrapf(err, "read assignments file %q", path)
	}

	var parsed assignmentsFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return workflow.AssignmentTable{}, errs.Wrapf(err, "parse assignments file %q", path)
	}
	if len(parsed.Lines) == 0 {
		return workflow.AssignmentTable{}, errors.New("assignments file has no [lines] table")
	}

	table, err := workflow.NewAssignmentTable(parsed.Lines)
	if err != nil {
		return workflow.AssignmentTable{}, errs.Wrapf(err, "validate assignments file %q", path)
	}

	logging.Info(logCtx, "assignments loaded", slog.String("path", path), slog.Int("lines", len(table.Lines())))
	return table, nil
}
