/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mattrack/internal/bootstrap"
	"mattrack/internal/bootstrap/logging"
	"mattrack/internal/domain/workflow"
	"mattrack/internal/errs"
	"mattrack/internal/usecase/lifecycle"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the visible materials",
	Long:  "Aggregates the materials visible to the acting user: totals, counts per status, open materials per owner and created materials per ISO week.",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *lifecycle.Service, table workflow.AssignmentTable) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		actor, err := actorFromFlags(cmd, table)
		if err != nil {
			return err
		}

		report, err := svc.BuildReport(ctx, actor)
		if err != nil {
			logging.Error(ctx, "build report failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "build report")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "materials: %d total, %d open\n\n", report.Total, report.Open)

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STATUS\tCOUNT")
		for _, sc := range report.ByStatus {
			fmt.Fprintf(w, "%s\t%d\n", sc.Status, sc.Count)
		}
		fmt.Fprintln(w, "\nOWNER (OPEN)\tCOUNT")
		for _, oc := range report.OpenByOwner {
			fmt.Fprintf(w, "%s\t%d\n", oc.Owner, oc.Count)
		}
		fmt.Fprintln(w, "\nISO WEEK\tCREATED")
		for _, wc := range report.ByWeek {
			fmt.Fprintf(w, "%s\t%d\n", wc.Week, wc.Count)
		}
		if err := w.Flush(); err != nil {
			return errs.Wrap(err, "flush report output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(reportCmd)

	registerActorFlags(reportCmd)
}
