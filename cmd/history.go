/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mattrack/internal/bootstrap"
	"mattrack/internal/bootstrap/logging"
	"mattrack/internal/domain/workflow"
	"mattrack/internal/errs"
	"mattrack/internal/ports"
	"mattrack/internal/usecase/lifecycle"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [material-id]",
	Short: "Show the audit trail",
	Long:  "Shows the audit trail of one material, or the full log across all materials with --all (oversight only).",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *lifecycle.Service, table workflow.AssignmentTable) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		actor, err := actorFromFlags(cmd, table)
		if err != nil {
			return err
		}

		all, _ := cmd.Flags().GetBool("all")

		var events []ports.AuditEvent
		switch {
		case all:
			events, err = svc.HistoryAll(ctx, actor)
		case cmd.Flags().NArg() == 1:
			events, err = svc.History(ctx, actor, cmd.Flags().Arg(0))
		default:
			return errors.New("material id or --all is required")
		}
		if err != nil {
			logging.Error(ctx, "load history failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "load history")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "OCCURRED\tMATERIAL\tACTOR\tROLE\tFROM\tTO\tCOMMENT")
		for _, e := range events {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				e.OccurredAt, e.MaterialID, e.Actor, e.ActorRole, e.PreviousStatus, e.NewStatus, e.Comment)
		}
		if err := w.Flush(); err != nil {
			return errs.Wrap(err, "flush history output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(historyCmd)

	registerActorFlags(historyCmd)
	historyCmd.Flags().Bool("all", false, "Full audit log across all materials (oversight only)")
}
