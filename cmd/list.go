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

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List visible materials",
	Long:  "Lists the materials the acting user may see: everything for oversight, the owned lines for line owners, own requests for requesters.",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *lifecycle.Service, table workflow.AssignmentTable) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		actor, err := actorFromFlags(cmd, table)
		if err != nil {
			return err
		}

		filter := lifecycle.ListFilter{}
		filter.Line, _ = cmd.Flags().GetString("line")
		filter.Owner, _ = cmd.Flags().GetString("owner")
		filter.Status, _ = cmd.Flags().GetString("status")
		filter.PendingOnly, _ = cmd.Flags().GetBool("pending")
		filter.Query, _ = cmd.Flags().GetString("query")

		materials, err := svc.ListMaterials(ctx, actor, filter)
		if err != nil {
			logging.Error(ctx, "list materials failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list materials")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MATERIAL\tLINE\tPRIORITY\tSTATUS\tOWNER\tDESCRIPTION")
		for _, m := range materials {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				m.MaterialID, m.Line, m.Priority, m.Status, m.Owner, m.Description)
		}
		if err := w.Flush(); err != nil {
			return errs.Wrap(err, "flush list output")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d materials\n", len(materials))
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(listCmd)

	registerActorFlags(listCmd)
	listCmd.Flags().String("line", "", "Filter by production line")
	listCmd.Flags().String("owner", "", "Filter by owner")
	listCmd.Flags().String("status", "", "Filter by status")
	listCmd.Flags().Bool("pending", false, "Only materials not yet completed")
	listCmd.Flags().String("query", "", "Match material id, request id, description or item")
}
