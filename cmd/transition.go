/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"mattrack/internal/bootstrap"
	"mattrack/internal/bootstrap/logging"
	"mattrack/internal/domain/workflow"
	"mattrack/internal/errs"
	"mattrack/internal/usecase/lifecycle"
)

// transitionCmd represents the transition command
var transitionCmd = &cobra.Command{
	Use:   "transition <material-id>",
	Short: "Move a material to a new status",
	Long:  "Applies an audited status change. The comment is mandatory, the acting user becomes the material owner, and the matching timestamp column is stamped.",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *lifecycle.Service, table workflow.AssignmentTable) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		actor, err := actorFromFlags(cmd, table)
		if err != nil {
			return err
		}

		input := lifecycle.TransitionInput{
			MaterialID: cmd.Flags().Arg(0),
			Actor:      actor,
		}
		input.NewStatus, _ = cmd.Flags().GetString("status")
		input.Comment, _ = cmd.Flags().GetString("comment")
		if cmd.Flags().Changed("sap-material") {
			v, _ := cmd.Flags().GetString("sap-material")
			input.SAPMaterialRef = &v
		}
		if cmd.Flags().Changed("sap-inforecord") {
			v, _ := cmd.Flags().GetString("sap-inforecord")
			input.SAPInfoRecordRef = &v
		}

		event, err := svc.Transition(ctx, input)
		if err != nil {
			logging.Error(ctx, "transition failed",
				slog.String("material_id", input.MaterialID),
				slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "transition material")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s (event %s by %s)\n",
			event.MaterialID, event.PreviousStatus, event.NewStatus, event.EventID, event.Actor)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(transitionCmd)

	registerActorFlags(transitionCmd)
	transitionCmd.Flags().String("status", "", "Target status")
	transitionCmd.Flags().String("comment", "", "Mandatory change comment")
	transitionCmd.Flags().String("sap-material", "", "SAP material number to record")
	transitionCmd.Flags().String("sap-inforecord", "", "SAP InfoRecord number to record")
	_ = transitionCmd.MarkFlagRequired("status")
	_ = transitionCmd.MarkFlagRequired("comment")
}
