/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mattrack/internal/bootstrap"
	"mattrack/internal/bootstrap/logging"
	"mattrack/internal/domain/workflow"
	"mattrack/internal/errs"
	"mattrack/internal/usecase/lifecycle"
)

// versionsCmd represents the versions command
var versionsCmd = &cobra.Command{
	Use:   "versions <material-id>",
	Short: "List attachment versions",
	Long:  "Lists the attachment versions of a material, newest first. With --download the payload of one version (0 means latest) is written to --out.",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *lifecycle.Service, table workflow.AssignmentTable) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		actor, err := actorFromFlags(cmd, table)
		if err != nil {
			return err
		}
		materialID := cmd.Flags().Arg(0)

		if cmd.Flags().Changed("download") {
			version, _ := cmd.Flags().GetInt("download")
			out, _ := cmd.Flags().GetString("out")
			meta, data, err := svc.OpenAttachment(ctx, actor, materialID, version)
			if err != nil {
				logging.Error(ctx, "open attachment failed",
					slog.String("material_id", materialID),
					slog.Any("err", errs.Loggable(err)))
				return errs.Wrap(err, "open attachment")
			}
			if out == "" {
				out = meta.OriginalName
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return errs.Wrapf(err, "write attachment to %s", out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote version %d of %s to %s (%d bytes)\n",
				meta.Version, materialID, out, len(data))
			return nil
		}

		versions, err := svc.ListAttachmentVersions(ctx, actor, materialID)
		if err != nil {
			logging.Error(ctx, "list attachment versions failed",
				slog.String("material_id", materialID),
				slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list attachment versions")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tSTORED NAME\tORIGINAL NAME\tSIZE\tUPLOADED AT\tUPLOADED BY")
		for _, v := range versions {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
				v.Version, v.StoredName, v.OriginalName, v.SizeBytes, v.UploadedAt, v.UploadedBy)
		}
		if err := w.Flush(); err != nil {
			return errs.Wrap(err, "flush versions output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(versionsCmd)

	registerActorFlags(versionsCmd)
	versionsCmd.Flags().Int("download", 0, "Download this version (0 means latest)")
	versionsCmd.Flags().String("out", "", "Output path for --download (defaults to the original name)")
}
