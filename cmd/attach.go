/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mattrack/internal/bootstrap"
	"mattrack/internal/bootstrap/logging"
	"mattrack/internal/domain/workflow"
	"mattrack/internal/errs"
	"mattrack/internal/usecase/lifecycle"
)

// attachCmd represents the attach command
var attachCmd = &cobra.Command{
	Use:   "attach <material-id> <file>",
	Short: "Upload a new attachment version",
	Long:  "Stores the file as the next version for the material. Versions are immutable; uploading again creates a new version, never overwrites.",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *lifecycle.Service, table workflow.AssignmentTable) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		actor, err := actorFromFlags(cmd, table)
		if err != nil {
			return err
		}

		materialID := cmd.Flags().Arg(0)
		path := cmd.Flags().Arg(1)
		data, err := os.ReadFile(path)
		if err != nil {
			return errs.Wrapf(err, "read attachment file %s", path)
		}

		mimeType, _ := cmd.Flags().GetString("mime")
		if mimeType == "" {
			mimeType = mime.TypeByExtension(filepath.Ext(path))
		}

		version, err := svc.AddAttachmentVersion(ctx, lifecycle.AddAttachmentInput{
			MaterialID:   materialID,
			OriginalName: filepath.Base(path),
			Mime:         mimeType,
			Data:         data,
			Actor:        actor,
		})
		if err != nil {
			logging.Error(ctx, "add attachment version failed",
				slog.String("material_id", materialID),
				slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "add attachment version")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "stored %s as version %d of %s (%d bytes)\n",
			version.StoredName, version.Version, version.MaterialID, version.SizeBytes)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(attachCmd)

	registerActorFlags(attachCmd)
	attachCmd.Flags().String("mime", "", "MIME type (detected from the extension when empty)")
}
