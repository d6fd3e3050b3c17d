/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"mattrack/internal/bootstrap"
	"mattrack/internal/bootstrap/logging"
	"mattrack/internal/domain/workflow"
	"mattrack/internal/errs"
	"mattrack/internal/usecase/lifecycle"
)

// batchFile is the TOML shape accepted by --file. Request-level line and
// priority act as defaults for rows that leave them blank.
type batchFile struct {
	Materials []batchMaterial `toml:"materials"`
}

type batchMaterial struct {
	Line              string  `toml:"line"`
	Priority          string  `toml:"priority"`
	Item              string  `toml:"item"`
	Description       string  `toml:"description"`
	Station           string  `toml:"station"`
	Category          string  `toml:"category"`
	ChangeFrequency   string  `toml:"change_frequency"`
	RequiredStock     float64 `toml:"required_stock"`
	EquipmentCount    int     `toml:"equipment_count"`
	PartsPerEquipment int     `toml:"parts_per_equipment"`
	SuggestedRef      string  `toml:"suggested_ref"`
	Manufacturer      string  `toml:"manufacturer"`
}

// requestCmd represents the request command
var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Create a material request batch",
	Long:  "Creates a request with one material taken from flags, or several materials read from a TOML batch file. Valid rows are persisted even when other rows are rejected.",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *lifecycle.Service, _ workflow.AssignmentTable) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		input, err := requestInputFromFlags(cmd)
		if err != nil {
			return err
		}

		result, err := svc.CreateRequest(ctx, input)
		if err != nil {
			logging.Error(ctx, "create request failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "create request")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "request %s created (%d materials, %d rejected)\n",
			result.Request.RequestID, len(result.Created), len(result.Rejected))
		for _, m := range result.Created {
			fmt.Fprintf(out, "  %s  %-10s %-8s %s\n", m.MaterialID, m.Line, m.Priority, m.Description)
		}
		for _, r := range result.Rejected {
			var msgs []string
			for _, fe := range r.Errors {
				msgs = append(msgs, fe.Field+": "+fe.Message)
			}
			fmt.Fprintf(out, "  rejected row %d: %s\n", r.Index, strings.Join(msgs, "; "))
		}
		return nil
	}),
}

func requestInputFromFlags(cmd *cobra.Command) (lifecycle.CreateRequestInput, error) {
	flags := cmd.Flags()
	input := lifecycle.CreateRequestInput{}
	input.Requester, _ = flags.GetString("requester")
	input.Line, _ = flags.GetString("line")
	input.Priority, _ = flags.GetString("priority")
	input.Comment, _ = flags.GetString("comment")

	file, _ := flags.GetString("file")
	if file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return lifecycle.CreateRequestInput{}, errs.Wrapf(err, "read batch file %s", file)
		}
		var batch batchFile
		if err := toml.Unmarshal(raw, &batch); err != nil {
			return lifecycle.CreateRequestInput{}, errs.Wrapf(err, "parse batch file %s", file)
		}
		if len(batch.Materials) == 0 {
			return lifecycle.CreateRequestInput{}, errors.New("batch file contains no materials")
		}
		for _, row := range batch.Materials {
			input.Materials = append(input.Materials, workflow.MaterialInput(row))
		}
		return input, nil
	}

	row := workflow.MaterialInput{}
	row.Item, _ = flags.GetString("item")
	row.Description, _ = flags.GetString("description")
	row.Station, _ = flags.GetString("station")
	row.Category, _ = flags.GetString("category")
	row.ChangeFrequency, _ = flags.GetString("change-frequency")
	row.RequiredStock, _ = flags.GetFloat64("required-stock")
	row.EquipmentCount, _ = flags.GetInt("equipment-count")
	row.PartsPerEquipment, _ = flags.GetInt("parts-per-equipment")
	row.SuggestedRef, _ = flags.GetString("suggested-ref")
	row.Manufacturer, _ = flags.GetString("manufacturer")
	input.Materials = []workflow.MaterialInput{row}
	return input, nil
}

func init() {
	rootCmd.AddCommand(requestCmd)

	requestCmd.Flags().String("requester", "", "Requesting engineer identity")
	requestCmd.Flags().String("line", "", "Production line for the batch")
	requestCmd.Flags().String("priority", "", "Priority for the batch (High, Medium, Low)")
	requestCmd.Flags().String("comment", "", "Free-text comment on the request")
	requestCmd.Flags().String("file", "", "TOML batch file with [[materials]] rows")

	requestCmd.Flags().String("item", "", "Item short name")
	requestCmd.Flags().String("description", "", "Material description")
	requestCmd.Flags().String("station", "", "Station where the material is used")
	requestCmd.Flags().String("category", "", "Category (MAZE, FHMI, HIBE)")
	requestCmd.Flags().String("change-frequency", "", "Expected change frequency")
	requestCmd.Flags().Float64("required-stock", 0, "Required stock level")
	requestCmd.Flags().Int("equipment-count", 0, "Number of equipments using the material")
	requestCmd.Flags().Int("parts-per-equipment", 0, "Parts consumed per equipment")
	requestCmd.Flags().String("suggested-ref", "", "Suggested supplier reference")
	requestCmd.Flags().String("manufacturer", "", "Manufacturer name")

	_ = requestCmd.MarkFlagRequired("requester")
}
