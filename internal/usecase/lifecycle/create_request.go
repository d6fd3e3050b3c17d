package lifecycle

import (
	"context"
	"errors"
	"strings"
	"time"

	"mattrack/internal/domain/workflow"
	"mattrack/internal/errs"
	"mattrack/internal/metrics"
	"mattrack/internal/ports"
)

// CreateRequest validates and persists a batch of materials. Violations are
// collected per row and reported back; valid rows are persisted regardless,
// each in its own transaction, so a batch never fails wholesale. A storage
// failure mid-batch returns the rows committed so far with the error. Creation
// writes no audit event: the initial status is implicit state, not a
// transition.
func (s *Service) CreateRequest(ctx context.Context, input CreateRequestInput) (CreateRequestResult, error) {
	if ctx == nil {
		return CreateRequestResult{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return CreateRequestResult{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil || s.uow == nil {
		return CreateRequestResult{}, errors.New("lifecycle service is not fully wired")
	}

	requester := strings.TrimSpace(input.Requester)
	if requester == "" {
		return CreateRequestResult{}, &workflow.ValidationError{Fields: []workflow.FieldError{
			{Field: "requester", Message: "requester is required"},
		}}
	}
	if len(input.Materials) == 0 {
		return CreateRequestResult{}, &workflow.ValidationError{Fields: []workflow.FieldError{
			{Field: "materials", Message: "at least one material is required"},
		}}
	}

	now := time.Now().UTC()
	nowStr := now.Format(time.RFC3339Nano)

	result := CreateRequestResult{
		Request: Request{
			RequestID: newRequestID(now),
			CreatedAt: nowStr,
			Requester: requester,
			Line:      strings.TrimSpace(input.Line),
			Priority:  workflow.NormalizePriority(strings.TrimSpace(input.Priority)),
			Comment:   strings.TrimSpace(input.Comment),
		},
	}

	for i, row := range input.Materials {
		in := applyRequestDefaults(row, result.Request)

		if fieldErrs := workflow.ValidateMaterial(in, s.table); len(fieldErrs) > 0 {
			metrics.MaterialsRejectedTotal.Inc()
			result.Rejected = append(result.Rejected, RejectedMaterial{
				Index:  i,
				Input:  in,
				Errors: fieldErrs,
			})
			continue
		}

		material := ports.Material{
			MaterialID:        newMaterialID(),
			RequestID:         result.Request.RequestID,
			CreatedAt:         nowStr,
			Requester:         requester,
			Line:              in.Line,
			Priority:          in.Priority,
			RequestComment:    result.Request.Comment,
			Item:              strings.TrimSpace(in.Item),
			Description:       strings.TrimSpace(in.Description),
			Station:           strings.TrimSpace(in.Station),
			Category:          in.Category,
			ChangeFrequency:   strings.TrimSpace(in.ChangeFrequency),
			RequiredStock:     in.RequiredStock,
			EquipmentCount:    in.EquipmentCount,
			PartsPerEquipment: in.PartsPerEquipment,
			SuggestedRef:      strings.TrimSpace(in.SuggestedRef),
			Manufacturer:      strings.TrimSpace(in.Manufacturer),
			Status:            string(workflow.InitialStatus),
			Owner:             s.table.OwnerFor(in.Line),
		}

		if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
			return s.repo.CreateMaterial(txCtx, material)
		}); err != nil {
			// Earlier rows are already committed, each in its own
			// transaction; hand them back so the caller knows what exists.
			return result, errs.Wrapf(err, "persist material %s", material.MaterialID)
		}

		metrics.MaterialsCreatedTotal.Inc()
		result.Created = append(result.Created, material)
	}

	return result, nil
}

func applyRequestDefaults(in workflow.MaterialInput, req Request) workflow.MaterialInput {
	in.Line = strings.TrimSpace(in.Line)
	if in.Line == "" {
		in.Line = req.Line
	}
	in.Priority = strings.TrimSpace(in.Priority)
	if in.Priority == "" {
		in.Priority = req.Priority
	}
	in.Priority = workflow.NormalizePriority(in.Priority)
	in.Category = workflow.NormalizeCategory(in.Category)
	return in
}
