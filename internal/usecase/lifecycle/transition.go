package lifecycle

import (
	"context"
	"errors"
	"strings"

	"mattrack/internal/domain/workflow"
	"mattrack/internal/errs"
	"mattrack/internal/metrics"
	"mattrack/internal/ports"
)

// Transition applies one audited status change. The field updates and the
// audit event commit or roll back as one unit: a reader never observes the
// new status without its event, or the event without the status.
//
// Ownership is re-derived on every transition: the acting practitioner
// becomes the owner. That mirrors the observed "last editor owns it"
// behavior and is intentional.
func (s *Service) Transition(ctx context.Context, input TransitionInput) (ports.AuditEvent, error) {
	if ctx == nil {
		return ports.AuditEvent{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.AuditEvent{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil || s.uow == nil {
		return ports.AuditEvent{}, errors.New("lifecycle service is not fully wired")
	}

	if strings.TrimSpace(input.Actor.Identity) == "" {
		return ports.AuditEvent{}, &workflow.ValidationError{Fields: []workflow.FieldError{
			{Field: "actor", Message: "actor identity is required"},
		}}
	}

	// The comment is the system's only change-control mechanism; every
	// transition must carry one.
	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return ports.AuditEvent{}, &workflow.ValidationError{Fields: []workflow.FieldError{
			{Field: "comment", Message: "a comment is required for every status change"},
		}}
	}

	newStatus, err := workflow.ParseStatus(input.NewStatus)
	if err != nil {
		return ports.AuditEvent{}, &workflow.ValidationError{Fields: []workflow.FieldError{
			{Field: "status", Message: err.Error()},
		}}
	}

	var event ports.AuditEvent
	txErr := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		material, err := s.repo.GetMaterial(txCtx, input.MaterialID)
		if err != nil {
			return err
		}

		if !workflow.CanTransition(input.Actor, material.Line) {
			metrics.TransitionsDeniedTotal.Inc()
			return workflow.ErrForbidden
		}

		if err := s.policy.Check(workflow.Status(material.Status), newStatus); err != nil {
			return err
		}

		now := nowUTCString()
		upd := ports.StatusUpdate{
			Status:           string(newStatus),
			StatusComment:    comment,
			Owner:            input.Actor.Identity,
			SAPMaterialRef:   input.SAPMaterialRef,
			SAPInfoRecordRef: input.SAPInfoRecordRef,
		}
		if field, ok := workflow.StampFor(newStatus); ok {
			upd.StampField = string(field)
			upd.StampValue = now
		}

		if err := s.repo.UpdateStatus(txCtx, material.MaterialID, upd); err != nil {
			return err
		}

		event = ports.AuditEvent{
			EventID:        newEventID(),
			MaterialID:     material.MaterialID,
			OccurredAt:     now,
			Actor:          input.Actor.Identity,
			ActorRole:      string(input.Actor.Role),
			PreviousStatus: material.Status,
			NewStatus:      string(newStatus),
			Comment:        comment,
		}
		return s.repo.AppendAuditEvent(txCtx, event)
	})
	if txErr != nil {
		return ports.AuditEvent{}, txErr
	}

	metrics.TransitionsTotal.WithLabelValues(string(newStatus)).Inc()
	return event, nil
}
