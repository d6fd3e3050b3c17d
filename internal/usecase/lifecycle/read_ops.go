package lifecycle

import (
	"context"
	"errors"

	"mattrack/internal/domain/workflow"
	"mattrack/internal/errs"
	"mattrack/internal/ports"
)

// viewableMaterial fetches a material and enforces the view gate.
func (s *Service) viewableMaterial(ctx context.Context, actor workflow.Actor, materialID string) (ports.Material, error) {
	if ctx == nil {
		return ports.Material{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.Material{}, errs.Wrap(err, "check context")
	}

	material, err := s.repo.GetMaterial(ctx, materialID)
	if err != nil {
		return ports.Material{}, err
	}
	if !workflow.CanView(actor, material.Line, material.Requester) {
		return ports.Material{}, workflow.ErrForbidden
	}
	return material, nil
}

// scopeFor translates the actor's role into the repository visibility scope.
func scopeFor(actor workflow.Actor) ports.MaterialFilter {
	switch actor.Role {
	case workflow.RoleOversight:
		return ports.MaterialFilter{}
	case workflow.RoleLineOwner:
		lines := actor.Lines
		if lines == nil {
			lines = []string{}
		}
		return ports.MaterialFilter{ScopeLines: lines}
	default:
		return ports.MaterialFilter{ScopeRequester: actor.Identity}
	}
}

// ListMaterials returns the materials visible to the actor, narrowed by the
// caller's filter. Line owners see their lines, requesters their own
// requests, oversight everything.
func (s *Service) ListMaterials(ctx context.Context, actor workflow.Actor, filter ListFilter) ([]ports.Material, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	repoFilter := scopeFor(actor)
	repoFilter.Line = filter.Line
	repoFilter.Owner = filter.Owner
	repoFilter.Status = filter.Status
	repoFilter.PendingOnly = filter.PendingOnly
	repoFilter.Query = filter.Query

	return s.repo.ListMaterials(ctx, repoFilter)
}

// GetMaterialDetail returns one material with its audit history (newest
// first) and attachment versions (newest first).
func (s *Service) GetMaterialDetail(ctx context.Context, actor workflow.Actor, materialID string) (MaterialDetail, error) {
	material, err := s.viewableMaterial(ctx, actor, materialID)
	if err != nil {
		return MaterialDetail{}, err
	}

	events, err := s.repo.ListAuditEvents(ctx, material.MaterialID)
	if err != nil {
		return MaterialDetail{}, err
	}
	versions, err := s.repo.ListAttachmentVersions(ctx, material.MaterialID)
	if err != nil {
		return MaterialDetail{}, err
	}

	return MaterialDetail{
		Material: material,
		Events:   events,
		Versions: versions,
	}, nil
}

// History returns the audit trail of one material, newest first.
func (s *Service) History(ctx context.Context, actor workflow.Actor, materialID string) ([]ports.AuditEvent, error) {
	material, err := s.viewableMaterial(ctx, actor, materialID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListAuditEvents(ctx, material.MaterialID)
}

// HistoryAll returns the complete audit log, newest first. Oversight only.
func (s *Service) HistoryAll(ctx context.Context, actor workflow.Actor) ([]ports.AuditEvent, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	if actor.Role != workflow.RoleOversight {
		return nil, workflow.ErrForbidden
	}
	return s.repo.ListAllAuditEvents(ctx)
}
