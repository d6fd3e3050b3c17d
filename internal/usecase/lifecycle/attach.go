package lifecycle

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"mattrack/internal/domain/workflow"
	"mattrack/internal/errs"
	"mattrack/internal/metrics"
	"mattrack/internal/ports"
)

// versionAllocationAttempts bounds the retry loop when concurrent uploads
// race on the same version number.
const versionAllocationAttempts = 5

// AddAttachmentVersion stores a new immutable file version for a material.
// The version number is allocated inside the transaction that inserts the
// metadata row; the unique (material_id, version) index turns a concurrent
// double-allocation into a conflict, which is retried with a fresh number.
// Prior versions are never deleted or overwritten.
func (s *Service) AddAttachmentVersion(ctx context.Context, input AddAttachmentInput) (ports.AttachmentVersion, error) {
	if ctx == nil {
		return ports.AttachmentVersion{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.AttachmentVersion{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil || s.uow == nil || s.files == nil {
		return ports.AttachmentVersion{}, errors.New("lifecycle service is not fully wired")
	}

	uploader := strings.TrimSpace(input.Actor.Identity)
	if uploader == "" {
		return ports.AttachmentVersion{}, &workflow.ValidationError{Fields: []workflow.FieldError{
			{Field: "actor", Message: "uploader identity is required"},
		}}
	}
	originalName := strings.TrimSpace(input.OriginalName)
	if originalName == "" {
		return ports.AttachmentVersion{}, &workflow.ValidationError{Fields: []workflow.FieldError{
			{Field: "original_name", Message: "original filename is required"},
		}}
	}

	// Uploads are gated like reads: an actor who may not see a material may
	// not attach files to it either.
	material, err := s.viewableMaterial(ctx, input.Actor, input.MaterialID)
	if err != nil {
		return ports.AttachmentVersion{}, err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if len(ext) > 12 {
		ext = ext[:12]
	}

	var created ports.AttachmentVersion
	for attempt := 0; attempt < versionAllocationAttempts; attempt++ {
		txErr := s.uow.WithTx(ctx, func(txCtx context.Context) error {
			max, err := s.repo.MaxAttachmentVersion(txCtx, material.MaterialID)
			if err != nil {
				return err
			}
			version := max + 1

			v := ports.AttachmentVersion{
				AttachmentID: newAttachmentID(),
				MaterialID:   material.MaterialID,
				Version:      version,
				OriginalName: originalName,
				StoredName:   material.MaterialID + "_v" + strconv.Itoa(version) + ext,
				Mime:         strings.TrimSpace(input.Mime),
				SizeBytes:    int64(len(input.Data)),
				UploadedAt:   nowUTCString(),
				UploadedBy:   uploader,
			}

			// Insert first: winning the unique index makes the stored name
			// exclusively ours before any bytes hit the file store.
			if err := s.repo.CreateAttachmentVersion(txCtx, v); err != nil {
				return err
			}
			if err := s.files.Save(txCtx, v.StoredName, input.Data); err != nil {
				return errs.Wrap(err, "store attachment payload")
			}

			created = v
			return nil
		})
		if txErr == nil {
			metrics.AttachmentVersionsTotal.Inc()
			return created, nil
		}
		if errors.Is(txErr, workflow.ErrVersionConflict) {
			metrics.AttachmentVersionConflictsTotal.Inc()
			continue
		}
		return ports.AttachmentVersion{}, txErr
	}

	return ports.AttachmentVersion{}, errs.Wrapf(workflow.ErrVersionConflict,
		"allocate version for %s after %d attempts", material.MaterialID, versionAllocationAttempts)
}

// ListAttachmentVersions returns every version of a material, newest first.
func (s *Service) ListAttachmentVersions(ctx context.Context, actor workflow.Actor, materialID string) ([]ports.AttachmentVersion, error) {
	material, err := s.viewableMaterial(ctx, actor, materialID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListAttachmentVersions(ctx, material.MaterialID)
}

// LatestAttachmentVersion returns the highest version, or ok=false when the
// material has no attachments.
func (s *Service) LatestAttachmentVersion(ctx context.Context, actor workflow.Actor, materialID string) (ports.AttachmentVersion, bool, error) {
	material, err := s.viewableMaterial(ctx, actor, materialID)
	if err != nil {
		return ports.AttachmentVersion{}, false, err
	}
	return s.repo.LatestAttachmentVersion(ctx, material.MaterialID)
}

// OpenAttachment reads the payload of one stored version. Version 0 means
// the latest.
func (s *Service) OpenAttachment(ctx context.Context, actor workflow.Actor, materialID string, version int) (ports.AttachmentVersion, []byte, error) {
	material, err := s.viewableMaterial(ctx, actor, materialID)
	if err != nil {
		return ports.AttachmentVersion{}, nil, err
	}

	var target ports.AttachmentVersion
	if version <= 0 {
		latest, ok, err := s.repo.LatestAttachmentVersion(ctx, material.MaterialID)
		if err != nil {
			return ports.AttachmentVersion{}, nil, err
		}
		if !ok {
			return ports.AttachmentVersion{}, nil, errors.New("material has no attachments")
		}
		target = latest
	} else {
		versions, err := s.repo.ListAttachmentVersions(ctx, material.MaterialID)
		if err != nil {
			return ports.AttachmentVersion{}, nil, err
		}
		found := false
		for _, v := range versions {
			if v.Version == version {
				target = v
				found = true
				break
			}
		}
		if !found {
			return ports.AttachmentVersion{}, nil, errs.Wrapf(errors.New("version not found"), "material %s version %d", materialID, version)
		}
	}

	data, err := s.files.Open(ctx, target.StoredName)
	if err != nil {
		return ports.AttachmentVersion{}, nil, err
	}
	return target, data, nil
}
