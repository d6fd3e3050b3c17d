package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"mattrack/internal/domain/workflow"
	"mattrack/internal/errs"
	"mattrack/internal/infrastructure/persistence/sqlite/model"
	"mattrack/internal/ports"
)

type MaterialRepository struct {
	db *gorm.DB
}

var _ ports.MaterialRepository = (*MaterialRepository)(nil)

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *MaterialRepository) CreateMaterial(ctx context.Context, m ports.Material) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := materialToModel(m)
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert material")
	}
	return nil
}

func (r *MaterialRepository) GetMaterial(ctx context.Context, materialID string) (ports.Material, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Material{}, err
	}

	var row model.Material
	if err := db.Where("material_id = ?", materialID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Material{}, workflow.ErrMaterialNotFound
		}
		return ports.Material{}, errs.Wrap(err, "query material")
	}
	return materialFromModel(row), nil
}

func (r *MaterialRepository) ListMaterials(ctx context.Context, filter ports.MaterialFilter) ([]ports.Material, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Material{})
	if filter.ScopeLines != nil {
		query = query.Where("line IN ?", filter.ScopeLines)
	}
	if requester := strings.TrimSpace(filter.ScopeRequester); requester != "" {
		query = query.Where("requester = ?", requester)
	}
	if line := strings.TrimSpace(filter.Line); line != "" {
		query = query.Where("line = ?", line)
	}
	if owner := strings.TrimSpace(filter.Owner); owner != "" {
		query = query.Where("owner = ?", owner)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if filter.PendingOnly {
		query = query.Where("status <> ?", string(workflow.StatusCompleted))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + q + "%"
		query = query.Where(
			"material_id LIKE ? OR request_id LIKE ? OR description LIKE ? OR item LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var rows []model.Material
	if err := query.Order("created_at desc, material_id asc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query materials")
	}

	items := make([]ports.Material, 0, len(rows))
	for _, row := range rows {
		items = append(items, materialFromModel(row))
	}
	return items, nil
}

func (r *MaterialRepository) UpdateStatus(ctx context.Context, materialID string, upd ports.StatusUpdate) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	updates := map[string]any{
		"status":         upd.Status,
		"status_comment": upd.StatusComment,
		"owner":          upd.Owner,
	}
	if upd.StampField != "" {
		updates[upd.StampField] = upd.StampValue
	}
	if upd.SAPMaterialRef != nil {
		updates["sap_material_ref"] = *upd.SAPMaterialRef
	}
	if upd.SAPInfoRecordRef != nil {
		updates["sap_inforecord_ref"] = *upd.SAPInfoRecordRef
	}

	res := db.Model(&model.Material{}).Where("material_id = ?", materialID).Updates(updates)
	if res.Error != nil {
		return errs.Wrap(res.Error, "update material status")
	}
	if res.RowsAffected == 0 {
		return workflow.ErrMaterialNotFound
	}
	return nil
}

func (r *MaterialRepository) AppendAuditEvent(ctx context.Context, event ports.AuditEvent) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.AuditEvent{
		EventID:        event.EventID,
		MaterialID:     event.MaterialID,
		OccurredAt:     event.OccurredAt,
		Actor:          event.Actor,
		ActorRole:      event.ActorRole,
		PreviousStatus: event.PreviousStatus,
		NewStatus:      event.NewStatus,
		Comment:        event.Comment,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "append audit event")
	}
	return nil
}

func (r *MaterialRepository) ListAuditEvents(ctx context.Context, materialID string) ([]ports.AuditEvent, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.AuditEvent
	if err := db.
		Where("material_id = ?", materialID).
		Order("occurred_at desc, event_id desc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query audit events")
	}
	return auditEventsFromModels(rows), nil
}

func (r *MaterialRepository) ListAllAuditEvents(ctx context.Context) ([]ports.AuditEvent, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.AuditEvent
	if err := db.Order("occurred_at desc, event_id desc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query audit events")
	}
	return auditEventsFromModels(rows), nil
}

func (r *MaterialRepository) MaxAttachmentVersion(ctx context.Context, materialID string) (int, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	var max int
	if err := db.Model(&model.AttachmentVersion{}).
		Where("material_id = ?", materialID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&max).Error; err != nil {
		return 0, errs.Wrap(err, "query max attachment version")
	}
	return max, nil
}

func (r *MaterialRepository) CreateAttachmentVersion(ctx context.Context, v ports.AttachmentVersion) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.AttachmentVersion{
		AttachmentID: v.AttachmentID,
		MaterialID:   v.MaterialID,
		Version:      v.Version,
		OriginalName: v.OriginalName,
		StoredName:   v.StoredName,
		Mime:         v.Mime,
		SizeBytes:    v.SizeBytes,
		UploadedAt:   v.UploadedAt,
		UploadedBy:   v.UploadedBy,
	}
	if err := db.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return workflow.ErrVersionConflict
		}
		return errs.Wrap(err, "insert attachment version")
	}
	return nil
}

func (r *MaterialRepository) ListAttachmentVersions(ctx context.Context, materialID string) ([]ports.AttachmentVersion, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.AttachmentVersion
	if err := db.
		Where("material_id = ?", materialID).
		Order("version desc").
		Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query attachment versions")
	}

	items := make([]ports.AttachmentVersion, 0, len(rows))
	for _, row := range rows {
		items = append(items, attachmentFromModel(row))
	}
	return items, nil
}

func (r *MaterialRepository) LatestAttachmentVersion(ctx context.Context, materialID string) (ports.AttachmentVersion, bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.AttachmentVersion{}, false, err
	}

	var row model.AttachmentVersion
	if err := db.
		Where("material_id = ?", materialID).
		Order("version desc").
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.AttachmentVersion{}, false, nil
		}
		return ports.AttachmentVersion{}, false, errs.Wrap(err, "query latest attachment version")
	}
	return attachmentFromModel(row), true, nil
}

// isUniqueViolation detects the duplicate-key error glebarez/sqlite reports
// when two allocations race on (material_id, version).
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func materialToModel(m ports.Material) model.Material {
	return model.Material{
		MaterialID:        m.MaterialID,
		RequestID:         m.RequestID,
		CreatedAt:         m.CreatedAt,
		Requester:         m.Requester,
		Line:              m.Line,
		Priority:          m.Priority,
		RequestComment:    m.RequestComment,
		Item:              m.Item,
		Description:       m.Description,
		Station:           m.Station,
		Category:          m.Category,
		ChangeFrequency:   m.ChangeFrequency,
		RequiredStock:     m.RequiredStock,
		EquipmentCount:    m.EquipmentCount,
		PartsPerEquipment: m.PartsPerEquipment,
		SuggestedRef:      m.SuggestedRef,
		Manufacturer:      m.Manufacturer,
		Status:            m.Status,
		Owner:             m.Owner,
		StatusComment:     m.StatusComment,
		SAPMaterialRef:    m.SAPMaterialRef,
		SAPInfoRecordRef:  m.SAPInfoRecordRef,
		ReviewAt:          m.ReviewAt,
		QuotationAt:       m.QuotationAt,
		SAPCreationAt:     m.SAPCreationAt,
		InfoRecordAt:      m.InfoRecordAt,
		CompletedAt:       m.CompletedAt,
	}
}

func materialFromModel(row model.Material) ports.Material {
	return ports.Material{
		MaterialID:        row.MaterialID,
		RequestID:         row.RequestID,
		CreatedAt:         row.CreatedAt,
		Requester:         row.Requester,
		Line:              row.Line,
		Priority:          row.Priority,
		RequestComment:    row.RequestComment,
		Item:              row.Item,
		Description:       row.Description,
		Station:           row.Station,
		Category:          row.Category,
		ChangeFrequency:   row.ChangeFrequency,
		RequiredStock:     row.RequiredStock,
		EquipmentCount:    row.EquipmentCount,
		PartsPerEquipment: row.PartsPerEquipment,
		SuggestedRef:      row.SuggestedRef,
		Manufacturer:      row.Manufacturer,
		Status:            row.Status,
		Owner:             row.Owner,
		StatusComment:     row.StatusComment,
		SAPMaterialRef:    row.SAPMaterialRef,
		SAPInfoRecordRef:  row.SAPInfoRecordRef,
		ReviewAt:          row.ReviewAt,
		QuotationAt:       row.QuotationAt,
		SAPCreationAt:     row.SAPCreationAt,
		InfoRecordAt:      row.InfoRecordAt,
		CompletedAt:       row.CompletedAt,
	}
}

func auditEventsFromModels(rows []model.AuditEvent) []ports.AuditEvent {
	items := make([]ports.AuditEvent, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.AuditEvent{
			EventID:        row.EventID,
			MaterialID:     row.MaterialID,
			OccurredAt:     row.OccurredAt,
			Actor:          row.Actor,
			ActorRole:      row.ActorRole,
			PreviousStatus: row.PreviousStatus,
			NewStatus:      row.NewStatus,
			Comment:        row.Comment,
		})
	}
	return items
}

func attachmentFromModel(row model.AttachmentVersion) ports.AttachmentVersion {
	return ports.AttachmentVersion{
		AttachmentID: row.AttachmentID,
		MaterialID:   row.MaterialID,
		Version:      row.Version,
		OriginalName: row.OriginalName,
		StoredName:   row.StoredName,
		Mime:         row.Mime,
		SizeBytes:    row.SizeBytes,
		UploadedAt:   row.UploadedAt,
		UploadedBy:   row.UploadedBy,
	}
}
