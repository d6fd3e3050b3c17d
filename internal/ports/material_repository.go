package ports

import (
	"context"
)

// Material is the persisted material record, request fields denormalized onto
// it. Timestamps travel as RFC3339 strings; empty means not reached.
type Material struct {
	MaterialID     string
	RequestID      string
	CreatedAt      string
	Requester      string
	Line           string
	Priority       string
	RequestComment string

	Item              string
	Description       string
	Station           string
	Category          string
	ChangeFrequency   string
	RequiredStock     float64
	EquipmentCount    int
	PartsPerEquipment int
	SuggestedRef      string
	Manufacturer      string

	Status           string
	Owner            string
	StatusComment    string
	SAPMaterialRef   string
	SAPInfoRecordRef string

	ReviewAt      string
	QuotationAt   string
	SAPCreationAt string
	InfoRecordAt  string
	CompletedAt   string
}

// AuditEvent is one immutable transition record.
type AuditEvent struct {
	EventID        string
	MaterialID     string
	OccurredAt     string
	Actor          string
	ActorRole      string
	PreviousStatus string
	NewStatus      string
	Comment        string
}

// AttachmentVersion is one immutable file snapshot for a material.
type AttachmentVersion struct {
	AttachmentID string
	MaterialID   string
	Version      int
	OriginalName string
	StoredName   string
	Mime         string
	SizeBytes    int64
	UploadedAt   string
	UploadedBy   string
}

// MaterialFilter narrows ListMaterials. ScopeLines/ScopeRequester implement
// actor visibility; the remaining fields are caller filters.
type MaterialFilter struct {
	// ScopeLines restricts results to these lines when non-nil. An empty
	// non-nil slice matches nothing.
	ScopeLines []string
	// ScopeRequester restricts results to one requester when set.
	ScopeRequester string

	Line        string
	Owner       string
	Status      string
	PendingOnly bool
	// Query matches material id, request id, description or item.
	Query string
}

// StatusUpdate is the mutable field set one transition writes. Nil SAP refs
// leave the stored values untouched.
type StatusUpdate struct {
	Status        string
	StatusComment string
	Owner         string
	// StampField is the timestamp column reached by the new status ("" for
	// none), StampValue the transition time.
	StampField       string
	StampValue       string
	SAPMaterialRef   *string
	SAPInfoRecordRef *string
}

// MaterialRepository is the transactional store behind the registry, the
// transition engine, the audit log and the attachment version ledger.
// Audit events and attachment versions are append-only: no update or delete
// is exposed, which is the sole mechanism enforcing immutability.
type MaterialRepository interface {
	CreateMaterial(ctx context.Context, m Material) error
	GetMaterial(ctx context.Context, materialID string) (Material, error)
	ListMaterials(ctx context.Context, filter MaterialFilter) ([]Material, error)
	UpdateStatus(ctx context.Context, materialID string, upd StatusUpdate) error

	AppendAuditEvent(ctx context.Context, event AuditEvent) error
	ListAuditEvents(ctx context.Context, materialID string) ([]AuditEvent, error)
	ListAllAuditEvents(ctx context.Context) ([]AuditEvent, error)

	MaxAttachmentVersion(ctx context.Context, materialID string) (int, error)
	CreateAttachmentVersion(ctx context.Context, v AttachmentVersion) error
	ListAttachmentVersions(ctx context.Context, materialID string) ([]AttachmentVersion, error)
	LatestAttachmentVersion(ctx context.Context, materialID string) (AttachmentVersion, bool, error)
}
