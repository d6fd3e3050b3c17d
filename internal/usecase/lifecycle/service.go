package lifecycle

import (
	"mattrack/internal/domain/workflow"
	"mattrack/internal/ports"
)

// Service implements the request registry, the status transition engine, the
// attachment versioning store and the read/report operations on top of the
// transactional store. All authorization decisions go through the pure gate
// predicates in the workflow package; the actor is an explicit parameter on
// every call.
type Service struct {
	repo   ports.MaterialRepository
	uow    ports.UnitOfWork
	files  ports.FileStore
	table  workflow.AssignmentTable
	policy workflow.TransitionPolicy
}

// NewService wires the lifecycle usecases.
func NewService(
	repo ports.MaterialRepository,
	uow ports.UnitOfWork,
	files ports.FileStore,
	table workflow.AssignmentTable,
	policy workflow.TransitionPolicy,
) *Service {
	return &Service{
		repo:   repo,
		uow:    uow,
		files:  files,
		table:  table,
		policy: policy,
	}
}

// CreateRequestInput is one batch submission. Request-level line/priority act
// as defaults for material rows that leave them blank (the bulk contract).
type CreateRequestInput struct {
	Requester string
	Line      string
	Priority  string
	Comment   string
	Materials []workflow.MaterialInput
}

// Request is the summary of a created batch.
type Request struct {
	RequestID string
	CreatedAt string
	Requester string
	Line      string
	Priority  string
	Comment   string
}

// RejectedMaterial reports one input row that failed validation, with every
// violation found on it.
type RejectedMaterial struct {
	Index  int
	Input  workflow.MaterialInput
	Errors []workflow.FieldError
}

// CreateRequestResult carries the persisted materials and the rejected rows.
// A batch with rejected rows is still a success for the valid ones.
type CreateRequestResult struct {
	Request  Request
	Created  []ports.Material
	Rejected []RejectedMaterial
}

// TransitionInput is one audited status change. Nil SAP refs leave the stored
// values untouched.
type TransitionInput struct {
	MaterialID       string
	NewStatus        string
	Actor            workflow.Actor
	Comment          string
	SAPMaterialRef   *string
	SAPInfoRecordRef *string
}

// AddAttachmentInput is one file upload for a material.
type AddAttachmentInput struct {
	MaterialID   string
	OriginalName string
	Mime         string
	Data         []byte
	Actor        workflow.Actor
}

// ListFilter narrows ListMaterials beyond the actor's visibility scope.
type ListFilter struct {
	Line        string
	Owner       string
	Status      string
	PendingOnly bool
	Query       string
}

// MaterialDetail is a material with its full audit history and version list.
type MaterialDetail struct {
	Material ports.Material
	Events   []ports.AuditEvent
	Versions []ports.AttachmentVersion
}
