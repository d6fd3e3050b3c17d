package workflow

import (
	"fmt"
	"strings"
)

// Status is one entry of the closed workflow vocabulary. The catalog order
// below is the display/catalog order, not an enforced transition order.
type Status string

const (
	StatusEngineeringReview Status = "Under engineering review"
	StatusQuotation         Status = "In quotation"
	StatusSAPCreation       Status = "SAP creation in progress"
	StatusWaitingInfoRecord Status = "Waiting for InfoRecord"
	StatusInfoRecordCreated Status = "InfoRecord created"
	StatusCompleted         Status = "Completed"
)

// InitialStatus is assigned to every material at creation.
const InitialStatus = StatusEngineeringReview

var statusCatalog = []Status{
	StatusEngineeringReview,
	StatusQuotation,
	StatusSAPCreation,
	StatusWaitingInfoRecord,
	StatusInfoRecordCreated,
	StatusCompleted,
}

// StatusCatalog returns the vocabulary in catalog order.
func StatusCatalog() []Status {
	out := make([]Status, len(statusCatalog))
	copy(out, statusCatalog)
	return out
}

// ParseStatus resolves a status string case-insensitively against the catalog.
func ParseStatus(s string) (Status, error) {
	trimmed := strings.TrimSpace(s)
	for _, status := range statusCatalog {
		if strings.EqualFold(trimmed, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

func statusIndex(s Status) int {
	for i, status := range statusCatalog {
		if status == s {
			return i
		}
	}
	return -1
}

// StampField names a status timestamp column on the material record.
type StampField string

const (
	StampReview      StampField = "review_at"
	StampQuotation   StampField = "quotation_at"
	StampSAPCreation StampField = "sap_creation_at"
	StampInfoRecord  StampField = "inforecord_at"
	StampCompleted   StampField = "completed_at"
)

// StampFor maps a status to the timestamp field it stamps on arrival.
// Both InfoRecord statuses share one field; a transition between them
// overwrites the earlier value. That collision is intentional.
func StampFor(s Status) (StampField, bool) {
	switch s {
	case StatusEngineeringReview:
		return StampReview, true
	case StatusQuotation:
		return StampQuotation, true
	case StatusSAPCreation:
		return StampSAPCreation, true
	case StatusWaitingInfoRecord, StatusInfoRecordCreated:
		return StampInfoRecord, true
	case StatusCompleted:
		return StampCompleted, true
	default:
		return "", false
	}
}
