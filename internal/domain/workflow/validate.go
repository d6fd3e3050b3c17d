package workflow

import "strings"

// Material categories (closed set, field optional).
const (
	CategoryMAZE = "MAZE"
	CategoryFHMI = "FHMI"
	CategoryHIBE = "HIBE"
)

// Priorities (closed set, field required).
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

var categories = []string{CategoryMAZE, CategoryFHMI, CategoryHIBE}
var priorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

// Categories returns the closed category set.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// Priorities returns the closed priority set.
func Priorities() []string {
	out := make([]string, len(priorities))
	copy(out, priorities)
	return out
}

// MaterialInput is one row of a request batch before validation.
type MaterialInput struct {
	Line              string
	Priority          string
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
}

// ValidateMaterial checks one input against the catalogs and returns every
// violation found. An empty slice means the input is acceptable.
func ValidateMaterial(in MaterialInput, table AssignmentTable) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, FieldError{Field: "description", Message: "description is required"})
	}
	if !table.HasLine(in.Line) {
		errs = append(errs, FieldError{Field: "line", Message: "line is not in the catalog"})
	}
	if !containsFold(priorities, in.Priority) {
		errs = append(errs, FieldError{Field: "priority", Message: "priority must be High, Medium or Low"})
	}
	if c := strings.TrimSpace(in.Category); c != "" && !containsFold(categories, c) {
		errs = append(errs, FieldError{Field: "category", Message: "category must be MAZE, FHMI or HIBE"})
	}
	if in.RequiredStock < 0 {
		errs = append(errs, FieldError{Field: "required_stock", Message: "required stock cannot be negative"})
	}
	if in.EquipmentCount < 0 {
		errs = append(errs, FieldError{Field: "equipment_count", Message: "equipment count cannot be negative"})
	}
	if in.PartsPerEquipment < 0 {
		errs = append(errs, FieldError{Field: "parts_per_equipment", Message: "parts per equipment cannot be negative"})
	}

	return errs
}

// NormalizePriority returns the canonical casing for a valid priority, or the
// input unchanged when it is not in the set.
func NormalizePriority(v string) string {
	return canonical(priorities, v)
}

// NormalizeCategory returns the canonical casing for a valid category.
func NormalizeCategory(v string) string {
	return canonical(categories, strings.TrimSpace(v))
}

func canonical(set []string, v string) string {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return s
		}
	}
	return v
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
