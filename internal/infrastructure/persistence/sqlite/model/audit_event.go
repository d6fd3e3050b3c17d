package model

// AuditEvent rows are append-only. The repository exposes no update or
// delete for this table.
type AuditEvent struct {
	EventID        string `gorm:"column:event_id;primaryKey"`
	MaterialID     string `gorm:"column:material_id;type:text;not null;index"`
	OccurredAt     string `gorm:"column:occurred_at;type:text;not null;index"`
	Actor          string `gorm:"column:actor;type:text;not null"`
	ActorRole      string `gorm:"column:actor_role;type:text;not null"`
	PreviousStatus string `gorm:"column:previous_status;type:text;not null"`
	NewStatus      string `gorm:"column:new_status;type:text;not null"`
	Comment        string `gorm:"column:comment;type:text;not null"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
