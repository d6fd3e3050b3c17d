package model

// AttachmentVersion rows are append-only. The composite unique index turns a
// concurrent double-allocation of the same version number into a constraint
// violation instead of a silent lost update.
type AttachmentVersion struct {
	AttachmentID string `gorm:"column:attachment_id;primaryKey"`
	MaterialID   string `gorm:"column:material_id;type:text;not null;uniqueIndex:idx_material_version"`
	Version      int    `gorm:"column:version;not null;uniqueIndex:idx_material_version"`
	OriginalName string `gorm:"column:original_name;type:text;not null"`
	StoredName   string `gorm:"column:stored_name;type:text;not null"`
	Mime         string `gorm:"column:mime;type:text;not null"`
	SizeBytes    int64  `gorm:"column:size_bytes;not null"`
	UploadedAt   string `gorm:"column:uploaded_at;type:text;not null"`
	UploadedBy   string `gorm:"column:uploaded_by;type:text;not null"`
}

func (AttachmentVersion) TableName() string {
	return "attachment_versions"
}
