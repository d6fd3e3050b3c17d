package model

type Material struct {
	MaterialID     string `gorm:"column:material_id;primaryKey"`
	RequestID      string `gorm:"column:request_id;type:text;not null;index"`
	CreatedAt      string `gorm:"column:created_at;type:text;not null"`
	Requester      string `gorm:"column:requester;type:text;not null"`
	Line           string `gorm:"column:line;type:text;not null;index"`
	Priority       string `gorm:"column:priority;type:text;not null"`
	RequestComment string `gorm:"column:request_comment;type:text;not null"`

	Item              string  `gorm:"column:item;type:text;not null"`
	Description       string  `gorm:"column:description;type:text;not null"`
	Station           string  `gorm:"column:station;type:text;not null"`
	Category          string  `gorm:"column:category;type:text;not null"`
	ChangeFrequency   string  `gorm:"column:change_frequency;type:text;not null"`
	RequiredStock     float64 `gorm:"column:required_stock;not null"`
	EquipmentCount    int     `gorm:"column:equipment_count;not null"`
	PartsPerEquipment int     `gorm:"column:parts_per_equipment;not null"`
	SuggestedRef      string  `gorm:"column:suggested_ref;type:text;not null"`
	Manufacturer      string  `gorm:"column:manufacturer;type:text;not null"`

	Status           string `gorm:"column:status;type:text;not null;index"`
	Owner            string `gorm:"column:owner;type:text;not null;index"`
	StatusComment    string `gorm:"column:status_comment;type:text;not null"`
	SAPMaterialRef   string `gorm:"column:sap_material_ref;type:text;not null"`
	SAPInfoRecordRef string `gorm:"column:sap_inforecord_ref;type:text;not null"`

	ReviewAt      string `gorm:"column:review_at;type:text;not null"`
	QuotationAt   string `gorm:"column:quotation_at;type:text;not null"`
	SAPCreationAt string `gorm:"column:sap_creation_at;type:text;not null"`
	InfoRecordAt  string `gorm:"column:inforecord_at;type:text;not null"`
	CompletedAt   string `gorm:"column:completed_at;type:text;not null"`
}

func (Material) TableName() string {
	return "materials"
}
