package model

// Hospital unidade hospitalar atendida pela cooperativa (tabela hospitals)
type Hospital struct {
	HospitalID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"hospital_id"`
	Name       string `gorm:"type:varchar(150);not null"                     json:"name"`
	Slug       string `gorm:"type:varchar(80);not null"                      json:"slug"` // unicidade pretendida, saneada pela varredura
	City       string `gorm:"type:varchar(100)"                              json:"city,omitempty"`
	VersionedModel
}

// TableName nome da tabela
func (Hospital) TableName() string { return "hospitals" }
