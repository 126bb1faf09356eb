package model

// Sector setor dentro de um hospital (tabela sectors)
type Sector struct {
	SectorID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"sector_id"`
	HospitalID string `gorm:"type:uuid;not null"                             json:"hospital_id"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	VersionedModel

	// Associações
	Hospital *Hospital `gorm:"foreignKey:HospitalID;references:HospitalID" json:"hospital,omitempty"`
}

// TableName nome da tabela
func (Sector) TableName() string { return "sectors" }
