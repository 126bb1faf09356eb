package model

// Worker cooperado (tabela workers)
type Worker struct {
	WorkerID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"worker_id"`
	Name         string  `gorm:"type:varchar(150);not null"                     json:"name"`
	Registration string  `gorm:"type:varchar(30)"                               json:"registration,omitempty"` // matrícula na cooperativa
	SectorID     *string `gorm:"type:uuid"                                      json:"sector_id,omitempty"`

	// IsPlaceholder marca registros sintetizados pela varredura de
	// consistência quando um ponto referencia cooperado inexistente
	IsPlaceholder bool `gorm:"column:is_placeholder;not null;default:false" json:"is_placeholder"`

	VersionedModel

	// Associações
	Sector *Sector `gorm:"foreignKey:SectorID;references:SectorID" json:"sector,omitempty"`
}

// TableName nome da tabela
func (Worker) TableName() string { return "workers" }
