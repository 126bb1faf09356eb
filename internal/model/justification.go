package model

import "time"

// JustificationStatus ciclo de vida da justificativa
type JustificationStatus string

const (
	JustificationPending  JustificationStatus = "pending"
	JustificationApproved JustificationStatus = "approved"
	JustificationRejected JustificationStatus = "rejected"
)

// JustificationReason categorias de motivo
type JustificationReason string

const (
	ReasonForgotPunch    JustificationReason = "forgot_punch"
	ReasonDeviceFailure  JustificationReason = "device_failure"
	ReasonExternalDuty   JustificationReason = "external_duty"
	ReasonShiftExtension JustificationReason = "shift_extension"
	ReasonOther          JustificationReason = "other" // exige descrição livre
)

// Justification solicitação do cooperado para validar um plantão
// irregular ou ausente (tabela justifications)
type Justification struct {
	JustificationID string              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"justification_id"`
	WorkerID        string              `gorm:"type:uuid;not null"                             json:"worker_id"`
	WorkerName      string              `gorm:"type:varchar(150);not null"                     json:"worker_name"`
	SectorID        *string             `gorm:"type:uuid"                                      json:"sector_id,omitempty"`
	LinkedPunchID   *string             `gorm:"type:uuid"                                      json:"linked_punch_id,omitempty"`
	Reason          JustificationReason `gorm:"type:varchar(40);not null"                      json:"reason"`
	Description     string              `gorm:"type:varchar(1000)"                             json:"description,omitempty"`
	Status          JustificationStatus `gorm:"type:varchar(40);not null;default:'pending'"    json:"status"`
	RequestedAt     time.Time           `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"requested_at"`
	DecidedAt       *time.Time          `json:"decided_at,omitempty"`
	DecidedBy       *string             `gorm:"type:varchar(150)" json:"decided_by,omitempty"`
	RejectionReason *string             `gorm:"type:varchar(500)" json:"rejection_reason,omitempty"`
	VersionedModel

	// Associações
	Worker      *Worker `gorm:"foreignKey:WorkerID;references:WorkerID"      json:"worker,omitempty"`
	Sector      *Sector `gorm:"foreignKey:SectorID;references:SectorID"      json:"sector,omitempty"`
	LinkedPunch *Punch  `gorm:"foreignKey:LinkedPunchID;references:PunchID"  json:"linked_punch,omitempty"`
}

// TableName nome da tabela
func (Justification) TableName() string { return "justifications" }

// IsDecided indica se a justificativa já recebeu decisão terminal
func (j *Justification) IsDecided() bool {
	return j.Status == JustificationApproved || j.Status == JustificationRejected
}

// legacyJustificationStatus mapeamento único dos status gravados pelo
// sistema anterior. O legado normalizava esses valores de forma
// oportunista e inconsistente; aqui a tabela é única e aplicada em todo
// ponto de leitura e na varredura.
var legacyJustificationStatus = map[string]JustificationStatus{
	"Aguardando autorização": JustificationPending,
	"Aguardando":             JustificationPending,
	"Pendente":               JustificationPending,
	"Autorizado":             JustificationApproved,
	"Aprovado":               JustificationApproved,
	"Negado":                 JustificationRejected,
	"Recusado":               JustificationRejected,
}

// NormalizeJustificationStatus converte um status possivelmente legado
// para o valor canônico. Retorna o status e true quando houve conversão.
func NormalizeJustificationStatus(raw string) (JustificationStatus, bool) {
	switch JustificationStatus(raw) {
	case JustificationPending, JustificationApproved, JustificationRejected:
		return JustificationStatus(raw), false
	}
	if s, ok := legacyJustificationStatus[raw]; ok {
		return s, true
	}
	// valor desconhecido: trata como pendente para nunca esconder uma
	// solicitação da fila do gestor
	return JustificationPending, true
}
