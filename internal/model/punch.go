package model

import "time"

// ── Enumerações canônicas do registro de ponto ──
// Status e origem são os dois únicos campos que decidem se um registro é
// provisório; nenhuma outra flag derivada é mantida no banco.

// PunchKind tipo do evento de ponto
type PunchKind string

const (
	KindEntry    PunchKind = "entry"
	KindBreakOut PunchKind = "break_out"
	KindBreakIn  PunchKind = "break_in"
	KindExit     PunchKind = "exit"
)

// PunchOrigin origem do registro
type PunchOrigin string

const (
	OriginBiometric PunchOrigin = "biometric"
	OriginManual    PunchOrigin = "manual"
)

// PunchStatus ciclo de vida do registro
type PunchStatus string

const (
	// PunchOpen sem contraparte, aguardando a batida de saída
	PunchOpen PunchStatus = "open"
	// PunchPending aguardando decisão do gestor
	PunchPending PunchStatus = "pending"
	// PunchClosed pareado e aprovado/válido
	PunchClosed PunchStatus = "closed"
	// PunchRejected negado pelo gestor
	PunchRejected PunchStatus = "rejected"
)

// Punch registro de ponto (tabela punches)
type Punch struct {
	PunchID    string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"punch_id"`
	WorkerID   string      `gorm:"type:uuid;not null"                             json:"worker_id"`
	WorkerName string      `gorm:"type:varchar(150);not null"                     json:"worker_name"` // desnormalizado para exibição
	PunchTime  time.Time   `gorm:"column:punch_time;not null"                     json:"punch_time"`
	Kind       PunchKind   `gorm:"type:varchar(20);not null"                      json:"kind"`
	Origin     PunchOrigin `gorm:"type:varchar(20);not null;default:'biometric'"  json:"origin"`
	Status     PunchStatus `gorm:"type:varchar(30);not null;default:'open'"       json:"status"`
	HospitalID *string     `gorm:"type:uuid"                                      json:"hospital_id,omitempty"`
	SectorID   *string     `gorm:"type:uuid"                                      json:"sector_id,omitempty"`

	// PairRef aponta sempre da saída para a entrada, nunca o inverso.
	// Mantém o grafo de pareamento acíclico e percorrível numa direção.
	PairRef *string `gorm:"type:uuid" json:"pair_ref,omitempty"`

	// Campos de decisão, mutuamente exclusivos
	ApprovedBy      *string `gorm:"type:varchar(150)" json:"approved_by,omitempty"`
	RejectedBy      *string `gorm:"type:varchar(150)" json:"rejected_by,omitempty"`
	RejectionReason *string `gorm:"type:varchar(500)" json:"rejection_reason,omitempty"`

	VersionedModel

	// Associações
	Worker   *Worker   `gorm:"foreignKey:WorkerID;references:WorkerID"     json:"worker,omitempty"`
	Hospital *Hospital `gorm:"foreignKey:HospitalID;references:HospitalID" json:"hospital,omitempty"`
	Sector   *Sector   `gorm:"foreignKey:SectorID;references:SectorID"     json:"sector,omitempty"`
}

// TableName nome da tabela
func (Punch) TableName() string { return "punches" }

// IsDecided indica se o registro já recebeu decisão terminal
func (p *Punch) IsDecided() bool {
	return p.Status == PunchClosed || p.Status == PunchRejected
}

// legacyPunchStatus mapeamento único dos status gravados pelo sistema
// anterior (em português) para os valores atuais. Tabela enumerada a
// partir dos dados implantados; qualquer valor fora dela é drift
// desconhecido e fica a cargo da varredura de consistência reportar.
var legacyPunchStatus = map[string]PunchStatus{
	"Aberto":     PunchOpen,
	"Fechado":    PunchClosed,
	"Em análise": PunchPending,
	"Pendente":   PunchPending,
	"Rejeitado":  PunchRejected,
}

// NormalizePunchStatus converte um status possivelmente legado para o
// valor canônico. Retorna o status normalizado e true quando houve
// conversão.
func NormalizePunchStatus(raw string) (PunchStatus, bool) {
	switch PunchStatus(raw) {
	case PunchOpen, PunchPending, PunchClosed, PunchRejected:
		return PunchStatus(raw), false
	}
	if s, ok := legacyPunchStatus[raw]; ok {
		return s, true
	}
	return PunchStatus(raw), false
}
