package model

// Papéis de acesso
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleWorker  = "worker"
)

// User conta de acesso ao sistema (tabela users)
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Username     string  `gorm:"type:varchar(60);not null"                      json:"username"` // unicidade pretendida, saneada pela varredura
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'worker'"     json:"role"`
	WorkerID     *string `gorm:"type:uuid"                                      json:"worker_id,omitempty"` // vínculo com o cooperado, quando houver
	VersionedModel

	// Associações
	Worker *Worker `gorm:"foreignKey:WorkerID;references:WorkerID" json:"worker,omitempty"`
}

// TableName nome da tabela
func (User) TableName() string { return "users" }
