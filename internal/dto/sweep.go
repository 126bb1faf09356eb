package dto

// ── Varredura de consistência ──

// SweepReport contagem de linhas afetadas por categoria de reparo.
// Uma varredura sem nada a reparar devolve todas as contagens zeradas.
type SweepReport struct {
	DuplicateHospitalSlugs   int      `json:"duplicate_hospital_slugs"`
	DuplicateUsernames       int      `json:"duplicate_usernames"`
	PlaceholderWorkers       int      `json:"placeholder_workers"`
	DanglingJustifications   int      `json:"dangling_justifications"`
	LegacyPunchStatuses      int      `json:"legacy_punch_statuses"`
	LegacyJustificationStats int      `json:"legacy_justification_statuses"`
	Errors                   []string `json:"errors,omitempty"` // falhas não fatais coletadas por categoria
}
