package dto

// ── Turnos derivados ──

// ShiftResponse turno derivado do pareamento; nunca persistido
type ShiftResponse struct {
	Date            string         `json:"date"`
	Entry           *PunchResponse `json:"entry,omitempty"`
	Exit            *PunchResponse `json:"exit,omitempty"`
	Hospital        string         `json:"hospital,omitempty"`
	Sector          string         `json:"sector,omitempty"`
	Status          string         `json:"status"`
	StatusDetail    string         `json:"status_detail,omitempty"`
	JustificationID string         `json:"justification_id,omitempty"`
}
