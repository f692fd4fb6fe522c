package model

// SessionStatus is the processing state of a capture session.
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "en_progreso"
	SessionStatusFinished   SessionStatus = "finalizada"
)

// SessionJobCounts holds the number of jobs per state for one session.
type SessionJobCounts struct {
	Pending    int `json:"pendiente"`
	Processing int `json:"procesando"`
	Completed  int `json:"completado"`
	Failed     int `json:"error"`
}

// Total returns the sum of all job counts.
func (c SessionJobCounts) Total() int {
	return c.Pending + c.Processing + c.Completed + c.Failed
}

// SessionSummary is one row of the session listing.
type SessionSummary struct {
	ID              int64            `json:"sesion_id"`
	CaseNumber      string           `json:"numero_expediente"`
	LDAPUser        string           `json:"usuario_ldap"`
	Date            string           `json:"fecha"`
	Status          SessionStatus    `json:"estado"`
	DurationSeconds *float64         `json:"duracion_sesion_seg"`
	Jobs            SessionJobCounts `json:"jobs"`
}

// SessionQuery filters the session listing by date range.
type SessionQuery struct {
	From    string `validate:"required,datetime=2006-01-02"`
	To      string `validate:"required,datetime=2006-01-02"`
	Page    int    `validate:"gte=1"`
	PerPage int    `validate:"gte=1,lte=200"`
}
