package model

// JobStatus is the processing state of a job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pendiente"
	JobStatusProcessing JobStatus = "procesando"
	JobStatusCompleted  JobStatus = "completado"
	JobStatusFailed     JobStatus = "error"
)

// JobStatuses lists every job state in display order.
var JobStatuses = []JobStatus{JobStatusPending, JobStatusProcessing, JobStatusCompleted, JobStatusFailed}

// Valid reports whether s is a known job state.
func (s JobStatus) Valid() bool {
	for _, known := range JobStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Job is one row of the job listing.
type Job struct {
	ID         int64     `json:"job_id"`
	CaseNumber string    `json:"numero_expediente"`
	SessionID  int64     `json:"sesion_id"`
	Type       string    `json:"tipo"`
	File       string    `json:"archivo"`
	Status     JobStatus `json:"estado"`
	CreatedAt  string    `json:"fecha_creacion"`
	Error      *string   `json:"error"`
}

// JobQuery filters the job listing by state.
type JobQuery struct {
	Status  JobStatus `validate:"required,oneof=pendiente procesando completado error"`
	Page    int       `validate:"gte=1"`
	PerPage int       `validate:"gte=1,lte=200"`
}

// SessionJob is a job of a single session, as shown in the session detail view.
type SessionJob struct {
	ID        int64     `json:"job_id"`
	Type      string    `json:"tipo"`
	File      string    `json:"archivo"`
	Status    JobStatus `json:"estado"`
	Path      string    `json:"ruta"`
	CreatedAt string    `json:"fecha_creacion"`
	UpdatedAt *string   `json:"fecha_actualizacion"`
	Error     *string   `json:"error"`
}
