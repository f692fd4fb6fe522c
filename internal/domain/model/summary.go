package model

// DashboardKPIs are the headline counters of the dashboard home.
type DashboardKPIs struct {
	Last30Days int `json:"total_30_dias"`
	Finished   int `json:"finalizadas"`
	Pending    int `json:"pendientes"`
	Failed     int `json:"errores"`
}

// SummaryItem is a session or job referenced by one of the dashboard home lists.
type SummaryItem struct {
	SessionID  int64   `json:"sesion_id"`
	JobID      *int64  `json:"job_id,omitempty"`
	CaseNumber string  `json:"numero_expediente"`
	LDAPUser   string  `json:"usuario_ldap,omitempty"`
	Type       string  `json:"tipo,omitempty"`
	Status     string  `json:"estado"`
	Date       string  `json:"fecha"`
	Error      *string `json:"error,omitempty"`
}

// DashboardSummary is the payload of the dashboard home.
type DashboardSummary struct {
	KPIs    DashboardKPIs `json:"kpis"`
	Pending []SummaryItem `json:"pendientes"`
	Latest  []SummaryItem `json:"ultimas"`
	Errors  []SummaryItem `json:"errores"`
}
