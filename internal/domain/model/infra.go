package model

// DiskStatus is the latest disk report of one server.
type DiskStatus struct {
	TotalGB float64 `json:"disco_total_gb"`
	UsedGB  float64 `json:"disco_usado_gb"`
	FreeGB  float64 `json:"disco_libre_gb"`
	Date    string  `json:"fecha"`
}

// UsedPercent returns the used share of the disk in the range [0, 100].
func (d DiskStatus) UsedPercent() float64 {
	if d.TotalGB <= 0 {
		return 0
	}
	return d.UsedGB / d.TotalGB * 100
}

// WhisperStatus is the status document published by the transcription server.
// The backend reports "desconocido" when no document exists.
type WhisperStatus struct {
	Status    string  `json:"status"`
	Host      string  `json:"host,omitempty"`
	Queue     *int    `json:"queue,omitempty"`
	UpdatedAt *string `json:"timestamp,omitempty"`
}

// InfraOverview groups every infrastructure report shown by the panel.
type InfraOverview struct {
	Disks   map[string]DiskStatus
	Whisper WhisperStatus
}
