package web

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ericfisherdev/semefopanel/internal/application"
	"github.com/ericfisherdev/semefopanel/internal/domain/datefmt"
	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

// jobStatusLabels are the display names of job states.
var jobStatusLabels = map[model.JobStatus]string{
	model.JobStatusPending:    "Pendientes",
	model.JobStatusProcessing: "Procesando",
	model.JobStatusCompleted:  "Completados",
	model.JobStatusFailed:     "Con error",
}

func jobStatusLabel(s model.JobStatus) string {
	if label, ok := jobStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// diskRow is one server of the infrastructure table.
type diskRow struct {
	Server      string
	TotalGB     string
	UsedGB      string
	FreeGB      string
	UsedPercent float64
	Reported    string
	Relative    string
	Critical    bool
}

// criticalDiskPercent marks disks that need attention.
const criticalDiskPercent = 90

func toDiskRows(disks map[string]model.DiskStatus) []diskRow {
	servers := make([]string, 0, len(disks))
	for server := range disks {
		servers = append(servers, server)
	}
	sort.Strings(servers)

	rows := make([]diskRow, 0, len(servers))
	for _, server := range servers {
		d := disks[server]
		used := d.UsedPercent()
		rows = append(rows, diskRow{
			Server:      server,
			TotalGB:     fmt.Sprintf("%.1f GB", d.TotalGB),
			UsedGB:      fmt.Sprintf("%.1f GB", d.UsedGB),
			FreeGB:      fmt.Sprintf("%.1f GB", d.FreeGB),
			UsedPercent: used,
			Reported:    datefmt.DateTime(d.Date),
			Relative:    datefmt.Relative(d.Date),
			Critical:    used >= criticalDiskPercent,
		})
	}
	return rows
}

// whisperView is the display form of the transcription server status.
type whisperView struct {
	Status  string
	Host    string
	Queue   string
	Updated string
	Healthy bool
}

func toWhisperView(s model.WhisperStatus) whisperView {
	v := whisperView{
		Status:  s.Status,
		Host:    s.Host,
		Queue:   datefmt.Placeholder,
		Updated: datefmt.Relative(datefmt.Deref(s.UpdatedAt)),
		Healthy: s.Status != "" && s.Status != application.WhisperUnknown && s.Status != "error",
	}
	if v.Host == "" {
		v.Host = datefmt.Placeholder
	}
	if s.Queue != nil {
		v.Queue = fmt.Sprint(*s.Queue)
	}
	return v
}

// formatDuration renders a session duration in seconds as "1h 02m 05s".
func formatDuration(seconds *float64) string {
	if seconds == nil || *seconds < 0 {
		return datefmt.Placeholder
	}
	total := int(*seconds)
	h, m, s := total/3600, total%3600/60, total%60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	return fmt.Sprintf("%dm %02ds", m, s)
}

// deref returns the pointed-to string, or "" for nil.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// optional renders a nullable string, using the placeholder for nil or blank.
func optional(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return datefmt.Placeholder
	}
	return *s
}

// planchaForm is the editable state of a plancha form.
type planchaForm struct {
	Name        string
	Description string
	Active      bool
	Camera1IP   string
	Camera1ID   string
	Camera2IP   string
	Camera2ID   string
}

func planchaFormFrom(p *model.Plancha) planchaForm {
	return planchaForm{
		Name:        p.Name,
		Description: deref(p.Description),
		Active:      p.Active,
		Camera1IP:   deref(p.Camera1IP),
		Camera1ID:   deref(p.Camera1ID),
		Camera2IP:   deref(p.Camera2IP),
		Camera2ID:   deref(p.Camera2ID),
	}
}

func (f planchaForm) create() model.PlanchaCreate {
	return model.PlanchaCreate{
		Name:        f.Name,
		Description: nonEmpty(f.Description),
		Active:      f.Active,
		Camera1IP:   nonEmpty(f.Camera1IP),
		Camera1ID:   nonEmpty(f.Camera1ID),
		Camera2IP:   nonEmpty(f.Camera2IP),
		Camera2ID:   nonEmpty(f.Camera2ID),
	}
}

func (f planchaForm) update() model.PlanchaUpdate {
	c := f.create()
	return model.PlanchaUpdate{
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		Camera1IP:   c.Camera1IP,
		Camera1ID:   c.Camera1ID,
		Camera2IP:   c.Camera2IP,
		Camera2ID:   c.Camera2ID,
	}
}

// nonEmpty returns nil for blank input so the field is omitted from the request.
func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
