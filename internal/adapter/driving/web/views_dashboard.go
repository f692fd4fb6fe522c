package web

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/semefopanel/internal/application"
	"github.com/ericfisherdev/semefopanel/internal/domain/datefmt"
	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

func dashboardView(o *application.DashboardOverview) templ.Component {
	return view(func(m *markup) {
		k := o.Summary.KPIs
		m.raw(`<h1>Dashboard</h1><section class="kpis">`)
		kpi(m, "Sesiones (30 días)", k.Last30Days, "/sesiones")
		kpi(m, "Finalizadas", k.Finished, "/jobs/"+string(model.JobStatusCompleted))
		kpi(m, "Pendientes", k.Pending, "/jobs/"+string(model.JobStatusPending))
		kpi(m, "Con error", k.Failed, "/jobs/"+string(model.JobStatusFailed))
		m.raw(`</section>`)

		summaryList(m, "Pendientes", o.Summary.Pending)
		summaryList(m, "Últimas sesiones", o.Summary.Latest)
		summaryList(m, "Errores recientes", o.Summary.Errors)

		if o.Infra != nil {
			m.raw(`<h2>Infraestructura</h2>`)
			m.child(infraPanels(o.Infra))
		}
	})
}

func kpi(m *markup, label string, value int, href string) {
	m.raw(`<a class="kpi" href="`)
	m.url(href)
	m.raw(`"><span class="kpi-value">`)
	m.text(strconv.Itoa(value))
	m.raw(`</span><span class="kpi-label">`)
	m.text(label)
	m.raw(`</span></a>`)
}

func summaryList(m *markup, title string, items []model.SummaryItem) {
	m.raw(`<h2>`)
	m.text(title)
	m.raw(`</h2>`)
	if len(items) == 0 {
		m.raw(`<p class="muted">Sin registros.</p>`)
		return
	}
	m.raw(`<table><thead><tr><th>Expediente</th><th>Usuario</th><th>Tipo</th><th>Estado</th><th>Fecha</th><th>Error</th></tr></thead><tbody>`)
	for _, it := range items {
		m.raw(`<tr><td><a href="`)
		m.url(fmt.Sprintf("/sesiones/%d", it.SessionID))
		m.raw(`">`)
		m.text(it.CaseNumber)
		m.raw(`</a></td><td>`)
		m.text(orPlaceholder(it.LDAPUser))
		m.raw(`</td><td>`)
		m.text(orPlaceholder(it.Type))
		m.raw(`</td><td>`)
		statusBadge(m, it.Status)
		m.raw(`</td><td title="`)
		m.text(datefmt.DateTime(it.Date))
		m.raw(`">`)
		m.text(datefmt.Relative(it.Date))
		m.raw(`</td><td>`)
		m.text(optional(it.Error))
		m.raw(`</td></tr>`)
	}
	m.raw(`</tbody></table>`)
}

func statusBadge(m *markup, status string) {
	m.raw(`<span class="badge badge-`)
	m.text(status)
	m.raw(`">`)
	m.text(status)
	m.raw(`</span>`)
}

func orPlaceholder(s string) string {
	if s == "" {
		return datefmt.Placeholder
	}
	return s
}

func sessionsView(q model.SessionQuery, result *model.Page[model.SessionSummary], errs map[string]string, message string) templ.Component {
	return view(func(m *markup) {
		m.raw(`<h1>Sesiones</h1>`)
		m.alert("error", message)
		m.raw(`<form method="get" action="/sesiones" class="filters">`)
		m.field("Desde", "desde", "date", q.From, renameKeys(errs, "from", "desde"))
		m.field("Hasta", "hasta", "date", q.To, renameKeys(errs, "to", "hasta"))
		m.raw(`<button type="submit">Filtrar</button></form>`)

		if result == nil {
			return
		}
		if len(result.Data) == 0 {
			m.raw(`<p class="muted">No hay sesiones en el rango seleccionado.</p>`)
			return
		}

		m.raw(`<table><thead><tr><th>Expediente</th><th>Usuario</th><th>Fecha</th><th>Estado</th><th>Duración</th><th>Jobs</th></tr></thead><tbody>`)
		for _, s := range result.Data {
			m.raw(`<tr><td><a href="`)
			m.url(fmt.Sprintf("/sesiones/%d", s.ID))
			m.raw(`">`)
			m.text(s.CaseNumber)
			m.raw(`</a></td><td>`)
			m.text(s.LDAPUser)
			m.raw(`</td><td>`)
			m.text(datefmt.DateTime(s.Date))
			m.raw(`</td><td>`)
			statusBadge(m, string(s.Status))
			m.raw(`</td><td>`)
			m.text(formatDuration(s.DurationSeconds))
			m.raw(`</td><td class="counts">`)
			m.textf("%d pend. / %d proc. / %d comp. / %d err.", s.Jobs.Pending, s.Jobs.Processing, s.Jobs.Completed, s.Jobs.Failed)
			m.raw(`</td></tr>`)
		}
		m.raw(`</tbody></table>`)
		m.pager(result.Meta, result.TotalPages(), sessionsPageLink(q))
	})
}

// renameKeys exposes a validation message under the form field name.
func renameKeys(errs map[string]string, from, to string) map[string]string {
	if msg, ok := errs[from]; ok {
		return map[string]string{to: msg}
	}
	return nil
}

func sessionJobsView(sessionID int64, jobs []model.SessionJob) templ.Component {
	return view(func(m *markup) {
		m.raw(`<h1>`)
		m.textf("Procesos de la sesión %d", sessionID)
		m.raw(`</h1><p><a href="/sesiones">&laquo; Volver a sesiones</a></p>`)
		if len(jobs) == 0 {
			m.raw(`<p class="muted">La sesión no tiene procesos.</p>`)
			return
		}
		m.raw(`<table><thead><tr><th>Job</th><th>Tipo</th><th>Archivo</th><th>Estado</th><th>Creado</th><th>Actualizado</th><th>Error</th></tr></thead><tbody>`)
		for _, j := range jobs {
			m.raw(`<tr><td>`)
			m.text(strconv.FormatInt(j.ID, 10))
			m.raw(`</td><td>`)
			m.text(j.Type)
			m.raw(`</td><td title="`)
			m.text(j.Path)
			m.raw(`">`)
			m.text(j.File)
			m.raw(`</td><td>`)
			statusBadge(m, string(j.Status))
			m.raw(`</td><td>`)
			m.text(datefmt.DateTime(j.CreatedAt))
			m.raw(`</td><td>`)
			m.text(datefmt.DateTime(datefmt.Deref(j.UpdatedAt)))
			m.raw(`</td><td>`)
			m.text(optional(j.Error))
			m.raw(`</td></tr>`)
		}
		m.raw(`</tbody></table>`)
	})
}

func jobsView(status model.JobStatus, result *model.Page[model.Job]) templ.Component {
	return view(func(m *markup) {
		m.raw(`<h1>Jobs: `)
		m.text(jobStatusLabel(status))
		m.raw(`</h1><nav class="tabs">`)
		for _, s := range model.JobStatuses {
			m.raw(`<a href="`)
			m.url("/jobs/" + string(s))
			m.raw(`"`)
			if s == status {
				m.raw(` class="active"`)
			}
			m.raw(`>`)
			m.text(jobStatusLabel(s))
			m.raw(`</a>`)
		}
		m.raw(`</nav>`)

		if len(result.Data) == 0 {
			m.raw(`<p class="muted">No hay jobs en este estado.</p>`)
			return
		}
		m.raw(`<table><thead><tr><th>Job</th><th>Expediente</th><th>Tipo</th><th>Archivo</th><th>Creado</th><th>Error</th></tr></thead><tbody>`)
		for _, j := range result.Data {
			m.raw(`<tr><td>`)
			m.text(strconv.FormatInt(j.ID, 10))
			m.raw(`</td><td><a href="`)
			m.url(fmt.Sprintf("/sesiones/%d", j.SessionID))
			m.raw(`">`)
			m.text(j.CaseNumber)
			m.raw(`</a></td><td>`)
			m.text(j.Type)
			m.raw(`</td><td>`)
			m.text(j.File)
			m.raw(`</td><td title="`)
			m.text(datefmt.DateTime(j.CreatedAt))
			m.raw(`">`)
			m.text(datefmt.Relative(j.CreatedAt))
			m.raw(`</td><td>`)
			m.text(optional(j.Error))
			m.raw(`</td></tr>`)
		}
		m.raw(`</tbody></table>`)
		m.pager(result.Meta, result.TotalPages(), jobsPageLink(status))
	})
}

func infraView(infra *model.InfraOverview) templ.Component {
	return view(func(m *markup) {
		m.raw(`<h1>Infraestructura</h1>`)
		m.child(infraPanels(infra))
	})
}

func infraPanels(infra *model.InfraOverview) templ.Component {
	return view(func(m *markup) {
		w := toWhisperView(infra.Whisper)
		m.raw(`<section class="panel"><h3>Whisper</h3><dl>`)
		m.raw(`<dt>Estado</dt><dd><span class="badge `)
		if w.Healthy {
			m.raw(`badge-ok`)
		} else {
			m.raw(`badge-error`)
		}
		m.raw(`">`)
		m.text(w.Status)
		m.raw(`</span></dd><dt>Host</dt><dd>`)
		m.text(w.Host)
		m.raw(`</dd><dt>Cola</dt><dd>`)
		m.text(w.Queue)
		m.raw(`</dd><dt>Actualizado</dt><dd>`)
		m.text(w.Updated)
		m.raw(`</dd></dl></section>`)

		rows := toDiskRows(infra.Disks)
		if len(rows) == 0 {
			m.raw(`<p class="muted">Sin reportes de disco.</p>`)
			return
		}
		m.raw(`<table><thead><tr><th>Servidor</th><th>Total</th><th>Usado</th><th>Libre</th><th>Uso</th><th>Reportado</th></tr></thead><tbody>`)
		for _, d := range rows {
			m.raw(`<tr`)
			if d.Critical {
				m.raw(` class="critical"`)
			}
			m.raw(`><td>`)
			m.text(d.Server)
			m.raw(`</td><td>`)
			m.text(d.TotalGB)
			m.raw(`</td><td>`)
			m.text(d.UsedGB)
			m.raw(`</td><td>`)
			m.text(d.FreeGB)
			m.raw(`</td><td><meter min="0" max="100" high="90" value="`)
			m.textf("%.0f", d.UsedPercent)
			m.raw(`"></meter> `)
			m.textf("%.0f%%", d.UsedPercent)
			m.raw(`</td><td title="`)
			m.text(d.Reported)
			m.raw(`">`)
			m.text(d.Relative)
			m.raw(`</td></tr>`)
		}
		m.raw(`</tbody></table>`)
	})
}
