package web

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/semefopanel/internal/domain/datefmt"
	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

func planchasView(p *page, planchas []model.Plancha) templ.Component {
	return view(func(m *markup) {
		m.raw(`<h1>Planchas</h1><p><a class="button" href="/planchas/nueva">Nueva plancha</a></p>`)
		if len(planchas) == 0 {
			m.raw(`<p class="muted">No hay planchas registradas.</p>`)
			return
		}

		m.raw(`<table><thead><tr><th>Nombre</th><th>Descripción</th><th>Cámara 1</th><th>Cámara 2</th><th>Estado</th><th>Alta</th><th></th></tr></thead><tbody>`)
		for _, pl := range planchas {
			edit := fmt.Sprintf("/planchas/%d", pl.ID)
			m.raw(`<tr><td><a href="`)
			m.url(edit)
			m.raw(`">`)
			m.text(pl.Name)
			m.raw(`</a></td><td class="markdown">`)
			m.raw(RenderMarkdown(deref(pl.Description)))
			m.raw(`</td><td>`)
			camera(m, pl.Camera1IP, pl.Camera1ID)
			m.raw(`</td><td>`)
			camera(m, pl.Camera2IP, pl.Camera2ID)
			m.raw(`</td><td>`)
			if pl.Active {
				m.raw(`<span class="badge badge-ok">Activa</span>`)
			} else {
				m.raw(`<span class="badge">Inactiva</span>`)
			}
			if pl.Assigned {
				m.raw(` <span class="badge badge-info">Asignada</span>`)
			}
			m.raw(`</td><td>`)
			m.text(datefmt.Date(pl.CreatedAt))
			m.raw(`</td><td>`)
			m.postButton(p, edit+"/eliminar", "Eliminar", "danger", "¿Eliminar la plancha?")
			m.raw(`</td></tr>`)
		}
		m.raw(`</tbody></table>`)
	})
}

func camera(m *markup, ip, id *string) {
	if ip == nil && id == nil {
		m.text(datefmt.Placeholder)
		return
	}
	m.text(optional(ip))
	if id != nil && *id != "" {
		m.raw(` <span class="muted">(`)
		m.text(*id)
		m.raw(`)</span>`)
	}
}

func planchaFormView(p *page, action string, form planchaForm, errs map[string]string, message string) templ.Component {
	return view(func(m *markup) {
		m.raw(`<h1>`)
		if action == "/planchas/nueva" {
			m.text("Nueva plancha")
		} else {
			m.text("Editar plancha")
		}
		m.raw(`</h1>`)
		m.alert("error", message)

		m.raw(`<form method="post" class="stacked" action="`)
		m.url(action)
		m.raw(`">`)
		m.csrf(p)
		m.field("Nombre", "nombre", "text", form.Name, errs)
		m.raw(`<label>Descripción (markdown)<textarea name="descripcion" rows="4">`)
		m.text(form.Description)
		m.raw(`</textarea>`)
		if msg := errs["descripcion"]; msg != "" {
			m.raw(`<span class="field-error">`)
			m.text(msg)
			m.raw(`</span>`)
		}
		m.raw(`</label>`)
		m.checkbox("Activa", "activa", form.Active)
		m.raw(`<fieldset><legend>Cámara 1</legend>`)
		m.field("IP", "camara1_ip", "text", form.Camera1IP, errs)
		m.field("Identificador", "camara1_id", "text", form.Camera1ID, errs)
		m.raw(`</fieldset><fieldset><legend>Cámara 2</legend>`)
		m.field("IP", "camara2_ip", "text", form.Camera2IP, errs)
		m.field("Identificador", "camara2_id", "text", form.Camera2ID, errs)
		m.raw(`</fieldset><div class="actions"><button type="submit">Guardar</button> <a href="/planchas">Cancelar</a></div></form>`)
	})
}
