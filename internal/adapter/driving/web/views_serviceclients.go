package web

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/semefopanel/internal/application"
	"github.com/ericfisherdev/semefopanel/internal/domain/datefmt"
	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

func serviceClientsView(
	p *page,
	q model.ServiceClientQuery,
	clients []model.ServiceClient,
	form serviceClientCreateForm,
	errs map[string]string,
	message string,
	created *model.ServiceClientCreated,
) templ.Component {
	return view(func(m *markup) {
		m.raw(`<h1>Service Clients</h1>`)
		if created != nil {
			tokenNotice(m, created.ServiceClient.ClientID, created.Token)
		}

		m.raw(`<form method="get" action="/service-clients" class="filters">`)
		m.field("Buscar", "q", "search", q.Search, nil)
		m.checkbox("Solo activos", "solo_activos", q.OnlyActive)
		m.raw(`<button type="submit">Filtrar</button></form>`)

		if len(clients) == 0 {
			m.raw(`<p class="muted">No hay service clients.</p>`)
		} else {
			m.raw(`<table><thead><tr><th>Client ID</th><th>Roles</th><th>IPs permitidas</th><th>Estado</th><th>Último uso</th><th>Alta</th></tr></thead><tbody>`)
			for _, c := range clients {
				m.raw(`<tr><td><a href="`)
				m.url(fmt.Sprintf("/service-clients/%d", c.ID))
				m.raw(`">`)
				m.text(c.ClientID)
				m.raw(`</a></td><td>`)
				m.text(orPlaceholder(c.Roles))
				m.raw(`</td><td>`)
				m.text(optional(c.AllowedIPs))
				m.raw(`</td><td>`)
				activeBadge(m, c.Active)
				m.raw(`</td><td>`)
				m.text(datefmt.Relative(datefmt.Deref(c.LastUsedAt)))
				m.raw(`</td><td>`)
				m.text(datefmt.Date(c.CreatedAt))
				m.raw(`</td></tr>`)
			}
			m.raw(`</tbody></table>`)
		}

		m.raw(`<h2>Nuevo service client</h2>`)
		m.alert("error", message)
		m.raw(`<form method="post" class="stacked" action="/service-clients">`)
		m.csrf(p)
		m.field("Client ID", "client_id", "text", form.ClientID, errs)
		m.field("Roles (separados por coma)", "roles", "text", form.Roles, errs)
		m.field("IPs permitidas", "allowed_ips", "text", form.AllowedIPs, errs)
		m.field("Token (opcional, mínimo 16 caracteres)", "token", "text", form.Token, errs)
		m.checkbox("Activo", "activo", form.Active)
		m.raw(`<div class="actions"><button type="submit">Crear</button></div></form>`)
	})
}

func serviceClientView(p *page, c *model.ServiceClient, errs map[string]string, message, token string) templ.Component {
	return view(func(m *markup) {
		base := fmt.Sprintf("/service-clients/%d", c.ID)

		m.raw(`<h1>`)
		m.text(c.ClientID)
		m.raw(` `)
		activeBadge(m, c.Active)
		m.raw(`</h1><p><a href="/service-clients">&laquo; Volver</a></p>`)
		if token != "" {
			tokenNotice(m, c.ClientID, token)
		}

		m.raw(`<dl><dt>Último uso</dt><dd>`)
		m.text(datefmt.DateTime(datefmt.Deref(c.LastUsedAt)))
		m.raw(`</dd><dt>Alta</dt><dd>`)
		m.text(datefmt.DateTime(c.CreatedAt))
		m.raw(`</dd></dl>`)

		m.alert("error", message)
		m.raw(`<form method="post" class="stacked" action="`)
		m.url(base)
		m.raw(`">`)
		m.csrf(p)
		m.field("Roles (separados por coma)", "roles", "text", c.Roles, errs)
		m.field("IPs permitidas", "allowed_ips", "text", deref(c.AllowedIPs), errs)
		m.checkbox("Activo", "activo", c.Active)
		m.raw(`<div class="actions"><button type="submit">Guardar</button></div></form>`)

		m.raw(`<div class="actions">`)
		m.postButton(p, base+"/"+application.ActionRotateToken, "Rotar token", "warning", "¿Rotar el token? El actual dejará de funcionar.")
		if c.Active {
			m.postButton(p, base+"/"+application.ActionDeactivate, "Desactivar", "", "")
		} else {
			m.postButton(p, base+"/"+application.ActionActivate, "Activar", "", "")
		}
		m.postButton(p, base+"/"+application.ActionDelete, "Eliminar", "danger", "¿Eliminar el service client?")
		m.raw(`</div>`)
	})
}

func tokenNotice(m *markup, clientID, token string) {
	m.raw(`<div class="alert warning"><p>Token de <strong>`)
	m.text(clientID)
	m.raw(`</strong>. Cópialo ahora: no se volverá a mostrar.</p><pre class="token">`)
	m.text(token)
	m.raw(`</pre></div>`)
}

func activeBadge(m *markup, active bool) {
	if active {
		m.raw(`<span class="badge badge-ok">Activo</span>`)
		return
	}
	m.raw(`<span class="badge">Inactivo</span>`)
}
