package web

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

type navLink struct {
	Href  string
	Label string
}

var navLinks = []navLink{
	{Href: "/dashboard", Label: "Dashboard"},
	{Href: "/planchas", Label: "Planchas"},
	{Href: "/sesiones", Label: "Sesiones"},
	{Href: "/jobs/" + string(model.JobStatusPending), Label: "Jobs"},
	{Href: "/infraestructura", Label: "Infraestructura"},
	{Href: "/service-clients", Label: "Service Clients"},
}

func layout(p *page, body templ.Component) templ.Component {
	return view(func(m *markup) {
		m.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		m.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.raw(`<title>`)
		m.text(p.Title)
		m.raw(`</title><link rel="stylesheet" href="/static/app.css"></head><body>`)

		if p.User != "" {
			m.raw(`<header class="topbar"><span class="brand">SEMEFO</span><nav>`)
			for _, l := range navLinks {
				m.raw(`<a href="`)
				m.url(l.Href)
				m.raw(`"`)
				if l.Href == p.Path {
					m.raw(` class="active"`)
				}
				m.raw(`>`)
				m.text(l.Label)
				m.raw(`</a>`)
			}
			m.raw(`</nav><span class="user">`)
			m.text(p.User)
			m.raw(`</span>`)
			m.postButton(p, "/logout", "Salir", "link", "")
			m.raw(`</header>`)
		}

		m.raw(`<main>`)
		m.alert("success", p.Flash)
		m.child(body)
		m.raw(`</main></body></html>`)
	})
}

func loginView(p *page, username, message string) templ.Component {
	return view(func(m *markup) {
		m.raw(`<section class="login"><h1>SEMEFO</h1><p class="muted">Panel de administración</p>`)
		m.alert("error", message)
		m.raw(`<form method="post" action="/login">`)
		m.csrf(p)
		m.field("Usuario", "username", "text", username, nil)
		m.raw(`<label>Contraseña<input type="password" name="password" autocomplete="current-password"></label>`)
		m.raw(`<button type="submit">Entrar</button></form></section>`)
	})
}

func errorView(status int, message string) templ.Component {
	return view(func(m *markup) {
		m.raw(`<section class="error-page"><h1>`)
		m.text(fmt.Sprintf("%d %s", status, http.StatusText(status)))
		m.raw(`</h1><p>`)
		m.text(message)
		m.raw(`</p><a href="/dashboard">Volver al dashboard</a></section>`)
	})
}

// pager renders previous/next links for a paginated listing. link builds the
// URL of a page number.
func (m *markup) pager(meta model.PageMeta, totalPages int, link func(page int) string) {
	if totalPages <= 1 {
		return
	}
	m.raw(`<nav class="pager">`)
	if meta.Page > 1 {
		m.raw(`<a href="`)
		m.url(link(meta.Page - 1))
		m.raw(`">&laquo; Anterior</a>`)
	}
	m.raw(`<span>`)
	m.textf("Página %d de %d (%d registros)", meta.Page, totalPages, meta.Total)
	m.raw(`</span>`)
	if meta.Page < totalPages {
		m.raw(`<a href="`)
		m.url(link(meta.Page + 1))
		m.raw(`">Siguiente &raquo;</a>`)
	}
	m.raw(`</nav>`)
}
