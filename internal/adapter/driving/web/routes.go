package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFiles embed.FS

// titleSuffix is appended to every page title.
const titleSuffix = " | SEMEFO"

// Route is one entry of the page table.
type Route struct {
	Method       string
	Path         string
	Name         string
	Title        string
	RequiresAuth bool
	handle       pageFunc
}

// Pattern returns the ServeMux pattern of the route.
func (r Route) Pattern() string {
	return r.Method + " " + r.Path
}

// Routes returns the page table. Every page except login and logout requires
// a stored token.
func (h *Handler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/login", Name: "login", Title: "Login", handle: h.loginForm},
		{Method: http.MethodPost, Path: "/login", Name: "login", Title: "Login", handle: h.login},
		{Method: http.MethodPost, Path: "/logout", Name: "logout", Title: "Login", handle: h.logout},

		{Method: http.MethodGet, Path: "/dashboard", Name: "dashboard", Title: "Dashboard", RequiresAuth: true, handle: h.dashboard},

		{Method: http.MethodGet, Path: "/planchas", Name: "planchas", Title: "Planchas", RequiresAuth: true, handle: h.planchas},
		{Method: http.MethodGet, Path: "/planchas/nueva", Name: "plancha-nueva", Title: "Nueva Plancha", RequiresAuth: true, handle: h.planchaNewForm},
		{Method: http.MethodPost, Path: "/planchas/nueva", Name: "plancha-nueva", Title: "Nueva Plancha", RequiresAuth: true, handle: h.planchaCreate},
		{Method: http.MethodGet, Path: "/planchas/{id}", Name: "plancha-editar", Title: "Editar Plancha", RequiresAuth: true, handle: h.planchaEditForm},
		{Method: http.MethodPost, Path: "/planchas/{id}", Name: "plancha-editar", Title: "Editar Plancha", RequiresAuth: true, handle: h.planchaUpdate},
		{Method: http.MethodPost, Path: "/planchas/{id}/eliminar", Name: "plancha-eliminar", Title: "Planchas", RequiresAuth: true, handle: h.planchaDelete},

		{Method: http.MethodGet, Path: "/sesiones", Name: "sesiones", Title: "Sesiones", RequiresAuth: true, handle: h.sessions},
		{Method: http.MethodGet, Path: "/sesiones/{id}", Name: "sesion-procesos", Title: "Procesos de Sesión", RequiresAuth: true, handle: h.sessionJobs},

		{Method: http.MethodGet, Path: "/jobs/{estado}", Name: "jobs", Title: "Jobs", RequiresAuth: true, handle: h.jobs},

		{Method: http.MethodGet, Path: "/infraestructura", Name: "infraestructura", Title: "Infraestructura", RequiresAuth: true, handle: h.infra},

		{Method: http.MethodGet, Path: "/service-clients", Name: "service-clients", Title: "Service Clients", RequiresAuth: true, handle: h.serviceClients},
		{Method: http.MethodPost, Path: "/service-clients", Name: "service-clients", Title: "Service Clients", RequiresAuth: true, handle: h.serviceClientCreate},
		{Method: http.MethodGet, Path: "/service-clients/{id}", Name: "service-client-editar", Title: "Editar Service Client", RequiresAuth: true, handle: h.serviceClientEditForm},
		{Method: http.MethodPost, Path: "/service-clients/{id}", Name: "service-client-editar", Title: "Editar Service Client", RequiresAuth: true, handle: h.serviceClientUpdate},
		{Method: http.MethodPost, Path: "/service-clients/{id}/{accion}", Name: "service-client-accion", Title: "Service Clients", RequiresAuth: true, handle: h.serviceClientAction},
	}
}

// RegisterRoutes registers all web GUI routes on the provided mux.
// Static assets are served from the embedded filesystem at /static/*.
// "/" redirects to the login page and any other unknown path to the dashboard.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	staticFS, _ := fs.Sub(staticFiles, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	for _, route := range h.Routes() {
		mux.Handle(route.Pattern(), h.serve(route))
	}

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})
}
