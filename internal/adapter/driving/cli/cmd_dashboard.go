package cli

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/semefopanel/internal/domain/datefmt"
	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

func (a *app) summaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "resumen",
		Aliases: []string{"dashboard"},
		Short:   "KPIs de los últimos 30 días y sesiones recientes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := a.dashboard.Overview(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.nav.checkSession(); err != nil {
				return err
			}

			k := o.Summary.KPIs
			a.printer.Table([]string{"Sesiones (30 días)", "Finalizadas", "Pendientes", "Con error"}, [][]string{{
				strconv.Itoa(k.Last30Days), strconv.Itoa(k.Finished), strconv.Itoa(k.Pending), strconv.Itoa(k.Failed),
			}})

			a.summaryItems("Pendientes", o.Summary.Pending)
			a.summaryItems("Últimas sesiones", o.Summary.Latest)
			a.summaryItems("Errores recientes", o.Summary.Errors)
			return nil
		},
	}
}

func (a *app) summaryItems(title string, items []model.SummaryItem) {
	a.printer.Println("\n%s", title)
	if len(items) == 0 {
		a.printer.Println("  Sin registros.")
		return
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.FormatInt(it.SessionID, 10),
			it.CaseNumber,
			orDash(it.LDAPUser),
			a.printer.Status(it.Status),
			datefmt.Relative(it.Date),
			optional(it.Error),
		})
	}
	a.printer.Table([]string{"Sesión", "Expediente", "Usuario", "Estado", "Fecha", "Error"}, rows)
}

func (a *app) sessionsCommand() *cobra.Command {
	var q model.SessionQuery

	cmd := &cobra.Command{
		Use:   "sesiones",
		Short: "Lista sesiones por rango de fechas (últimos 30 días por defecto)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := a.dashboard.Sessions(cmd.Context(), q)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(page.Data))
			for _, s := range page.Data {
				rows = append(rows, []string{
					strconv.FormatInt(s.ID, 10),
					s.CaseNumber,
					s.LDAPUser,
					datefmt.DateTime(s.Date),
					a.printer.Status(string(s.Status)),
					seconds(s.DurationSeconds),
					fmt.Sprintf("%d/%d", s.Jobs.Completed, s.Jobs.Total()),
					strconv.Itoa(s.Jobs.Failed),
				})
			}
			a.printer.Table([]string{"ID", "Expediente", "Usuario", "Fecha", "Estado", "Duración", "Jobs", "Errores"}, rows)
			a.pageFooter(page.Meta, page.TotalPages())
			return nil
		},
	}
	cmd.Flags().StringVar(&q.From, "desde", "", "fecha inicial AAAA-MM-DD")
	cmd.Flags().StringVar(&q.To, "hasta", "", "fecha final AAAA-MM-DD")
	cmd.Flags().IntVar(&q.Page, "page", 0, "página")
	cmd.Flags().IntVar(&q.PerPage, "per-page", 0, "resultados por página")
	return cmd
}

func (a *app) sessionJobsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "procesos <sesion-id>",
		Short: "Lista los jobs de una sesión",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			jobs, err := a.dashboard.SessionJobs(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(jobs) == 0 {
				a.printer.Println("La sesión %d no tiene jobs.", id)
				return nil
			}

			rows := make([][]string, 0, len(jobs))
			for _, j := range jobs {
				rows = append(rows, []string{
					strconv.FormatInt(j.ID, 10),
					j.Type,
					j.File,
					a.printer.Status(string(j.Status)),
					datefmt.DateTime(j.CreatedAt),
					datefmt.DateTime(datefmt.Deref(j.UpdatedAt)),
					optional(j.Error),
				})
			}
			a.printer.Table([]string{"Job", "Tipo", "Archivo", "Estado", "Creado", "Actualizado", "Error"}, rows)
			return nil
		},
	}
}

func (a *app) jobsCommand() *cobra.Command {
	var q model.JobQuery

	cmd := &cobra.Command{
		Use:       "jobs <pendiente|procesando|completado|error>",
		Short:     "Lista jobs por estado",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"pendiente", "procesando", "completado", "error"},
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Status = model.JobStatus(args[0])
			page, err := a.dashboard.Jobs(cmd.Context(), q)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(page.Data))
			for _, j := range page.Data {
				rows = append(rows, []string{
					strconv.FormatInt(j.ID, 10),
					j.CaseNumber,
					strconv.FormatInt(j.SessionID, 10),
					j.Type,
					j.File,
					datefmt.Relative(j.CreatedAt),
					optional(j.Error),
				})
			}
			a.printer.Table([]string{"Job", "Expediente", "Sesión", "Tipo", "Archivo", "Creado", "Error"}, rows)
			a.pageFooter(page.Meta, page.TotalPages())
			return nil
		},
	}
	cmd.Flags().IntVar(&q.Page, "page", 0, "página")
	cmd.Flags().IntVar(&q.PerPage, "per-page", 0, "resultados por página")
	return cmd
}

func (a *app) infraCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "infra",
		Short: "Estado de discos por servidor y del servidor Whisper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infra, err := a.dashboard.Infra(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.nav.checkSession(); err != nil {
				return err
			}

			servers := make([]string, 0, len(infra.Disks))
			for s := range infra.Disks {
				servers = append(servers, s)
			}
			sort.Strings(servers)

			rows := make([][]string, 0, len(servers))
			for _, s := range servers {
				d := infra.Disks[s]
				rows = append(rows, []string{
					s,
					fmt.Sprintf("%.1f GB", d.TotalGB),
					fmt.Sprintf("%.1f GB", d.UsedGB),
					fmt.Sprintf("%.1f GB", d.FreeGB),
					fmt.Sprintf("%.0f%%", d.UsedPercent()),
					datefmt.Relative(d.Date),
				})
			}
			a.printer.Table([]string{"Servidor", "Total", "Usado", "Libre", "Uso", "Reporte"}, rows)

			w := infra.Whisper
			line := "Whisper: " + a.printer.Status(w.Status)
			if w.Host != "" {
				line += " en " + w.Host
			}
			if w.Queue != nil {
				line += fmt.Sprintf(", cola %d", *w.Queue)
			}
			a.printer.Println("\n%s", line)
			return nil
		},
	}
}

func (a *app) pageFooter(meta model.PageMeta, pages int) {
	a.printer.Println("Página %d de %d (%d resultados)", meta.Page, pages, meta.Total)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido: %q", raw)
	}
	return id, nil
}

func seconds(v *float64) string {
	if v == nil {
		return datefmt.Placeholder
	}
	return (time.Duration(*v * float64(time.Second))).Round(time.Second).String()
}

// optional renders a nullable string, or the placeholder for nil or empty.
func optional(s *string) string {
	if s == nil {
		return datefmt.Placeholder
	}
	return orDash(*s)
}

func orDash(s string) string {
	if s == "" {
		return datefmt.Placeholder
	}
	return s
}
