package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ericfisherdev/semefopanel/internal/domain/datefmt"
	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

// planchaFlags are the editable fields of a plancha.
type planchaFlags struct {
	name, description              string
	active                         bool
	cam1IP, cam1ID, cam2IP, cam2ID string
}

func (f *planchaFlags) register(fs *pflag.FlagSet, defaultActive bool) {
	fs.StringVar(&f.name, "nombre", "", "nombre de la plancha")
	fs.StringVar(&f.description, "descripcion", "", "descripción (markdown)")
	fs.BoolVar(&f.active, "activa", defaultActive, "plancha activa")
	fs.StringVar(&f.cam1IP, "camara1-ip", "", "IP de la cámara 1")
	fs.StringVar(&f.cam1ID, "camara1-id", "", "identificador de la cámara 1")
	fs.StringVar(&f.cam2IP, "camara2-ip", "", "IP de la cámara 2")
	fs.StringVar(&f.cam2ID, "camara2-id", "", "identificador de la cámara 2")
}

// changed returns a pointer to value when the flag was given, else current.
func changed(fs *pflag.FlagSet, name, value string, current *string) *string {
	if !fs.Changed(name) {
		return current
	}
	if value == "" {
		return nil
	}
	return &value
}

func (a *app) planchasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planchas",
		Short: "Administra las planchas de captura",
	}
	cmd.AddCommand(
		a.planchasListCommand(),
		a.planchaShowCommand(),
		a.planchaCreateCommand(),
		a.planchaUpdateCommand(),
		a.planchaDeleteCommand(),
	)
	return cmd
}

func (a *app) planchasListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista las planchas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			planchas, err := a.planchas.List(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(planchas))
			for _, p := range planchas {
				rows = append(rows, []string{
					strconv.FormatInt(p.ID, 10),
					p.Name,
					optional(p.Camera1IP),
					optional(p.Camera2IP),
					a.printer.Status(activeLabel(p.Active)),
					yesNo(p.Assigned),
					datefmt.Date(p.CreatedAt),
				})
			}
			a.printer.Table([]string{"ID", "Nombre", "Cámara 1", "Cámara 2", "Estado", "Asignada", "Alta"}, rows)
			return nil
		},
	}
}

func (a *app) planchaShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Muestra una plancha",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := a.planchas.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			a.printer.Table([]string{"Campo", "Valor"}, [][]string{
				{"ID", strconv.FormatInt(p.ID, 10)},
				{"Nombre", p.Name},
				{"Descripción", optional(p.Description)},
				{"Estado", a.printer.Status(activeLabel(p.Active))},
				{"Asignada", yesNo(p.Assigned)},
				{"Cámara 1", optional(p.Camera1IP) + " / " + optional(p.Camera1ID)},
				{"Cámara 2", optional(p.Camera2IP) + " / " + optional(p.Camera2ID)},
				{"Alta", datefmt.DateTime(p.CreatedAt)},
			})
			return nil
		},
	}
}

func (a *app) planchaCreateCommand() *cobra.Command {
	var f planchaFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Registra una plancha",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			req := model.PlanchaCreate{
				Name:        f.name,
				Description: changed(fs, "descripcion", f.description, nil),
				Active:      f.active,
				Camera1IP:   changed(fs, "camara1-ip", f.cam1IP, nil),
				Camera1ID:   changed(fs, "camara1-id", f.cam1ID, nil),
				Camera2IP:   changed(fs, "camara2-ip", f.cam2IP, nil),
				Camera2ID:   changed(fs, "camara2-id", f.cam2ID, nil),
			}
			if err := a.planchas.Create(cmd.Context(), req); err != nil {
				return err
			}
			a.printer.Success("Plancha %q creada.", req.Name)
			return nil
		},
	}
	f.register(cmd.Flags(), true)
	return cmd
}

func (a *app) planchaUpdateCommand() *cobra.Command {
	var f planchaFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Modifica los campos indicados de una plancha",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.planchas.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			fs := cmd.Flags()
			req := model.PlanchaUpdate{
				Name:        current.Name,
				Description: changed(fs, "descripcion", f.description, current.Description),
				Active:      current.Active,
				Camera1IP:   changed(fs, "camara1-ip", f.cam1IP, current.Camera1IP),
				Camera1ID:   changed(fs, "camara1-id", f.cam1ID, current.Camera1ID),
				Camera2IP:   changed(fs, "camara2-ip", f.cam2IP, current.Camera2IP),
				Camera2ID:   changed(fs, "camara2-id", f.cam2ID, current.Camera2ID),
			}
			if fs.Changed("nombre") {
				req.Name = f.name
			}
			if fs.Changed("activa") {
				req.Active = f.active
			}

			if err := a.planchas.Update(cmd.Context(), id, req); err != nil {
				return err
			}
			a.printer.Success("Plancha %d actualizada.", id)
			return nil
		},
	}
	f.register(cmd.Flags(), false)
	return cmd
}

func (a *app) planchaDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina una plancha",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.planchas.Delete(cmd.Context(), id); err != nil {
				return err
			}
			a.printer.Success("Plancha %d eliminada.", id)
			return nil
		},
	}
}

func activeLabel(active bool) string {
	if active {
		return "activo"
	}
	return "inactivo"
}

func yesNo(v bool) string {
	if v {
		return "sí"
	}
	return "no"
}
