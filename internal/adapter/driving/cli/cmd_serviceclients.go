package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/semefopanel/internal/application"
	"github.com/ericfisherdev/semefopanel/internal/domain/datefmt"
	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

func (a *app) serviceClientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "service-clients",
		Aliases: []string{"sc"},
		Short:   "Administra las credenciales de servicios",
	}
	cmd.AddCommand(
		a.serviceClientsListCommand(),
		a.serviceClientShowCommand(),
		a.serviceClientCreateCommand(),
		a.serviceClientUpdateCommand(),
		a.serviceClientActionCommand("rotate", application.ActionRotateToken, "Genera un token nuevo"),
		a.serviceClientActionCommand("activate", application.ActionActivate, "Activa un service client"),
		a.serviceClientActionCommand("deactivate", application.ActionDeactivate, "Desactiva un service client"),
		a.serviceClientActionCommand("delete", application.ActionDelete, "Elimina un service client"),
	)
	return cmd
}

func (a *app) serviceClientsListCommand() *cobra.Command {
	var q model.ServiceClientQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista los service clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clients, err := a.serviceClients.List(cmd.Context(), q)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(clients))
			for _, c := range clients {
				rows = append(rows, []string{
					strconv.FormatInt(c.ID, 10),
					c.ClientID,
					orDash(c.Roles),
					a.printer.Status(activeLabel(c.Active)),
					optional(c.AllowedIPs),
					datefmt.Relative(datefmt.Deref(c.LastUsedAt)),
				})
			}
			a.printer.Table([]string{"ID", "Client ID", "Roles", "Estado", "IPs permitidas", "Último uso"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Search, "buscar", "", "filtra por client id")
	cmd.Flags().BoolVar(&q.OnlyActive, "activos", false, "solo clientes activos")
	return cmd
}

func (a *app) serviceClientShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Muestra un service client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := a.serviceClients.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			a.printServiceClient(c)
			return nil
		},
	}
}

func (a *app) serviceClientCreateCommand() *cobra.Command {
	var (
		clientID, roles, ips, token string
		active                      bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Registra un service client y muestra su token una sola vez",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			req := model.ServiceClientCreate{
				ClientID:   clientID,
				Roles:      roles,
				Active:     &active,
				AllowedIPs: changed(fs, "ips", ips, nil),
				Token:      changed(fs, "token", token, nil),
			}
			created, err := a.serviceClients.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.printServiceClient(&created.ServiceClient)
			a.printToken(created.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&clientID, "client-id", "", "identificador del cliente")
	cmd.Flags().StringVar(&roles, "roles", "", "roles separados por coma")
	cmd.Flags().StringVar(&ips, "ips", "", "IPs permitidas separadas por coma")
	cmd.Flags().StringVar(&token, "token", "", "token propio (mínimo 16 caracteres)")
	cmd.Flags().BoolVar(&active, "activo", true, "cliente activo")
	return cmd
}

func (a *app) serviceClientUpdateCommand() *cobra.Command {
	var (
		roles, ips string
		active     bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Modifica roles, IPs o estado de un service client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			fs := cmd.Flags()
			var req model.ServiceClientUpdate
			if fs.Changed("roles") {
				req.Roles = &roles
			}
			if fs.Changed("ips") {
				req.AllowedIPs = &ips
			}
			if fs.Changed("activo") {
				req.Active = &active
			}

			c, err := a.serviceClients.Update(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			a.printer.Success("Service client %d actualizado.", id)
			a.printServiceClient(c)
			return nil
		},
	}
	cmd.Flags().StringVar(&roles, "roles", "", "roles separados por coma")
	cmd.Flags().StringVar(&ips, "ips", "", "IPs permitidas; vacío quita la restricción")
	cmd.Flags().BoolVar(&active, "activo", true, "cliente activo")
	return cmd
}

func (a *app) serviceClientActionCommand(use, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			res, err := a.serviceClients.Apply(cmd.Context(), id, action)
			if err != nil {
				return err
			}

			if res.Client == nil {
				a.printer.Success("Service client %d eliminado.", id)
				return nil
			}
			a.printServiceClient(res.Client)
			if res.Token != "" {
				a.printToken(res.Token)
			}
			return nil
		},
	}
}

func (a *app) printServiceClient(c *model.ServiceClient) {
	a.printer.Table([]string{"Campo", "Valor"}, [][]string{
		{"ID", strconv.FormatInt(c.ID, 10)},
		{"Client ID", c.ClientID},
		{"Roles", orDash(c.Roles)},
		{"Estado", a.printer.Status(activeLabel(c.Active))},
		{"IPs permitidas", optional(c.AllowedIPs)},
		{"Último uso", datefmt.DateTime(datefmt.Deref(c.LastUsedAt))},
		{"Alta", datefmt.DateTime(c.CreatedAt)},
	})
}

func (a *app) printToken(token string) {
	a.printer.Warn("Guarde este token; no se volverá a mostrar.")
	a.printer.Println("Token: %s", token)
}
