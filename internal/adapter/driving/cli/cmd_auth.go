package cli

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/semefopanel/internal/adapter/driven/semefo"
	"github.com/ericfisherdev/semefopanel/internal/domain/model"
)

// errNotLoggedIn is returned by commands that need a stored token.
var errNotLoggedIn = errors.New("no hay sesión iniciada; ejecute `semefoctl login`")

func (a *app) loginCommand() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión en el backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if username == "" {
				if username, err = a.prompt("Usuario: ", false); err != nil {
					return fmt.Errorf("reading username: %w", err)
				}
			}
			password, err := a.prompt("Contraseña: ", true)
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}

			user, err := a.auth.Login(cmd.Context(), model.LoginRequest{
				Username: strings.TrimSpace(username),
				Password: password,
			})
			if semefo.StatusCode(err) == http.StatusUnauthorized {
				return errors.New("usuario o contraseña incorrectos")
			}
			if err != nil {
				return err
			}

			a.printer.Success("Sesión iniciada como %s.", user.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "usuario", "u", "", "nombre de usuario")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión guardada",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			a.printer.Success("Sesión cerrada.")
			return nil
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Muestra el usuario y los claims del token guardado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.auth.Identity(cmd.Context())
			if err != nil {
				return err
			}
			if id == nil {
				return errNotLoggedIn
			}

			a.printer.Println("Usuario: %s", id.User.Username)
			if len(id.User.Roles) > 0 {
				a.printer.Println("Roles:   %s", strings.Join(id.User.Roles, ", "))
			}
			if !id.ExpiresAt.IsZero() {
				a.printer.Println("Expira:  %s", id.ExpiresAt.Local().Format("02/01/2006 15:04"))
			}
			last, err := a.session.LastActivity(cmd.Context())
			if err != nil {
				return err
			}
			if !last.IsZero() {
				a.printer.Println("Guardada: %s", last.Local().Format("02/01/2006 15:04"))
			}
			if id.Expired {
				a.printer.Warn("El token expiró; el backend lo rechazará.")
			}

			keys := make([]string, 0, len(id.Claims))
			for k := range id.Claims {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			rows := make([][]string, 0, len(keys))
			for _, k := range keys {
				rows = append(rows, []string{k, fmt.Sprint(id.Claims[k])})
			}
			if len(rows) > 0 {
				a.printer.Table([]string{"Claim", "Valor"}, rows)
			}
			return nil
		},
	}
}
