// Package cli is the semefoctl command-line driving adapter. It runs the same
// application services as the web panel, with the session context stored in
// SQLite under a fixed browser id.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ericfisherdev/semefopanel/internal/adapter/driven/semefo"
	sqliteadapter "github.com/ericfisherdev/semefopanel/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/semefopanel/internal/application"
	"github.com/ericfisherdev/semefopanel/internal/domain/port/driven"
)

// cliBrowserID keys the CLI session in the session store.
const cliBrowserID = "cli"

// PromptFunc reads one line from the user; secret input is not echoed.
type PromptFunc func(label string, secret bool) (string, error)

// Options wires semefoctl to its environment.
type Options struct {
	Out io.Writer
	Err io.Writer
	// Store replaces the SQLite session store when set.
	Store driven.StorageStore
	// Prompt replaces the terminal prompt when set.
	Prompt PromptFunc
	// Transport is the innermost HTTP transport; nil means the default.
	Transport http.RoundTripper
	Version   string
}

// app holds the state shared by every command of one run.
type app struct {
	opts    Options
	v       *viper.Viper
	cfgFile string

	cfg     *Config
	logger  *slog.Logger
	printer *Printer
	nav     *commandNavigator
	session *application.BrowserSession
	closers []func() error

	auth           *application.AuthService
	dashboard      *application.DashboardService
	planchas       *application.PlanchaService
	serviceClients *application.ServiceClientService
}

// Execute runs semefoctl with args and returns the process exit code.
func Execute(ctx context.Context, args []string, opts Options) int {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	a := &app{opts: opts, v: viper.New()}
	defer a.close()

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	err := root.ExecuteContext(ctx)
	if err == nil && a.nav != nil {
		err = a.nav.checkSession()
	}
	if errors.Is(err, errSessionExpired) {
		return 1
	}
	if err != nil {
		if a.printer == nil {
			a.printer = NewPrinter(opts.Out, opts.Err, false)
		}
		a.printer.ReportError(err)
		return 1
	}
	return 0
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "semefoctl",
		Short: "Cliente de línea de comandos del panel SEMEFO",
		Long: `semefoctl consulta y administra el backend SEMEFO desde la terminal.

Ejemplos:
  semefoctl login -u ana          # Inicia sesión
  semefoctl resumen               # KPIs y últimas sesiones
  semefoctl jobs error            # Jobs con error
  semefoctl planchas list         # Planchas registradas`,
		Version:       a.opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "archivo de configuración (por defecto ~/.config/semefoctl/config.yaml)")
	flags.String("api", "", "URL base del backend")
	flags.String("color", "", "salida con color: auto, always o never")
	flags.BoolP("verbose", "v", false, "registro detallado en stderr")

	_ = a.v.BindPFlag("api_base_url", flags.Lookup("api"))
	_ = a.v.BindPFlag("color", flags.Lookup("color"))
	_ = a.v.BindPFlag("verbose", flags.Lookup("verbose"))

	root.AddCommand(
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.summaryCommand(),
		a.sessionsCommand(),
		a.sessionJobsCommand(),
		a.jobsCommand(),
		a.infraCommand(),
		a.planchasCommand(),
		a.serviceClientsCommand(),
	)
	return root
}

// setup loads the configuration and wires the services for cmd.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.opts.Err, &slog.HandlerOptions{Level: level}))

	mode, _ := ParseColorMode(cfg.Color)
	a.printer = NewPrinter(a.opts.Out, a.opts.Err, resolveColors(mode, a.opts.Out))

	store, err := a.openStore(cmd.Context())
	if err != nil {
		return err
	}

	a.nav = &commandNavigator{current: commandPath(cmd), printer: a.printer}
	session := application.NewBrowserSession(store)
	a.session = session

	api, err := semefo.NewClient(cfg.APIBaseURL, session, a.nav, semefo.Options{
		Timeout: cfg.Timeout,
		Base:    a.opts.Transport,
		Logger:  a.logger,
	})
	if err != nil {
		return err
	}

	validator := application.NewValidator()
	a.auth = application.NewAuthService(api, session, validator)
	a.dashboard = application.NewDashboardService(api, validator)
	a.planchas = application.NewPlanchaService(api, validator)
	a.serviceClients = application.NewServiceClientService(api, validator)

	cmd.SetContext(application.WithBrowserID(cmd.Context(), cliBrowserID))
	a.logger.Debug("semefoctl configured", "api", cfg.APIBaseURL, "db_path", cfg.DBPath, "command", a.nav.current)
	return nil
}

func (a *app) openStore(ctx context.Context) (driven.StorageStore, error) {
	if a.opts.Store != nil {
		return a.opts.Store, nil
	}

	key, err := a.cfg.Key()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(a.cfg.DBPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	db, err := sqliteadapter.NewDB(ctx, a.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)

	version, err := sqliteadapter.RunMigrations(db.Writer)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("session store ready", "path", a.cfg.DBPath, "schema_version", version)
	return sqliteadapter.NewStorageRepo(db, key), nil
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c(); err != nil && a.logger != nil {
			a.logger.Error("closing session store", "error", err)
		}
	}
}

// prompt reads input through the configured PromptFunc or a liner terminal.
func (a *app) prompt(label string, secret bool) (string, error) {
	if a.opts.Prompt != nil {
		return a.opts.Prompt(label, secret)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if secret {
		return line.PasswordPrompt(label)
	}
	return line.Prompt(label)
}

// commandPath maps a command to the view path the backend client sees, so a
// 401 during login is treated like a 401 on the login page.
func commandPath(cmd *cobra.Command) string {
	if cmd.Name() == "login" {
		return semefo.LoginPath
	}
	parts := strings.Fields(cmd.CommandPath())
	if len(parts) <= 1 {
		return "/"
	}
	return "/" + strings.Join(parts[1:], "/")
}
