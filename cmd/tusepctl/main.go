// cmd/tusepctl/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tusep-web/config"
	"tusep-web/internal/auth"
	"tusep-web/internal/client"
	"tusep-web/internal/database"
	"tusep-web/internal/gate"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

// env is what every command runs against. It is built in Before.
type env struct {
	cfg     config.Config
	session *auth.Session
	out     *printer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "hata:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	e := &env{}
	return &cli.App{
		Name:  "tusepctl",
		Usage: "TÜSEP tıbbi cihaz bakım sistemi komut satırı istemcisi",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "./config", Usage: "directory holding config.yaml"},
			&cli.StringFlag{Name: "backend", EnvVars: []string{"BACKEND_BASE_URL"}, Usage: "backend base URL"},
			&cli.BoolFlag{Name: "json", Usage: "print raw JSON instead of tables"},
		},
		Before: func(c *cli.Context) error { return e.setup(c) },
		Commands: []*cli.Command{
			loginCommand(e),
			registerCommand(e),
			logoutCommand(e),
			whoamiCommand(e),
			menuCommand(e),
			dashboardCommand(e),
			devicesCommand(e),
			faultsCommand(e),
			transfersCommand(e),
			reportsCommand(e),
			usersCommand(e),
			qualityCommand(e),
		},
	}
}

// setup loads configuration and restores the stored credential. The CLI
// always keeps its credential in the sealed file store.
func (e *env) setup(c *cli.Context) error {
	godotenv.Load()
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b := c.String("backend"); b != "" {
		cfg.Backend.BaseURL = b
	}
	if cfg.Log.Level == "info" {
		cfg.Log.Level = "warn"
	}
	config.SetupLogger(cfg.Log)
	config.GetLogger().SetOutput(os.Stderr)
	e.cfg = cfg
	e.out = newPrinter(c.App.Writer, c.Bool("json"))

	store, err := database.NewFileStore(cfg.Session.FileDir, cfg.Session.Secret)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	api := client.New(cfg.Backend.BaseURL, client.WithTimeout(cfg.Backend.Timeout))
	e.session = auth.NewSession(api, store, auth.DefaultKey)
	if err := e.session.Restore(c.Context); err != nil {
		config.GetLogger().WithError(err).Info("stored credential discarded")
	}
	return nil
}

// requireLogin is the Before hook of every command that needs a user.
func (e *env) requireLogin(*cli.Context) error {
	if !e.session.Authenticated() {
		return fmt.Errorf("%w: önce 'tusepctl login' çalıştırın", auth.ErrNotAuthenticated)
	}
	return nil
}

// requireCapability gates a command the way the web menu gates a view.
func (e *env) requireCapability(capability gate.Capability) cli.BeforeFunc {
	return func(c *cli.Context) error {
		if err := e.requireLogin(c); err != nil {
			return err
		}
		u, _ := e.session.Current()
		if !gate.Has(u.Role, capability) {
			return fmt.Errorf("%s: bu görünüm %s rolüne açık değil", capability, u.Role.Label())
		}
		return nil
	}
}

func (e *env) viewer() gate.Viewer {
	u, _ := e.session.Current()
	return gate.ViewerOf(u)
}
