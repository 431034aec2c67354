package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"ponto/console/internal/apiclient"
	"ponto/console/internal/config"
	"ponto/console/internal/guard"
	"ponto/console/internal/logger"
	"ponto/console/internal/session"

	"github.com/spf13/cobra"
)

var ErrSessionExpired = errors.New("sessão expirada, faça login novamente")

// Env is what every command needs: configuration, the session file and a client.
type Env struct {
	Cfg   config.AppConfig
	Store *session.Store
	base  *apiclient.Client
}

// Client returns a client bound to the session saved on disk right now.
func (e *Env) Client() (*apiclient.Client, session.Session, error) {
	sess, err := e.Store.Load()
	if err != nil {
		return nil, sess, err
	}
	return e.base.WithToken(sess.Token), sess, nil
}

// Require loads the session and applies the same route rules as the terminal UI.
func (e *Env) Require(route string) (*apiclient.Client, session.Session, error) {
	c, sess, err := e.Client()
	if err != nil {
		return nil, sess, err
	}
	if err := guard.Check(route, sess); err != nil {
		return nil, sess, err
	}
	return c, sess, nil
}

// Fail converts a 401 into a logout.
func (e *Env) Fail(err error) error {
	if session.Unauthorized(e.Store, err) {
		logger.L.Warn().Msg("session rejected by server, cleared")
		return ErrSessionExpired
	}
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.Error())
	}
	return err
}

func NewEnv(cfg config.AppConfig) *Env {
	return &Env{
		Cfg:   cfg,
		Store: session.NewStore(cfg.SessionPath),
		base:  apiclient.New(apiclient.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout}),
	}
}

// NewRootCommand wires every subcommand. The env is built once flags are parsed.
func NewRootCommand() *cobra.Command {
	var cfgPath string
	env := &Env{}

	root := &cobra.Command{
		Use:           "ponto",
		Short:         "Console do sistema de ponto",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := config.Init(cfgPath)
			logger.Init(cfg.LogPath, cfg.LogLevel)
			*env = *NewEnv(cfg)
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "arquivo de configuração (padrão config/console.yaml)")

	RegisterCommands(root, env)
	return root
}

func RegisterCommands(root *cobra.Command, env *Env) {
	root.AddCommand(
		NewLoginCommand(env),
		NewLogoutCommand(env),
		NewTodayCommand(env),
		NewPunchCommand(env),
		NewRecordsCommand(env),
		NewUsersCommand(env),
		NewReportCommand(env),
		NewTUICommand(env),
	)
}

// confirm asks a yes/no question on the command's streams; yes skips it.
func confirm(cmd *cobra.Command, yes bool, question string) bool {
	if yes {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [s/N] ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
