package cmd

import (
	"errors"
	"fmt"

	"ponto/console/internal/apiclient"
	"ponto/console/internal/logger"
	"ponto/console/internal/session"

	"github.com/spf13/cobra"
)

func NewLoginCommand(env *Env) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Entrar no sistema",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := env.Client()
			if err != nil {
				return err
			}
			resp, err := c.WithToken("").Login(ctxOf(cmd), username, password)
			if err != nil {
				return errors.New(apiclient.Message(err))
			}
			sess := session.Session{Token: resp.AccessToken, Role: resp.Role, Username: username}
			if err := env.Store.Save(sess); err != nil {
				return err
			}
			logger.L.Info().Str("username", username).Str("role", string(resp.Role)).Msg("logged in")
			fmt.Fprintf(cmd.OutOrStdout(), "Login realizado: %s (%s)\n", username, resp.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "usuário (obrigatório)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "senha (obrigatória)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func NewLogoutCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sair e apagar a sessão local",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.Store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sessão encerrada.")
			return nil
		},
	}
}
