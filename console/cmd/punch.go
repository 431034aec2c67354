package cmd

import (
	"fmt"
	"strings"

	"ponto/console/internal/guard"
	"ponto/console/internal/punch"
	"ponto/pkg/api"

	"github.com/spf13/cobra"
)

func NewTodayCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "hoje",
		Short: "Mostrar os pontos batidos hoje",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := env.Require(guard.Punch)
			if err != nil {
				return err
			}
			today, err := c.Today(ctxOf(cmd))
			if err != nil {
				return env.Fail(err)
			}
			board := punch.NewBoard(c, today.RegistrosHoje)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Olá, %s!\n", today.NomeCompleto)
			for _, t := range api.PunchTypes {
				mark := "[ ]"
				if !board.IsAvailable(t) {
					mark = "[✔]"
				}
				fmt.Fprintf(out, "  %s %s\n", mark, t.Label())
			}
			return nil
		},
	}
}

func NewPunchCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:       "bater <tipo>",
		Short:     "Registrar um ponto (entrada, saida_almoco, volta_almoco, saida)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(api.Entrada), string(api.SaidaAlmoco), string(api.VoltaAlmoco), string(api.Saida)},
		RunE: func(cmd *cobra.Command, args []string) error {
			tipo := api.PunchType(strings.ToLower(strings.TrimSpace(args[0])))
			if !tipo.Valid() {
				return fmt.Errorf("%w: %s", punch.ErrUnknownType, args[0])
			}
			c, _, err := env.Require(guard.Punch)
			if err != nil {
				return err
			}
			today, err := c.Today(ctxOf(cmd))
			if err != nil {
				return env.Fail(err)
			}
			board := punch.NewBoard(c, today.RegistrosHoje)
			msg, err := board.Register(ctxOf(cmd), tipo)
			if err != nil {
				return env.Fail(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
