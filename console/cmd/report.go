package cmd

import (
	"fmt"

	"ponto/console/internal/admin"
	"ponto/console/internal/guard"

	"github.com/spf13/cobra"
)

func NewReportCommand(env *Env) *cobra.Command {
	var (
		ano, mes int
		usuario  uint
		out      string
	)
	cmd := &cobra.Command{
		Use:   "relatorio",
		Short: "Baixar o relatório mensal em xlsx (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := env.Require(guard.AdminReport)
			if err != nil {
				return err
			}
			f := admin.RecordFilter{Ano: ano, Mes: mes}
			if usuario != 0 {
				f.UsuarioID = &usuario
			}
			data, name, err := c.DownloadReport(ctxOf(cmd), f.ReportQuery())
			if err != nil {
				return env.Fail(err)
			}
			path, err := admin.SaveReport(data, name, out, ano, mes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Relatório salvo em %s\n", path)
			return nil
		},
	}
	cmd.Flags().IntVar(&ano, "ano", 0, "ano (obrigatório)")
	cmd.Flags().IntVar(&mes, "mes", 0, "mês (obrigatório)")
	cmd.Flags().UintVar(&usuario, "usuario", 0, "id de um único funcionário")
	cmd.Flags().StringVarP(&out, "out", "o", "", "arquivo de saída")
	_ = cmd.MarkFlagRequired("ano")
	_ = cmd.MarkFlagRequired("mes")
	return cmd
}
