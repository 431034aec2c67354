package cmd

import (
	"fmt"
	"time"

	"ponto/console/internal/guard"
	"ponto/pkg/api"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func NewRecordsCommand(env *Env) *cobra.Command {
	var mes, ano int
	cmd := &cobra.Command{
		Use:   "registros",
		Short: "Listar meus registros do mês",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := env.Require(guard.MyRecords)
			if err != nil {
				return err
			}
			now := time.Now()
			if mes == 0 {
				mes = int(now.Month())
			}
			if ano == 0 {
				ano = now.Year()
			}
			recs, err := c.MyRecords(ctxOf(cmd), mes, ano)
			if err != nil {
				return env.Fail(err)
			}
			if len(recs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Nenhum registro em %02d/%d.\n", mes, ano)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), recordsTable(recs, false))
			return nil
		},
	}
	cmd.Flags().IntVar(&mes, "mes", 0, "mês (padrão: atual)")
	cmd.Flags().IntVar(&ano, "ano", 0, "ano (padrão: atual)")
	return cmd
}

func recordsTable(recs []api.PunchRecord, withUser bool) *table.Table {
	headers := []string{"Data", "Hora", "Tipo", "Justificativa"}
	if withUser {
		headers = append([]string{"ID", "Funcionário"}, headers...)
	}
	t := table.New().Border(lipgloss.NormalBorder()).Headers(headers...)
	for _, r := range recs {
		row := []string{r.Timestamp.Format("02/01/2006"), r.Timestamp.Format("15:04"), r.TipoRegistro.Label(), r.Justificativa}
		if withUser {
			row = append([]string{fmt.Sprint(r.ID), r.NomeCompleto}, row...)
		}
		t.Row(row...)
	}
	return t
}
