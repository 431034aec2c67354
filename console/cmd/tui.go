package cmd

import (
	"ponto/console/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func NewTUICommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Abrir a interface de terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := ui.NewRootModel(env.base, env.Store)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctxOf(cmd)))
			stop, err := ui.WatchSession(ctxOf(cmd), env.Store, p)
			if err != nil {
				return err
			}
			defer stop()
			_, err = p.Run()
			return err
		},
	}
}
