package cmd

import (
	"fmt"
	"strconv"

	"ponto/console/internal/admin"
	"ponto/console/internal/guard"
	"ponto/pkg/api"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func NewUsersCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usuarios",
		Short: "Gerenciar usuários (admin)",
	}
	cmd.AddCommand(newUsersListCommand(env), newUsersCreateCommand(env), newUsersUpdateCommand(env), newUsersDeleteCommand(env))
	return cmd
}

func newUsersListCommand(env *Env) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Listar usuários",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := env.Require(guard.AdminUsers)
			if err != nil {
				return err
			}
			users, err := c.ListUsers(ctxOf(cmd))
			if err != nil {
				return env.Fail(err)
			}
			t := table.New().Border(lipgloss.NormalBorder()).Headers("ID", "Nome completo", "Usuário", "Perfil")
			for _, u := range admin.FilterUsers(users, filter) {
				t.Row(strconv.FormatUint(uint64(u.ID), 10), u.NomeCompleto, u.Username, string(u.Role))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filtro", "f", "", "filtrar por nome ou usuário")
	return cmd
}

func userFlags(cmd *cobra.Command, f *admin.UserForm, role *string) {
	cmd.Flags().StringVar(&f.NomeCompleto, "nome", "", "nome completo")
	cmd.Flags().StringVarP(&f.Username, "username", "u", "", "usuário")
	cmd.Flags().StringVarP(&f.Password, "password", "p", "", "senha")
	cmd.Flags().StringVar(role, "role", string(api.RoleFuncionario), "perfil (funcionario|admin)")
}

func newUsersCreateCommand(env *Env) *cobra.Command {
	var (
		form admin.UserForm
		role string
		yes  bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Criar usuário",
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Role = api.Role(role)
			req, err := form.CreatePayload()
			if err != nil {
				return err
			}
			c, _, err := env.Require(guard.AdminUsers)
			if err != nil {
				return err
			}
			if !confirm(cmd, yes, form.Summary()) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelado.")
				return nil
			}
			msg, err := c.CreateUser(ctxOf(cmd), req)
			if err != nil {
				return env.Fail(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	userFlags(cmd, &form, &role)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "não pedir confirmação")
	return cmd
}

func newUsersUpdateCommand(env *Env) *cobra.Command {
	var (
		form admin.UserForm
		role string
		yes  bool
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Atualizar usuário (senha em branco mantém a atual)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil || id == 0 {
				return fmt.Errorf("id inválido: %s", args[0])
			}
			c, _, err := env.Require(guard.AdminUsers)
			if err != nil {
				return err
			}
			users, err := c.ListUsers(ctxOf(cmd))
			if err != nil {
				return env.Fail(err)
			}
			current, ok := findUser(users, uint(id))
			if !ok {
				return fmt.Errorf("usuário %d não encontrado", id)
			}
			merged := admin.FormFromUser(current)
			if cmd.Flags().Changed("nome") {
				merged.NomeCompleto = form.NomeCompleto
			}
			if cmd.Flags().Changed("username") {
				merged.Username = form.Username
			}
			if cmd.Flags().Changed("role") {
				merged.Role = api.Role(role)
			}
			merged.Password = form.Password
			req, err := merged.UpdatePayload()
			if err != nil {
				return err
			}
			if !confirm(cmd, yes, merged.Summary()) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelado.")
				return nil
			}
			msg, err := c.UpdateUser(ctxOf(cmd), uint(id), req)
			if err != nil {
				return env.Fail(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	userFlags(cmd, &form, &role)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "não pedir confirmação")
	return cmd
}

func newUsersDeleteCommand(env *Env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Excluir usuário e seus registros",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil || id == 0 {
				return fmt.Errorf("id inválido: %s", args[0])
			}
			c, _, err := env.Require(guard.AdminUsers)
			if err != nil {
				return err
			}
			if !confirm(cmd, yes, fmt.Sprintf("Excluir o usuário %d? Esta ação não pode ser desfeita.", id)) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelado.")
				return nil
			}
			msg, err := c.DeleteUser(ctxOf(cmd), uint(id))
			if err != nil {
				return env.Fail(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "não pedir confirmação")
	return cmd
}

func findUser(users []api.User, id uint) (api.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return api.User{}, false
}
