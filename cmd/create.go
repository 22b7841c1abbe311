package cmd

import (
	"errors"

	"github.com/marcus/empdesk/internal/models"
	"github.com/marcus/empdesk/internal/output"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"add", "new"},
	Short:   "Create an employee",
	GroupID: "employees",
	Example: `  empdesk create --first-name Alice --last-name Smith`,
	RunE: func(cmd *cobra.Command, args []string) error {
		first, _ := cmd.Flags().GetString("first-name")
		last, _ := cmd.Flags().GetString("last-name")
		if first == "" && last == "" {
			err := errors.New("at least one of --first-name or --last-name is required")
			output.Error("%v", err)
			return err
		}

		s, err := openSession(cmd, cmd.ErrOrStderr())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		if err := ensureToken(ctx, s.client); err != nil {
			output.Error("get CSRF token: %v", err)
			return err
		}

		e := models.Employee{FirstName: first, LastName: last}
		if err := submitEmployee(ctx, s.client, s.cfg.Routes.Create, e); err != nil {
			output.Error("create %s: %v", e.FullName(), err)
			return err
		}
		output.Success("CREATED %s", e.FullName())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().String("first-name", "", "First name")
	createCmd.Flags().String("last-name", "", "Last name")
}
