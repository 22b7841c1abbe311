package cmd

import (
	"errors"

	"github.com/marcus/empdesk/internal/models"
	"github.com/marcus/empdesk/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var editCmd = &cobra.Command{
	Use:     "edit <id>",
	Aliases: []string{"update"},
	Short:   "Update an employee",
	Long: `Update an employee. The current record is fetched first and only the
fields given as flags are changed.`,
	GroupID: "employees",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("first-name") && !cmd.Flags().Changed("last-name") {
			err := errors.New("nothing to change: pass --first-name and/or --last-name")
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
		id := args[0]
		ref := s.cfg.Routes.EditURL(id)

		current, err := s.client.FetchOne(ctx, ref)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		updated := mergeEdit(*current, cmd.Flags())

		if err := ensureToken(ctx, s.client); err != nil {
			output.Error("get CSRF token: %v", err)
			return err
		}
		if err := submitEmployee(ctx, s.client, ref, updated); err != nil {
			output.Error("update %s: %v", id, err)
			return err
		}
		output.Success("UPDATED %s %s", id, updated.FullName())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().String("first-name", "", "New first name")
	editCmd.Flags().String("last-name", "", "New last name")
}

// mergeEdit applies the name flags that were set to current
func mergeEdit(current models.Employee, flags *pflag.FlagSet) models.Employee {
	if flags.Changed("first-name") {
		current.FirstName, _ = flags.GetString("first-name")
	}
	if flags.Changed("last-name") {
		current.LastName, _ = flags.GetString("last-name")
	}
	return current
}
