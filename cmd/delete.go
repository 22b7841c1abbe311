package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/marcus/empdesk/internal/output"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete one or more employees",
	GroupID: "employees",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			if !isTerminal(os.Stdin) {
				err := errors.New("refusing to delete without confirmation: pass --yes")
				output.Error("%v", err)
				return err
			}
			ok, err := confirmDelete(args)
			if err != nil {
				return err
			}
			if !ok {
				output.Warning("cancelled")
				return nil
			}
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

		results := deleteEmployees(ctx, s.client, s.cfg.Routes, args)
		for _, r := range results {
			if r.OK {
				fmt.Fprintf(cmd.OutOrStdout(), "DELETED %s\n", r.Ref)
				continue
			}
			output.Error("failed to delete %s: %s", r.Ref, r.Err)
		}
		if n := failures(results); n > 0 {
			return fmt.Errorf("%d of %d deletes failed", n, len(results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func confirmDelete(ids []string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete employee %s?", strings.Join(ids, ", "))).
		Description("This cannot be undone.").
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}
