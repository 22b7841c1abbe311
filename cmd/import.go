package cmd

import (
	"fmt"
	"os"

	"github.com/marcus/empdesk/internal/export"
	"github.com/marcus/empdesk/internal/output"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Create employees from a CSV, XLSX or XLS file",
	Long: `Create one employee per row. The first row is the header and must
have first_name and last_name columns ("First Name" works too). An id
column is ignored: the server assigns ids.`,
	GroupID: "employees",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer f.Close()

		rows, err := export.ReadRows(f, args[0])
		if err != nil {
			output.Error("read %s: %v", args[0], err)
			return err
		}
		employees, err := export.ParseEmployees(rows)
		if err != nil {
			output.Error("parse %s: %v", args[0], err)
			return err
		}

		if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
			return output.EmployeeTable(cmd.OutOrStdout(), employees)
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

		results := createEmployees(ctx, s.client, s.cfg.Routes, employees)
		for _, r := range results {
			if !r.OK {
				output.Error("failed to create %s: %s", r.Ref, r.Err)
			}
		}
		n := failures(results)
		output.Success("IMPORTED %d of %d", len(results)-n, len(results))
		if n > 0 {
			return fmt.Errorf("%d of %d rows failed", n, len(results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().Bool("dry-run", false, "Parse the file and print the rows without sending anything")
}
