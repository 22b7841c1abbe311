package cmd

import (
	"github.com/marcus/empdesk/internal/models"
	"github.com/marcus/empdesk/internal/output"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List employees",
	GroupID: "employees",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("json", false, "Output as JSON")
	listCmd.Flags().StringP("filter", "f", "", "Fuzzy filter on full name")
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, cmd.ErrOrStderr())
	if err != nil {
		output.Error("%v", err)
		return err
	}
	defer s.Close()

	employees, err := s.client.List(cmd.Context())
	if err != nil {
		output.Error("list employees: %v", err)
		return err
	}

	// runTUI falls back here, where these flags are not defined
	query, _ := cmd.Flags().GetString("filter")
	employees = filterEmployees(employees, query)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return output.JSON(employees)
	}
	return output.EmployeeTable(cmd.OutOrStdout(), employees)
}

// filterEmployees keeps employees whose full name fuzzy-matches query,
// best match first. An empty query keeps everything in order.
func filterEmployees(employees []models.Employee, query string) []models.Employee {
	if query == "" {
		return employees
	}
	names := make([]string, len(employees))
	for i, e := range employees {
		names[i] = e.FullName()
	}
	matches := fuzzy.Find(query, names)
	out := make([]models.Employee, 0, len(matches))
	for _, m := range matches {
		out = append(out, employees[m.Index])
	}
	return out
}
