package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcus/empdesk/internal/export"
	"github.com/marcus/empdesk/internal/output"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Export employees as CSV or XLSX",
	GroupID: "employees",
	Example: `  empdesk export > staff.csv
  empdesk export -o staff.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("output")
		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := exportFormat(formatFlag, outPath)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if outPath == "" && format == export.FormatXLSX && isTerminal(os.Stdout) {
			err := errors.New("refusing to write a workbook to the terminal: pass -o")
			output.Error("%v", err)
			return err
		}

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

		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				output.Error("%v", err)
				return err
			}
			defer f.Close()
			w = f
		}
		if err := export.Write(w, format, employees); err != nil {
			output.Error("write export: %v", err)
			return err
		}
		if outPath != "" {
			output.Success("EXPORTED %d employees to %s", len(employees), outPath)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	exportCmd.Flags().String("format", "", "csv or xlsx (default: from --output extension, else csv)")
}

// exportFormat picks the format from the flag, then the output extension
func exportFormat(flag, outPath string) (export.Format, error) {
	if flag != "" {
		switch f := export.Format(strings.ToLower(flag)); f {
		case export.FormatCSV, export.FormatXLSX:
			return f, nil
		}
		return "", fmt.Errorf("unknown format %q (valid: csv, xlsx)", flag)
	}
	if strings.EqualFold(filepath.Ext(outPath), ".xlsx") {
		return export.FormatXLSX, nil
	}
	return export.FormatCSV, nil
}
