package cmd

import (
	"fmt"
	"os"

	"github.com/marcus/empdesk/internal/workdir"
	"github.com/spf13/cobra"
)

var (
	version string
	baseDir string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "empdesk",
	Short: "Terminal desk for the employee directory",
	Long: `empdesk - create, edit and delete employees on a running employee server.

Run without arguments for the interactive list. Every dialog is a single
shared modal: one session at a time, Escape or a click outside closes it.
The subcommands do the same operations from scripts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)

	rootCmd.AddGroup(
		&cobra.Group{ID: "employees", Title: "Employee Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)

	pf := rootCmd.PersistentFlags()
	pf.String("base-url", "", "Employee server URL (default http://localhost:8000)")
	pf.Duration("timeout", 0, "Per-request timeout (default 30s)")
	pf.String("cookie", "", `Cookies to send, e.g. "sessionid=abc"`)
	pf.String("log-file", "", "Write JSON logs to this file")
	pf.Bool("debug", false, "Log at debug level")
}

func initBaseDir() {
	var err error
	baseDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
	baseDir = workdir.ResolveBaseDir(baseDir)
}

// getBaseDir returns the directory holding .empdesk/ and .env
func getBaseDir() string {
	return baseDir
}
