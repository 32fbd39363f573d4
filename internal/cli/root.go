package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes.
const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitUsageError = 2
)

var rootCmd = &cobra.Command{
	Use:   "pathwatch",
	Short: "Detect path changes between git refs for conditional CI steps",
	Long: "Pathwatch decides whether any file under a target path changed between two git refs\n" +
		"and appends changed=true|false to the step-output file for conditional CI steps.",
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

// Run executes the root command and returns an exit code.
func Run() int {
	// Load .env if present so local runs can mimic the runner environment.
	_ = godotenv.Load()

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print pathwatch version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "pathwatch version %s\n", version)
	},
}
