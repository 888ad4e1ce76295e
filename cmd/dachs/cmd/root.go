package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "dachs",
	Short: "Dachs semantic analyzer",
	Long: `dachs runs the ScopeBuilder/TypeResolver/SemanticAnalyzer/LambdaResolver
pipeline over a Dachs program and reports every semantic error it finds.

Dachs is a statically typed, expression-oriented language. This build
covers its semantic core; parsing source text into an AST is a separate,
pluggable frontend (see check.go).`,
	Version: Version,
}

// configPath is the persistent `--config` flag, a dachs.yaml file
// supplying defaults for import paths and optimization level (see
// config.go).
var configPath string

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a dachs.yaml config file (import paths, default --opt)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
