package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gitter-badger/quark/pkg/config"
	"github.com/gitter-badger/quark/pkg/connector"
	"github.com/gitter-badger/quark/pkg/connectors"
	"github.com/gitter-badger/quark/pkg/logger"
)

var (
	configFile string
	verbose    bool

	// Build information variables
	Version   = "dev"     // Default version for development
	GitCommit = "unknown" // Git commit hash
	BuildTime = "unknown" // Build timestamp
)

// printVersionInfo displays detailed version information
func printVersionInfo() {
	fmt.Printf("quark v%s (build %s)\n", Version, GitCommit)
	fmt.Printf("Built: %s\n", BuildTime)
	fmt.Printf("Go version: %s\n", runtime.Version())
	fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quark",
	Short: "Federated database catalog and query tool",
	Long: "Discovers schema catalogs from relational backends and runs queries against them, " +
		"normalizing native column types to a canonical vocabulary.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Lookup("version").Changed {
			printVersionInfo()
			return nil
		}
		return cmd.Help()
	},
}

// newCommandLogger builds the logger for a subcommand, honoring --verbose.
func newCommandLogger(component string) *logger.Logger {
	log := logger.New(component)
	if verbose {
		log.SetLevel(logger.LevelDebug)
	}
	return log
}

// openBackend resolves a named backend from the config file and opens its connector.
func openBackend(name string) (connector.Connector, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	backend, err := cfg.Backend(name)
	if err != nil {
		return nil, err
	}
	return connector.Open(backend.Type, backend.Endpoint())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config",
		os.ExpandEnv("$HOME/.quark/config.yaml"), "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().Bool("version", false, "Show version information and exit")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(queryCmd)

	connectors.RegisterAll(nil)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
