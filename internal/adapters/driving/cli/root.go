// Package cli implements the command-line interface for the reader.
// It is a driving adapter: commands call core services through driving ports
// and never touch storage or clipboard adapters directly.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-reader/internal/logger"
)

var cliLog = logger.Scope("cli")

// version is set by the build via SetVersion.
var version = "dev"

var (
	// Global flags
	verbose       bool
	corpusFlag    string
	storeFlag     string
	configDirFlag string
)

// Options carries the global flags into the wiring function.
type Options struct {
	// ConfigDir overrides the directory holding config.toml.
	ConfigDir string

	// Corpus is a YAML corpus served by the memory store.
	Corpus string

	// Store overrides the configured store backend. Empty keeps the config value.
	Store domain.StoreBackend
}

// ImportSummary describes a completed corpus import.
type ImportSummary struct {
	Source     string
	Documents  int
	Categories int
}

// Services holds the core services the commands run against.
type Services struct {
	Search        driving.SearchService
	Settings      driving.SettingsService
	Reader        driving.ReaderService
	Tasks         driving.TaskScheduler
	Notifications driving.NotificationService
	Export        driving.ExportService
	Highlighter   driving.Highlighter

	// Import loads a YAML corpus file into the persistent store.
	Import func(ctx context.Context, path string) (ImportSummary, error)

	// Watch blocks until ctx is done, calling onReload after every config change.
	Watch func(ctx context.Context, onReload func(*domain.AppSettings, error)) error

	// Close releases stores opened by the wiring.
	Close func() error
}

// WiringFunc builds the services for the given global flags.
type WiringFunc func(opts Options) (*Services, error)

var (
	wire WiringFunc
	svc  *Services
)

// SetWiring registers the function that builds services once flags are parsed.
func SetWiring(fn WiringFunc) {
	wire = fn
}

// SetVersion sets the version reported by the version command and MCP server.
func SetVersion(v string) {
	version = v
}

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "sercha-reader",
	Short: "Search documents and read them with query highlights",
	Long: `sercha-reader searches a document collection and opens results in a reader
that highlights the query, counts hits per section and shows how strongly each
section supports the query.

Run without a subcommand to start the interactive terminal UI.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

// setup enables logging and builds services for commands that need them.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	switch cmd.Name() {
	case "version", "help", "completion":
		return nil
	}
	if svc != nil || wire == nil {
		return nil
	}

	opts := Options{ConfigDir: configDirFlag, Corpus: corpusFlag}
	if storeFlag != "" {
		opts.Store = domain.StoreBackend(storeFlag)
		if !opts.Store.IsValid() {
			return fmt.Errorf("invalid --store %q: use memory or sqlite", storeFlag)
		}
	}

	s, err := wire(opts)
	if err != nil {
		return fmt.Errorf("initialising services: %w", err)
	}
	svc = s
	cliLog.Debug("services ready (store=%q corpus=%q)", storeFlag, corpusFlag)
	return nil
}

// closeServices releases whatever the wiring opened.
func closeServices() {
	if svc == nil || svc.Close == nil {
		return
	}
	if err := svc.Close(); err != nil {
		cliLog.Warn("closing services: %v", err)
	}
}

// Execute runs the CLI.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// ExecuteContext runs the CLI with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&corpusFlag, "corpus", "", "YAML corpus served by the memory store")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Document store: memory or sqlite (default from config)")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "Directory holding config.toml")
}
