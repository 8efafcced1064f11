// Package main provides the ontoscout CLI: an explorer for a
// building-metadata ontology. It answers which fields compose a canonical
// entity type, whether a field name is defined at all, and which types
// best match the field set observed on a real device.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ontoscout/internal/config"
	"ontoscout/internal/explorer"
	"ontoscout/internal/loader"
	"ontoscout/internal/ontology"
)

var (
	// Global flags
	configPath  string
	ontologyDir string
	verbose     bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ontoscout",
	Short: "ontoscout - building-metadata ontology explorer",
	Long: `ontoscout explores a building-metadata ontology: a catalog of canonical
entity types, each defined by required and optional fields, organized
into namespaces.

Given the fields observed on a real device it can validate field names,
list the fields composing a type (inheritance already resolved), and
rank every canonical type by how well its field signature matches.

Run without arguments to start the interactive explorer.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExplore(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "ontoscout.yaml", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&ontologyDir, "ontology", "o", "", "Ontology corpus directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(exploreCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if ontologyDir != "" {
		cfg.Ontology.Dir = ontologyDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app bundles one loaded ontology snapshot with the engine bound to it.
type app struct {
	cfg      *config.Config
	universe *ontology.Universe
	explorer *explorer.Explorer
}

// newApp loads the ontology corpus once and binds an engine to it.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger.Debug("loading ontology corpus", zap.String("dir", cfg.Ontology.Dir))

	universe, err := loader.Load(cfg.Ontology.Dir)
	if err != nil {
		return nil, fmt.Errorf("loading ontology from %s: %w", cfg.Ontology.Dir, err)
	}
	return &app{
		cfg:      cfg,
		universe: universe,
		explorer: explorer.New(universe, explorer.WithMatchThreshold(cfg.Matching.ScoreThreshold)),
	}, nil
}

// parseTypeRef splits a "NAMESPACE/TYPE" argument; a bare name refers to
// the global namespace.
func parseTypeRef(ref string) (namespace, typeName string) {
	if ns, name, ok := strings.Cut(ref, "/"); ok {
		return ns, name
	}
	return "", ref
}

// parseFieldList turns a comma-separated list of field names into
// identities. Spaces are ignored and a "NAMESPACE/name" entry yields a
// namespaced identity.
func parseFieldList(raw string) []ontology.FieldIdentity {
	var fields []ontology.FieldIdentity
	for _, entry := range strings.Split(strings.ReplaceAll(raw, " ", ""), ",") {
		if entry == "" {
			continue
		}
		ns, name := parseTypeRef(entry)
		fields = append(fields, ontology.FieldIdentity{Namespace: ns, Name: name})
	}
	return fields
}
