package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ontoscout/cmd/ontoscout/ui"
	"ontoscout/internal/loader"
)

// lintCmd validates the ontology corpus without querying it
var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate the ontology corpus",
	Long: `Parses and builds the whole ontology corpus, reporting every finding:
unknown field references, unknown or cyclic parent types, duplicate
declarations, and malformed documents.`,
	Args: cobra.NoArgs,
	RunE: runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	styles := ui.DefaultStyles()
	universe, err := loader.Load(cfg.Ontology.Dir)
	if err != nil {
		for _, finding := range strings.Split(err.Error(), "\n") {
			fmt.Println(styles.Invalid.Render("✗ " + finding))
		}
		return fmt.Errorf("ontology corpus at %s failed validation", cfg.Ontology.Dir)
	}

	types := 0
	for _, ns := range universe.Namespaces() {
		types += len(ns.Types())
	}
	fmt.Println(styles.Valid.Render(fmt.Sprintf(
		"✓ ontology corpus at %s is valid (%d namespaces, %d types)",
		cfg.Ontology.Dir, len(universe.Namespaces()), types)))
	return nil
}
