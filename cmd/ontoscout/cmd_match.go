package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ontoscout/cmd/ontoscout/ui"
	"ontoscout/internal/explorer"
)

var (
	generalType string
	bestFitOnly bool
	topN        int
)

// matchCmd ranks canonical types against an observed field set
var matchCmd = &cobra.Command{
	Use:   "match field,field,...",
	Short: "Rank canonical types against an observed field set",
	Long: `Scores every matchable canonical type against the given fields and
prints the best matches first. Scores lie in [-1, 1]; 1 means the
observed fields exactly satisfy the type's field signature.

Examples:
  ontoscout match zone_air_temperature_sensor,zone_occupancy_status
  ontoscout match supply_fan_run_status --general-type FAN --best-fit`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&generalType, "general-type", "", "Only consider types with this ancestor")
	matchCmd.Flags().BoolVar(&bestFitOnly, "best-fit", false, "Only show matches above the score threshold")
	matchCmd.Flags().IntVar(&topN, "top", 0, "How many matches to show (default from config)")
}

func runMatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	fields := parseFieldList(args[0])
	logger.Debug("ranking types",
		zap.Int("fields", len(fields)), zap.String("general_type", generalType))

	matches, err := a.explorer.RankTypes(fields, generalType, bestFitOnly)
	if err != nil {
		return err
	}

	limit := topN
	if limit <= 0 {
		limit = a.cfg.Matching.ListSize
	}
	if limit > len(matches) {
		limit = len(matches)
	}

	styles := ui.DefaultStyles()
	fmt.Println(styles.Title.Render(fmt.Sprintf("Top %d of %d matches:", limit, len(matches))))
	for _, m := range matches[:limit] {
		fmt.Println(renderMatch(styles, m, a.explorer.MatchThreshold()))
	}
	return nil
}

func renderMatch(styles ui.Styles, m explorer.Match, threshold float64) string {
	score := fmt.Sprintf("%+.3f", m.Score())
	if m.Score() > threshold {
		score = styles.Score.Render(score)
	} else {
		score = styles.LowScore.Render(score)
	}
	return fmt.Sprintf("  %s  %s", score, m.Type().Key())
}
