package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ontoscout/cmd/ontoscout/ui"
	"ontoscout/internal/ontology"
)

// validateCmd checks field names against the ontology
var validateCmd = &cobra.Command{
	Use:   "validate field [field...]",
	Short: "Check whether field names are defined in the ontology",
	Long: `Validates each field name against the ontology's field registry.
A field is valid when it is defined in its declared namespace or in the
global namespace; matching is by exact standardized name, never fuzzy.

Example:
  ontoscout validate zone_air_temperature_sensor HVAC/discharge_fan_speed_percentage`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	styles := ui.DefaultStyles()
	invalid := 0
	for _, arg := range args {
		ns, name := parseTypeRef(arg)
		ok, err := a.explorer.IsValid(ontology.FieldIdentity{Namespace: ns, Name: name})
		if err != nil {
			return err
		}
		if ok {
			fmt.Println(styles.Valid.Render("✓ " + arg))
		} else {
			invalid++
			fmt.Println(styles.Invalid.Render("✗ " + arg))
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d fields are not defined", invalid, len(args))
	}
	return nil
}
