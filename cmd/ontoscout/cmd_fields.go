package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ontoscout/cmd/ontoscout/ui"
)

var requiredOnly bool

// fieldsCmd lists the fields composing a canonical type
var fieldsCmd = &cobra.Command{
	Use:   "fields NAMESPACE/TYPE",
	Short: "List the fields that compose a canonical entity type",
	Long: `Prints the full field list of a canonical type, inherited fields
included, ordered by namespace and name. Optional fields are marked.

Example:
  ontoscout fields HVAC/FAN_SS
  ontoscout fields FACILITIES/ROOM --required-only`,
	Args: cobra.ExactArgs(1),
	RunE: runFields,
}

func init() {
	fieldsCmd.Flags().BoolVar(&requiredOnly, "required-only", false, "Only show required fields")
}

func runFields(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	namespace, typeName := parseTypeRef(args[0])
	logger.Debug("listing fields",
		zap.String("namespace", namespace), zap.String("type", typeName))

	fields, err := a.explorer.FieldsOf(namespace, typeName, requiredOnly)
	if err != nil {
		return err
	}

	styles := ui.DefaultStyles()
	fmt.Println(styles.Title.Render(fmt.Sprintf("Fields for %s:", args[0])))
	for _, f := range fields {
		line := f.Key()
		if f.Optional {
			fmt.Println(styles.Optional.Render(line + " (optional)"))
		} else {
			fmt.Println(styles.Field.Render(line))
		}
	}
	return nil
}
