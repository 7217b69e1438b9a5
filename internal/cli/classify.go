package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"glucolog/internal/domain"
)

func init() {
	cmd := &cobra.Command{
		Use:   "classify <mealContext> <value>",
		Short: "Check a glucose value against the target range",
		Long:  "Check a glucose value (mg/dL) against the target range for fasting, after_meal or other.",
		Args:  cobra.ExactArgs(2),
		RunE:  runClassify,
	}
	RootCmd.AddCommand(cmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	mc, err := domain.ParseMealContext(args[0])
	if err != nil {
		return err
	}
	level, ok := domain.SanitizeGlucoseInput(args[1])
	if !ok {
		return fmt.Errorf("%w: %q has no digits", domain.ErrInvalidReading, args[1])
	}
	fmt.Fprint(cmd.OutOrStdout(), renderClassification(mc, level, domain.IsAbnormalLevel(mc, level)))
	return nil
}
