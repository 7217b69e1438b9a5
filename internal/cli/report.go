package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"glucolog/internal/adapter/memory"
	"glucolog/internal/app"
	"glucolog/internal/domain"
)

var (
	flagReportDays  int
	flagReportToday string
	flagReportUnit  string
	flagReportSeed  uint64
)

func init() {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the weekly report over generated demo readings",
		Args:  cobra.NoArgs,
		RunE:  runReport,
	}
	cmd.Flags().IntVarP(&flagReportDays, "days", "n", 21, "Days of demo readings to generate")
	cmd.Flags().StringVar(&flagReportToday, "today", "", "Report date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&flagReportUnit, "unit", "u", domain.UnitMgdl, "Display unit: mg/dL or mmol/L")
	cmd.Flags().Uint64Var(&flagReportSeed, "seed", 0, "Random seed (0 picks one)")

	RootCmd.AddCommand(cmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	today := flagReportToday
	if today == "" {
		today = domain.LocalDay(time.Now(), loc)
	}
	seed := flagReportSeed
	if seed == 0 {
		seed = rand.Uint64()
	}

	store := memory.New()
	if _, err := app.Seed(store, today, flagReportDays, rand.New(rand.NewPCG(seed, seed))); err != nil {
		return err
	}
	return writeReport(cmd.Context(), cmd.OutOrStdout(), app.NewReportService(store), today, flagReportUnit)
}

func writeReport(ctx context.Context, w io.Writer, reports *app.ReportService, today, unit string) error {
	fmt.Fprintln(w, renderTitle("Glucose report for "+today))
	for _, mc := range []domain.MealContext{domain.Fasting, domain.AfterMeal} {
		rep, err := reports.Weekly(ctx, today, mc, unit)
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
		fmt.Fprint(w, renderWeekly(rep))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Today"))
	for _, mc := range domain.MealContexts {
		s, err := reports.DailySummary(ctx, today, mc, unit)
		if err != nil {
			return err
		}
		fmt.Fprint(w, renderSummary(today, mc, s))
	}
	return nil
}
