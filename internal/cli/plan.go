package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/novaqhq/novaq/internal/planner"
	"github.com/novaqhq/novaq/internal/settings"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Schedule a focus block for each active project",
	Long: `Schedule one focus block per active project (up to five) across the
next weekdays, starting tomorrow. Projects that already have a focus
block on their day are left alone.`,
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	store, err := settings.OpenDefault()
	if err != nil {
		return err
	}
	userSettings := store.Load(client.UserID())

	projects, err := client.ListProjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	res, err := planner.PlanWeek(cmd.Context(), client, projects, userSettings, time.Now())
	if err != nil {
		return err
	}

	fmt.Println(res.Message())
	return nil
}
