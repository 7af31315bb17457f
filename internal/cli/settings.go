package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/novaqhq/novaq/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting. Out-of-range numbers are clamped, malformed times
and colors fall back to their defaults.

Keys:
  search-limit      dashboard search result cap (3-20)
  event-start       default event start time, HH:MM
  event-duration    default event duration in minutes (15-480)
  planner-start     smart planner start time, HH:MM
  planner-duration  smart planner duration in minutes (15-480)
  event-color       default event color, #RRGGBB
  confirm-delete    ask before deleting (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

func printSettings(s settings.Settings) {
	fmt.Printf("  search-limit      %d\n", s.DashboardSearchLimit)
	fmt.Printf("  event-start       %s\n", s.DefaultEventStartTime)
	fmt.Printf("  event-duration    %d\n", s.DefaultEventDurationMinutes)
	fmt.Printf("  planner-start     %s\n", s.SmartPlannerStartTime)
	fmt.Printf("  planner-duration  %d\n", s.SmartPlannerDurationMinutes)
	fmt.Printf("  event-color       %s\n", s.DefaultEventColor)
	fmt.Printf("  confirm-delete    %t\n", s.ConfirmBeforeDelete)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	store, err := settings.OpenDefault()
	if err != nil {
		return err
	}
	printSettings(store.Load(client.UserID()))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	store, err := settings.OpenDefault()
	if err != nil {
		return err
	}

	s := store.Load(client.UserID())
	key, value := args[0], args[1]

	atoi := func(v string) int {
		n, err := strconv.Atoi(v)
		if err != nil {
			return -1 // normalization replaces it with the default bound
		}
		return n
	}

	switch key {
	case "search-limit":
		s.DashboardSearchLimit = atoi(value)
	case "event-start":
		s.DefaultEventStartTime = value
	case "event-duration":
		s.DefaultEventDurationMinutes = atoi(value)
	case "planner-start":
		s.SmartPlannerStartTime = value
	case "planner-duration":
		s.SmartPlannerDurationMinutes = atoi(value)
	case "event-color":
		s.DefaultEventColor = value
	case "confirm-delete":
		s.ConfirmBeforeDelete = value == "true" || value == "yes" || value == "1"
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	saved, err := store.Save(client.UserID(), s)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	printSettings(saved)
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	store, err := settings.OpenDefault()
	if err != nil {
		return err
	}

	defaults, err := store.Reset(client.UserID())
	if err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	printSettings(defaults)
	fmt.Println("✓ Settings reset to defaults")
	return nil
}
