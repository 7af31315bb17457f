package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/novaqhq/novaq/internal/settings"
	"github.com/novaqhq/novaq/internal/state"
)

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search projects and events",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	store, err := settings.OpenDefault()
	if err != nil {
		return err
	}
	limit := store.Load(client.UserID()).DashboardSearchLimit

	projects, err := client.ListProjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	projectState := state.NewStore()
	projectState.Replace(projects)
	res := projectState.Search(args[0], limit)

	if len(res.Projects) == 0 && len(res.Events) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	if len(res.Projects) > 0 {
		fmt.Println("\nProjects:")
		for _, p := range res.Projects {
			fmt.Printf("  %-20s  %-12s  %s\n", p.Name, p.Status, p.ID)
		}
	}
	if len(res.Events) > 0 {
		fmt.Println("\nEvents:")
		for _, ev := range res.Events {
			fmt.Printf("  %s  %s-%s  %-30s  [%s]\n",
				ev.Date, ev.StartTime, ev.EndTime, ev.Title, ev.ProjectName)
		}
	}
	fmt.Println()
	return nil
}
