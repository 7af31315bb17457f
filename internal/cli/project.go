package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/novaqhq/novaq/internal/model"
	"github.com/novaqhq/novaq/internal/settings"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `Create, list, and manage projects.`,
}

var projectNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new project",
	Long: `Create a new project.

Examples:
  novaq project new "Thesis"
  novaq project new "Side hustle" --color "#FF6B6B"`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectNew,
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all projects",
	RunE:    runProjectList,
}

var projectDeleteCmd = &cobra.Command{
	Use:     "delete [project-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a project and its events",
	Args:    cobra.ExactArgs(1),
	RunE:    runProjectDelete,
}

var projectStatusCmd = &cobra.Command{
	Use:   "status [project-id] [status]",
	Short: "Set a project's status (not-started, in-progress, completed)",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectStatus,
}

var projectLinkCmd = &cobra.Command{
	Use:   "link [project-id] [url]",
	Short: "Attach a resource link to a project",
	Long: `Attach a resource link to a project. Links without a scheme get an
https:// prefix; duplicates are rejected.`,
	Args: cobra.ExactArgs(2),
	RunE: runProjectLink,
}

var projectColor string

func init() {
	projectNewCmd.Flags().StringVarP(&projectColor, "color", "c", "", "Project color (hex)")

	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectStatusCmd)
	projectCmd.AddCommand(projectLinkCmd)
}

func runProjectNew(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	p := model.NewProject(uuid.New().String(), client.UserID(), args[0])
	if projectColor != "" {
		if !model.ValidHexColor(projectColor) {
			return fmt.Errorf("invalid color %q, expected #RRGGBB", projectColor)
		}
		p.BackgroundColour = projectColor
	}

	created, err := client.CreateProject(cmd.Context(), p)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Printf("✓ Created project: %s (id: %s)\n", created.Name, created.ID)
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	projects, err := client.ListProjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	fmt.Println()
	fmt.Printf("  %-36s  %-20s  %-12s  %s\n", "ID", "Name", "Status", "Events")
	fmt.Println(strings.Repeat("─", 80))

	totalEvents := 0
	for _, p := range projects {
		totalEvents += len(p.CalendarEvents)
		fmt.Printf("  %-36s  %-20s  %-12s  %d\n", p.ID, p.Name, p.Status, len(p.CalendarEvents))
	}

	fmt.Println(strings.Repeat("─", 80))
	fmt.Printf("  %d projects, %d events\n\n", len(projects), totalEvents)

	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	projectID := args[0]

	store, err := settings.OpenDefault()
	if err != nil {
		return err
	}
	if store.Load(client.UserID()).ConfirmBeforeDelete {
		answer := promptLine(fmt.Sprintf("Delete project %s and all its events? [y/N] ", projectID))
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := client.DeleteProject(cmd.Context(), projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	fmt.Printf("🗑️  Deleted project: %s\n", projectID)
	return nil
}

func runProjectLink(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	projectID := args[0]

	projects, err := client.ListProjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	for _, p := range projects {
		if p.ID != projectID {
			continue
		}
		links, err := model.AppendLink(p.ResourceLinks, args[1])
		if err != nil {
			return err
		}
		p.ResourceLinks = links
		if _, err := client.UpdateProject(cmd.Context(), p); err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}
		fmt.Printf("✓ Linked %s to %s\n", links[len(links)-1], p.Name)
		return nil
	}

	return fmt.Errorf("project not found: %s", projectID)
}

func runProjectStatus(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	projectID, status := args[0], args[1]
	switch status {
	case model.StatusNotStarted, model.StatusInProgress, model.StatusCompleted:
	default:
		return fmt.Errorf("invalid status %q", status)
	}

	projects, err := client.ListProjects(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	for _, p := range projects {
		if p.ID == projectID {
			p.Status = status
			if _, err := client.UpdateProject(cmd.Context(), p); err != nil {
				return fmt.Errorf("failed to update project: %w", err)
			}
			fmt.Printf("✓ %s is now %s\n", p.Name, status)
			return nil
		}
	}

	return fmt.Errorf("project not found: %s", projectID)
}
