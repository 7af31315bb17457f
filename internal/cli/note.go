package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/novaqhq/novaq/internal/model"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage sticky notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add [content]",
	Short: "Add a sticky note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteAdd,
}

var noteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List sticky notes",
	RunE:    runNoteList,
}

var noteDeleteCmd = &cobra.Command{
	Use:     "delete [note-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a sticky note",
	Args:    cobra.ExactArgs(1),
	RunE:    runNoteDelete,
}

func init() {
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteDeleteCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	n := model.NewNote(uuid.New().String(), args[0], 0, 0)
	if _, err := client.SaveNote(cmd.Context(), n); err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}

	fmt.Println("✓ Note added.")
	return nil
}

func runNoteList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	notes, err := client.ListNotes(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	if len(notes) == 0 {
		fmt.Println("No notes.")
		return nil
	}

	fmt.Println()
	for _, n := range notes {
		content := n.Content
		if idx := strings.IndexByte(content, '\n'); idx >= 0 {
			content = content[:idx] + "…"
		}
		marker := " "
		if n.IsHighlighted {
			marker = "★"
		}
		fmt.Printf("  %s %-50s  %s\n", marker, content, n.ID)
	}
	fmt.Println()
	return nil
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if err := client.DeleteNote(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	fmt.Println("🗑️  Note deleted.")
	return nil
}
