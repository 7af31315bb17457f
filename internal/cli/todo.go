package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/novaqhq/novaq/internal/model"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage quick todos",
}

var todoAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoAdd,
}

var todoListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List todos",
	RunE:    runTodoList,
}

var todoDoneCmd = &cobra.Command{
	Use:   "done [todo-id]",
	Short: "Mark a todo as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoDone,
}

var todoDeleteCmd = &cobra.Command{
	Use:     "delete [todo-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a todo",
	Args:    cobra.ExactArgs(1),
	RunE:    runTodoDelete,
}

var todoReminder string

func init() {
	todoAddCmd.Flags().StringVarP(&todoReminder, "remind", "r", "", "Reminder time, RFC3339")

	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoListCmd)
	todoCmd.AddCommand(todoDoneCmd)
	todoCmd.AddCommand(todoDeleteCmd)
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if todoReminder != "" {
		if _, err := time.Parse(time.RFC3339, todoReminder); err != nil {
			return fmt.Errorf("invalid reminder time %q: %w", todoReminder, err)
		}
	}

	t := model.NewTodoItem(uuid.New().String(), args[0], todoReminder)
	saved, err := client.SaveTodo(cmd.Context(), t)
	if err != nil {
		return fmt.Errorf("failed to add todo: %w", err)
	}

	fmt.Printf("✓ Added todo: %s\n", saved.Title)
	return nil
}

func runTodoList(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	todos, err := client.ListTodos(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list todos: %w", err)
	}

	if len(todos) == 0 {
		fmt.Println("No todos.")
		return nil
	}

	fmt.Println()
	now := time.Now()
	for _, t := range todos {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("  %s %-40s  %s", check, t.Title, t.ID)
		if t.ReminderDue(now, 15*time.Minute) {
			line += "  ⏰"
		}
		fmt.Println(line)
	}
	fmt.Println()
	return nil
}

func runTodoDone(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	todos, err := client.ListTodos(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list todos: %w", err)
	}

	for _, t := range todos {
		if t.ID == args[0] {
			t.Completed = true
			if _, err := client.SaveTodo(cmd.Context(), t); err != nil {
				return fmt.Errorf("failed to update todo: %w", err)
			}
			fmt.Printf("✓ Done: %s\n", t.Title)
			return nil
		}
	}

	return fmt.Errorf("todo not found: %s", args[0])
}

func runTodoDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	if err := client.DeleteTodo(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	fmt.Println("🗑️  Todo deleted.")
	return nil
}
