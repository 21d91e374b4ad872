package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sadopc/focusflow/internal/store"
	"github.com/sadopc/focusflow/internal/verdict"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the task list",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	RunE:  runTaskList,
}

var taskStartCmd = &cobra.Command{
	Use:   "start <id>",
	Short: "Make a task the active focus",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskStart,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRm,
}

var taskSuggestCmd = &cobra.Command{
	Use:   "suggest <project description>",
	Short: "Ask the agent to break a project into micro-tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskSuggest,
}

var (
	taskDesc     string
	taskDuration string
	suggestSave  bool
)

func init() {
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskStartCmd, taskDoneCmd, taskRmCmd, taskSuggestCmd)

	taskAddCmd.Flags().StringVar(&taskDesc, "desc", "", "task description")
	taskAddCmd.Flags().StringVar(&taskDuration, "duration", "30 min", "estimated duration")
	taskSuggestCmd.Flags().BoolVar(&suggestSave, "save", false, "add the suggested tasks to the list")
}

func withStore(fn func(s store.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg, os.Stderr)

	s := openStore(cfg)
	defer s.Close()
	return fn(s)
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	return withStore(func(s store.Store) error {
		id, err := s.AddTask(args[0], taskDesc, taskDuration, store.StatusTodo)
		if err != nil {
			return err
		}
		fmt.Printf("✅ Task %d created: %s\n", id, args[0])
		return nil
	})
}

func runTaskList(cmd *cobra.Command, args []string) error {
	return withStore(func(s store.Store) error {
		tasks, err := s.ListTasks()
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks yet. Add one with: focusflow task add <title>")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tTITLE\tDURATION")
		for _, t := range tasks {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.Status, t.Title, t.EstimatedDuration)
		}
		return w.Flush()
	})
}

func runTaskStart(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	return withStore(func(s store.Store) error {
		started, err := s.SetActiveTask(id)
		if err != nil {
			return err
		}
		if !started {
			return fmt.Errorf("task %d is already done", id)
		}
		task, err := s.GetTask(id)
		if err != nil {
			return err
		}
		fmt.Printf("▶ Now monitoring: %s\n", task.Title)
		return nil
	})
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	return withStore(func(s store.Store) error {
		done := store.StatusDone
		if err := s.UpdateTask(id, store.TaskUpdate{Status: &done}); err != nil {
			return err
		}
		fmt.Printf("🎉 Task %d completed\n", id)
		return nil
	})
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}
	return withStore(func(s store.Store) error {
		if err := s.DeleteTask(id); err != nil {
			return err
		}
		fmt.Printf("🗑️ Task %d deleted\n", id)
		return nil
	})
}

func runTaskSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg, os.Stderr)

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}
	agent, ok := provider.(*verdict.Agent)
	if !ok || agent == nil {
		return fmt.Errorf("no provider configured: set an API key to use task suggestions")
	}

	drafts := agent.GenerateTasks(context.Background(), args[0])
	if len(drafts) == 0 {
		return fmt.Errorf("the agent could not produce a task breakdown")
	}

	for i, d := range drafts {
		fmt.Printf("%d. %s (%s)\n   %s\n", i+1, d.Title, d.EstimatedDuration, d.Description)
	}

	if !suggestSave {
		fmt.Println("\nRe-run with --save to add these to your task list.")
		return nil
	}

	s := openStore(cfg)
	defer s.Close()
	for _, d := range drafts {
		if _, err := s.AddTask(d.Title, d.Description, d.EstimatedDuration, store.StatusTodo); err != nil {
			return err
		}
	}
	fmt.Printf("\n✅ Added %d tasks.\n", len(drafts))
	return nil
}
