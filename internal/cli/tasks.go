package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/state"
)

const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, args []string, s *session) error {
			task, err := s.store.AddTask(cmd.Context(), strings.Join(args, " "), model.NormalizeCategoryName(category))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %s [%s]\n", shortID(task.ID), task.Text, task.Category)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&category, "category", "c", model.AllCategories, "category for the new task")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var category, filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, _ []string, s *session) error {
			if !cmd.Flags().Changed("filter") {
				filter = s.cfg.DefaultFilter
			}
			status, err := model.ParseStatusFilter(filter)
			if err != nil {
				return err
			}
			tasks := s.store.Visible(model.ViewFilter{Category: model.NormalizeCategoryName(category), Status: status})
			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks found. Add a new task!")
				return nil
			}

			bold := color.New(color.Bold)
			done := color.New(color.FgGreen)
			open := color.New(color.FgYellow)
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 60
			tbl.AddRow(bold.Sprint("ID"), bold.Sprint("STATUS"), bold.Sprint("TASK"), bold.Sprint("CATEGORY"))
			for _, t := range tasks {
				status := open.Sprint("[ ]")
				if t.Completed {
					status = done.Sprint("[x]")
				}
				badge := ""
				if c, ok := s.store.Category(t.Category); ok {
					badge = c.Glyph() + " " + c.Title()
				}
				tbl.AddRow(shortID(t.ID), status, t.Text, badge)
			}
			_, _ = fmt.Fprintln(out, tbl)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&category, "category", "c", model.AllCategories, "category to show")
	cmd.Flags().StringVarP(&filter, "filter", "f", string(model.FilterAll), "all, active or completed")
	return cmd
}

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between done and open",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, args []string, s *session) error {
			task, err := s.store.Lookup(args[0])
			if err != nil {
				return err
			}
			task, err = s.store.ToggleTask(cmd.Context(), task.ID)
			if err != nil {
				return err
			}
			label := "open"
			if task.Completed {
				label = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", shortID(task.ID), label, task.Text)
			return nil
		}),
	}
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text...>",
		Short: "Replace a task's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: withSession(opts, func(cmd *cobra.Command, args []string, s *session) error {
			task, err := s.store.Lookup(args[0])
			if err != nil {
				return err
			}
			task, err = s.store.EditTask(cmd.Context(), task.ID, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "edited %s %s\n", shortID(task.ID), task.Text)
			return nil
		}),
	}
}

func newRmCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, args []string, s *session) error {
			task, err := s.store.Lookup(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !yes && s.cfg.ConfirmDelete {
				fmt.Fprintf(out, "Delete %q? [y/N] ", task.Text)
				if !readYes(bufio.NewReader(cmd.InOrStdin())) {
					fmt.Fprintln(out, "cancelled")
					return nil
				}
			}
			if _, err := s.store.DeleteTask(cmd.Context(), task.ID); err != nil {
				return err
			}
			fmt.Fprintf(out, "deleted %s %s\n", shortID(task.ID), task.Text)
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	return cmd
}

func readYes(r *bufio.Reader) bool {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func newClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every completed task",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, _ []string, s *session) error {
			n, err := s.store.ClearCompleted(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d completed task(s)\n", n)
			return nil
		}),
	}
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show total and completed counts",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, _ []string, s *session) error {
			st := s.store.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d | Completed: %d\n", st.Total, st.Completed)
			return nil
		}),
	}
}

// userError turns store rejections into messages for the terminal.
func userError(err error) error {
	switch {
	case errors.Is(err, state.ErrDuplicateCategory):
		return errors.New("Category already exists!")
	case errors.Is(err, state.ErrBlankText):
		return errors.New("task text is empty")
	default:
		return err
	}
}
