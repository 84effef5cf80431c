package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasklist/internal/model"
)

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with their task counts",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, _ []string, s *session) error {
			counts := make(map[string]int)
			for _, t := range s.store.Tasks() {
				counts[t.Category]++
			}
			bold := color.New(color.Bold)
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("", bold.Sprint("CATEGORY"), bold.Sprint("ICON"), bold.Sprint("TASKS"))
			for _, c := range s.store.Categories() {
				tbl.AddRow(c.Glyph(), c.Title(), c.Icon, counts[c.Name])
			}
			tbl.RightAlign(3)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return nil
		}),
	}
}

func newCategoryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}
	cmd.AddCommand(newCategoryAddCmd(opts))
	return cmd
}

func newCategoryAddCmd(opts *rootOptions) *cobra.Command {
	var icon string
	cmd := &cobra.Command{
		Use:   "add <name...>",
		Short: "Create a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, args []string, s *session) error {
			if !cmd.Flags().Changed("icon") {
				icon = s.cfg.DefaultIcon
			}
			c, err := s.store.AddCategory(cmd.Context(), strings.Join(args, " "), strings.ToLower(icon))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added category %s %s\n", c.Glyph(), c.Title())
			return nil
		}),
	}
	names := make([]string, 0)
	for _, ic := range model.Icons() {
		names = append(names, ic.Name)
	}
	cmd.Flags().StringVarP(&icon, "icon", "i", model.DefaultIcon, "icon: "+strings.Join(names, ", "))
	return cmd
}
