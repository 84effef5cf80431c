package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/update"
)

func newUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Run the terminal UI (default)",
		Args:  cobra.NoArgs,
		RunE:  withSession(opts, runUI),
	}
}

func runUI(cmd *cobra.Command, _ []string, s *session) error {
	m := update.NewModel(s.store, update.Options{
		DefaultFilter: model.StatusFilter(s.cfg.DefaultFilter),
		DefaultIcon:   s.cfg.DefaultIcon,
		ConfirmDelete: s.cfg.ConfirmDelete,
		Logger:        s.logger,
	})
	program := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tasklist ui: %w", err)
	}
	return nil
}
