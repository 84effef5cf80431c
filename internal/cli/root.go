// Package cli wires configuration, storage and the state store behind a cobra
// command tree. With no subcommand it runs the terminal UI.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasklist/internal/config"
	"github.com/sandeepkv93/tasklist/internal/state"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

// session is everything a subcommand needs once config and storage are open.
type session struct {
	cfg     config.Config
	kv      storage.KV
	store   *state.Store
	logger  *log.Logger
	logFile *os.File
}

func (s *session) Close() error {
	var firstErr error
	if s.kv != nil {
		firstErr = s.kv.Close()
	}
	if s.logFile != nil {
		if err := s.logFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "tasklist",
		Short:         "A task list with categories, kept in local storage",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          withSession(opts, runUI),
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultConfigPath, "config file (TOML)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr when no log file is configured")

	root.AddCommand(
		newUICmd(opts),
		newAddCmd(opts),
		newListCmd(opts),
		newToggleCmd(opts),
		newEditCmd(opts),
		newRmCmd(opts),
		newClearCmd(opts),
		newCategoriesCmd(opts),
		newCategoryCmd(opts),
		newStatsCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// Execute runs the root command.
func Execute(version string) error {
	root := NewRootCmd()
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func withSession(opts *rootOptions, fn func(*cobra.Command, []string, *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), opts, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() {
			if cerr := s.Close(); cerr != nil {
				s.logger.Printf("cli: close: %v", cerr)
			}
		}()
		if err := fn(cmd, args, s); err != nil {
			s.logger.Printf("cli: %s: %v", cmd.Name(), err)
			return userError(err)
		}
		return nil
	}
}

func openSession(ctx context.Context, opts *rootOptions, stderr io.Writer) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg}
	if err := s.openLogger(opts.verbose, stderr); err != nil {
		return nil, err
	}
	kv, err := storage.Open(cfg.Backend, cfg.StoreLocation())
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.kv = kv
	store, err := state.Open(ctx, storage.NewRecords(kv), state.WithLogger(s.logger))
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.store = store
	s.logger.Printf("cli: opened %s store at %s", cfg.Backend, cfg.StoreLocation())
	return s, nil
}

// openLogger writes to the configured log file, to stderr in verbose mode,
// and nowhere otherwise.
func (s *session) openLogger(verbose bool, stderr io.Writer) error {
	var out io.Writer = io.Discard
	switch {
	case s.cfg.LogPath != "":
		if err := os.MkdirAll(filepath.Dir(s.cfg.LogPath), 0o755); err != nil {
			return fmt.Errorf("cli: log dir: %w", err)
		}
		f, err := os.OpenFile(s.cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cli: open log: %w", err)
		}
		s.logFile = f
		out = f
	case verbose:
		out = stderr
	}
	s.logger = log.New(out, "tasklist ", log.LstdFlags)
	return nil
}
