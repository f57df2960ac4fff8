// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vfsh/internal/commands"
	"vfsh/internal/config"
	"vfsh/internal/paths"
	"vfsh/internal/shell"
	"vfsh/internal/theme"
	"vfsh/internal/ui"
)

var (
	errUsage    = errors.New("usage error")
	errRejected = errors.New("one or more lines were rejected")
)

type configError struct{ err error }

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

type options struct {
	debug      bool
	logFile    string
	configFile string
	envFile    string
	tui        bool
	schema     bool
}

type mode int

const (
	modeConsole mode = iota
	modeTUI
	modeBatchStdin
	modeBatchFile
)

func (m mode) String() string {
	switch m {
	case modeConsole:
		return "console"
	case modeTUI:
		return "tui"
	case modeBatchStdin:
		return "batch-stdin"
	case modeBatchFile:
		return "batch-file"
	default:
		return "unknown"
	}
}

// selectMode picks the front-end: an explicit script wins, then --tui, then a
// piped stdin falls back to batch.
func selectMode(args []string, tui, stdinIsTerminal bool) (mode, error) {
	if len(args) > 0 {
		if tui {
			return 0, fmt.Errorf("%w: --tui cannot be combined with a script", errUsage)
		}
		if args[0] == "-" {
			return modeBatchStdin, nil
		}
		return modeBatchFile, nil
	}
	if tui {
		return modeTUI, nil
	}
	if !stdinIsTerminal {
		return modeBatchStdin, nil
	}
	return modeConsole, nil
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "vfsh [script | -]",
		Short: "In-memory hierarchical file system shell",
		Long: `vfsh keeps a tree of directories and text files in memory and edits it
with a small command language: touch, mkdir, ls, cd, pwd, print, setContent,
rm, mv and copy. Lines starting with / are meta commands (/help, /tree, ...).

Without arguments vfsh starts an interactive console (or a full screen TUI
with --tui). With a script path, or "-" for stdin, it runs one command per
line, skipping blank lines and # comments.

Exit Codes:
  0  - Success
  1  - A script line was rejected
  2  - CLI usage error
  3  - Panic or unexpected error
  10 - Invalid configuration`,
		Args:          cobra.MaximumNArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	flags := cmd.Flags()
	flags.BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")
	flags.StringVar(&opts.logFile, "log-file", "", "Log file path (logs disabled by default)")
	flags.StringVarP(&opts.configFile, "config", "c", config.DefaultFile, "Config file (.json, .yaml or .yml)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Environment file loaded before the config")
	flags.BoolVar(&opts.tui, "tui", false, "Run the full screen terminal UI")
	flags.BoolVar(&opts.schema, "schema", false, "Print the config JSON schema and exit")

	return cmd
}

func run(ctx context.Context, opts *options, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.schema {
		fmt.Fprintln(stdout, config.SchemaJSON())
		return nil
	}

	logPath := opts.logFile
	if logPath != "" {
		resolved, err := paths.Resolve(logPath)
		if err != nil {
			return fmt.Errorf("%w: --log-file: %v", errUsage, err)
		}
		logPath = resolved
	}
	logger, closer, err := initLogger(opts.debug, logPath)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	logger = logger.With().Str("session", uuid.NewString()).Logger()

	cfg, err := loadConfig(opts, logger)
	if err != nil {
		return &configError{err: err}
	}

	stdinTTY := isTerminal(stdin)
	m, err := selectMode(args, opts.tui, stdinTTY)
	if err != nil {
		return err
	}
	logger.Info().Str("version", Version).Stringer("mode", m).Msg("vfsh starting")
	defer logger.Info().Msg("Session ended")

	if !isTerminal(stdout) {
		pterm.DisableColor()
		color.NoColor = true
	}

	session := shell.NewSession(shell.Options{
		RootName:   cfg.RootName,
		Extensions: cfg.Extensions,
		Logger:     &logger,
	})
	registry := commands.NewRegistry(logger)
	debugMode := opts.debug
	env := &commands.Env{
		Session: session,
		Debug:   &debugMode,
		OnDebug: setDebug,
	}

	ctx, stop := signalContext(ctx)
	defer stop()

	switch m {
	case modeBatchFile:
		script, err := paths.ResolveReadable(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		f, err := os.Open(script)
		if err != nil {
			return err
		}
		defer f.Close()
		return runBatch(ctx, f, stdout, stderr, registry, env, logger)

	case modeBatchStdin:
		return runBatch(ctx, stdin, stdout, stderr, registry, env, logger)

	case modeTUI:
		mgr := loadTheme(cfg.ThemeFile, logger)
		registry.SetKeys("Up/Down    Recall older/newer commands", "PgUp/PgDn  Scroll output", "Ctrl+Q     Quit")
		return ui.New(session, registry, mgr.Theme(), logger, ui.Options{
			Prompt:  cfg.Prompt,
			Debug:   env.Debug,
			OnDebug: env.OnDebug,
		}).Run(ctx)

	default:
		mgr := loadTheme(cfg.ThemeFile, logger)
		registry.SetKeys("Up/Down    Recall older/newer commands", "Tab        Complete commands and names", "Ctrl+D     Quit")
		return runConsole(ctx, consoleDeps{
			session:  session,
			registry: registry,
			env:      env,
			theme:    mgr,
			prompt:   cfg.Prompt,
			logger:   logger,
		})
	}
}

func loadConfig(opts *options, logger zerolog.Logger) (*config.Config, error) {
	if opts.envFile != "" {
		if err := config.LoadDotEnv(opts.envFile); err != nil {
			return nil, err
		}
	}
	path, err := paths.Resolve(opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("--config: %w", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Validate() {
		logger.Warn().Str("field", w.Field).Msg(w.Message)
	}
	logger.Debug().
		Str("config", path).
		Str("root_name", cfg.RootName).
		Strs("extensions", cfg.Extensions).
		Msg("Configuration loaded")
	return cfg, nil
}

// loadTheme falls back to the default theme on any error; colors are not
// worth refusing to start over.
func loadTheme(file string, logger zerolog.Logger) *theme.Manager {
	if file != "" {
		if resolved, err := paths.Resolve(file); err == nil {
			mgr, err := theme.NewManager(resolved)
			if err == nil {
				return mgr
			}
			logger.Warn().Err(err).Str("theme_file", resolved).Msg("Using default theme")
		}
	}
	return theme.NewManagerWithTheme(theme.DefaultTheme())
}

func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
