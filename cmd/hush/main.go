package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/npratt/hush/internal/config"
	"github.com/npratt/hush/internal/events"
	"github.com/npratt/hush/internal/meditation"
	"github.com/npratt/hush/internal/shutdown"
	"github.com/npratt/hush/internal/tui"
)

var version = "dev"

// shutdownTimeout bounds unmounting after SIGINT/SIGTERM in headless mode.
const shutdownTimeout = 5 * time.Second

func main() {
	logLevel := &slog.LevelVar{}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	rootCmd := newRootCmd(viper.GetViper(), logger, logLevel)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// bindFlags binds every flag in fs to v under its own name.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
}

// loadConfig loads configuration, applies global flag overrides and
// resolves paths against the project root.
func loadConfig(cmd *cobra.Command, v *viper.Viper) (*config.Config, error) {
	cfg, err := config.LoadConfig(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cmd.Flags().Changed(FlagLogFile) {
		cfg.Paths.Log = v.GetString(FlagLogFile)
	}
	if cmd.Flags().Changed(FlagTrace) {
		cfg.Paths.Trace = v.GetString(FlagTrace)
	}

	cfg.Paths, err = config.ResolvePaths(cfg.Paths, config.FindProjectRoot(""))
	if err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}
	return cfg, nil
}

func newRootCmd(v *viper.Viper, logger *slog.Logger, logLevel *slog.LevelVar) *cobra.Command {
	v.SetEnvPrefix("HUSH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "hush",
		Short: "A one-minute meditation timer for the terminal",
		Long: `hush is a one-minute meditation timer. Hold the circle for sixty
seconds while guidance prompts rotate and the circle cycles through the
color wheel. Letting go resets the timer.

Without a terminal, hush reads "down" and "up" commands from stdin and
prints session events.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().String(FlagConfig, "", "Config file path (default: .hush/config.yaml)")
	rootCmd.PersistentFlags().String(FlagLogFile, "", "Log file path")
	rootCmd.PersistentFlags().String(FlagTrace, "", "Event trace file path (JSON lines)")
	bindFlags(v, rootCmd.PersistentFlags())

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if v.GetBool(FlagVerbose) {
			logLevel.Set(slog.LevelDebug)
			logger.Debug("verbose logging enabled")
		}
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newStartCmd(v, logger, logLevel),
		newPromptsCmd(),
		newConfigCmd(v),
		newTraceCmd(v),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "hush %s\n", version)
		},
	}
}

func newStartCmd(v *viper.Viper, logger *slog.Logger, logLevel *slog.LevelVar) *cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a meditation session",
		Long: `Start a meditation session.

With a terminal, the TUI opens on the home screen; press enter or click to
begin, then hold the circle with the mouse (or toggle with space).

Without one, hush runs headless: each stdin line is a command (down, up,
snapshot, quit) and every session event is printed. End of input while
holding keeps the session running until it completes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed(FlagSkipHome) {
				cfg.UI.SkipHome = v.GetBool(FlagSkipHome)
			}
			if cmd.Flags().Changed(FlagNoMouse) {
				cfg.UI.Mouse = !v.GetBool(FlagNoMouse)
			}
			if cmd.Flags().Changed(FlagAltScreen) {
				cfg.UI.AltScreen = v.GetBool(FlagAltScreen)
			}

			// Explicit flag wins, otherwise auto-detect from the TTY.
			tuiEnabled := v.GetBool(FlagTUI)
			if !cmd.Flags().Changed(FlagTUI) {
				tuiEnabled = term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
			}

			ctrlLogger := logger
			if tuiEnabled {
				if err := os.MkdirAll(filepath.Dir(cfg.Paths.Log), 0755); err != nil {
					return fmt.Errorf("create log directory: %w", err)
				}
				tuiLog, err := SetupTUILogger(filepath.Dir(cfg.Paths.Log), logLevel, cfg.LogRotation)
				if err != nil {
					return err
				}
				defer func() { _ = tuiLog.Close() }()
				ctrlLogger = tuiLog.Logger
				slog.SetDefault(ctrlLogger)
			}

			opts := []meditation.Option{meditation.WithLogger(ctrlLogger)}
			if cfg.Paths.Trace != "" {
				opts = append(opts, meditation.WithTrace(cfg.Paths.Trace,
					events.WithTraceRotation(cfg.LogRotation.MaxSizeMB, cfg.LogRotation.MaxBackups,
						cfg.LogRotation.MaxAgeDays, cfg.LogRotation.Compress)))
			}
			ctrl := meditation.NewController(opts...)

			ctrlLogger.Info("hush starting",
				"version", version,
				"tui", tuiEnabled,
				"trace_file", cfg.Paths.Trace,
				"fps", cfg.UI.FPS(),
			)

			if tuiEnabled {
				app := tui.New(ctrl,
					tui.WithFPS(cfg.UI.FPS()),
					tui.WithMouse(cfg.UI.Mouse),
					tui.WithAltScreen(cfg.UI.AltScreen),
					tui.WithSkipHome(cfg.UI.SkipHome),
					tui.WithLogger(ctrlLogger),
				)
				return app.Run(cmd.Context())
			}

			// --json exists on several commands, so read it from this one.
			asJSON, _ := cmd.Flags().GetBool(FlagJSON)
			h := &headless{
				ctrl:   ctrl,
				in:     cmd.InOrStdin(),
				out:    cmd.OutOrStdout(),
				json:   asJSON,
				logger: logger,
			}
			return shutdown.RunWithGracefulShutdown(cmd.Context(), logger, shutdownTimeout, h.run, ctrl)
		},
	}

	startCmd.Flags().Bool(FlagTUI, false, "Enable terminal UI (default: auto-detect)")
	startCmd.Flags().Bool(FlagSkipHome, false, "Open the meditation screen directly")
	startCmd.Flags().Bool(FlagNoMouse, false, "Disable mouse tracking; use space to hold")
	startCmd.Flags().Bool(FlagAltScreen, true, "Use the alternate screen buffer")
	bindFlags(v, startCmd.Flags())
	startCmd.Flags().Bool(FlagJSON, false, "Print headless events as JSON lines")

	return startCmd
}

func newPromptsCmd() *cobra.Command {
	promptsCmd := &cobra.Command{
		Use:   "prompts",
		Short: "List the guidance prompts in rotation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool(FlagJSON)
			return printPrompts(cmd.OutOrStdout(), asJSON)
		},
	}
	promptsCmd.Flags().Bool(FlagJSON, false, "Output prompts as JSON")
	return promptsCmd
}

func printPrompts(w io.Writer, asJSON bool) error {
	prompts := meditation.Prompts()
	if asJSON {
		data, err := json.MarshalIndent(prompts, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal prompts: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	for i, p := range prompts {
		text := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render(p.Text)
		if _, err := fmt.Fprintf(w, "%d. %s (%s)\n", i+1, text, p.Color); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nEach prompt shows for %s; a session is %d seconds.\n",
		meditation.RotationInterval, meditation.TargetSeconds)
	return err
}

func newConfigCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			data, err := config.MarshalYAML(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newTraceCmd(v *viper.Viper) *cobra.Command {
	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "View recorded session events",
		Long: `View events from the session trace written by "hush start --trace".

The trace path comes from --trace, then paths.trace in the config, then
` + config.DefaultTracePath + `.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			path := cfg.Paths.Trace
			if path == "" {
				resolved, err := config.ResolvePaths(config.PathsConfig{Trace: config.DefaultTracePath}, config.FindProjectRoot(""))
				if err != nil {
					return fmt.Errorf("resolve trace path: %w", err)
				}
				path = resolved.Trace
			}

			if v.GetBool(FlagFollow) {
				return tailFollow(cmd.Context(), cmd.OutOrStdout(), path)
			}
			return tailLast(cmd.OutOrStdout(), path, v.GetInt(FlagCount))
		},
	}

	traceCmd.Flags().Bool(FlagFollow, false, "Follow the trace (like tail -f)")
	traceCmd.Flags().Int(FlagCount, 20, "Number of recent events to show (0 for all)")
	bindFlags(v, traceCmd.Flags())
	return traceCmd
}
