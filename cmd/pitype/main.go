// Package main provides the CLI entrypoint for pitype.
package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/pitype/internal/config"
	"github.com/verte-zerg/pitype/internal/model"
	"github.com/verte-zerg/pitype/internal/pi"
	"github.com/verte-zerg/pitype/internal/session"
	"github.com/verte-zerg/pitype/internal/tui"
)

const (
	defaultRowWidth = 25
	defaultFPS      = 60
	maxFPS          = 240
)

var (
	widgetRowWidth   int
	widgetFPS        int
	widgetShowDigits bool
	widgetLogFile    string
	widgetNoWatch    bool

	digitsRowWidth int
)

var digitsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pitype",
		Short:         "Type the digits of pi against the clock",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runWidgetCmd,
	}

	rootCmd.Flags().IntVar(&widgetRowWidth, "row-width", defaultRowWidth, "digits per input row (0 = single line)")
	rootCmd.Flags().IntVar(&widgetFPS, "fps", defaultFPS, "timer refreshes per second")
	rootCmd.Flags().BoolVar(&widgetShowDigits, "show-digits", false, "show the reference digits from the start")
	rootCmd.Flags().StringVar(&widgetLogFile, "log-file", "", "write runtime logs to this file")
	rootCmd.Flags().BoolVar(&widgetNoWatch, "no-watch", false, "do not reload the config file on change")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDigitsCmd())

	return rootCmd
}

func runWidgetCmd(cmd *cobra.Command, _ []string) error {
	cfgPath := config.DefaultConfigPath()
	fileCfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveConfig(cmd, fileCfg)
	if err := validateConfig(cfg); err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	program := tea.NewProgram(tui.NewModel(cfg, pi.Digits), tea.WithAltScreen())

	if !widgetNoWatch {
		watcher, err := config.Watch(cfgPath, func(fc config.FileConfig) {
			next := resolveConfig(cmd, fc)
			if err := validateConfig(next); err != nil {
				slog.Warn("ignoring config reload", "err", err)
				return
			}
			program.Send(tui.ConfigMsg{Config: next})
		}, func(err error) {
			slog.Warn("config watcher", "err", err)
		})
		if err != nil {
			slog.Warn("config hot reload disabled", "err", err)
		} else {
			defer func() {
				if cerr := watcher.Close(); cerr != nil {
					logErrf("failed to stop config watcher: %v\n", cerr)
				}
			}()
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "pitype")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newDigitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digits",
		Short: "Print the reference digits",
		Args:  cobra.NoArgs,
		RunE:  runDigitsCmd,
	}
	cmd.Flags().IntVar(&digitsRowWidth, "row-width", defaultRowWidth, "digits per row (0 = single line)")
	return cmd
}

func runDigitsCmd(cmd *cobra.Command, _ []string) error {
	if digitsRowWidth < 0 {
		return fmt.Errorf("--row-width must be >= 0")
	}
	width := digitsRowWidth
	styled := false
	if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		styled = true
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = clampRowWidth(width, cols-2)
		}
	}
	out := renderDigits(width, styled)
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// renderDigits lays the reference digits out under a "3." prefix.
func renderDigits(rowWidth int, styled bool) string {
	rows := strings.Split(session.FormatRows(pi.Digits, rowWidth), "\n")
	for i, row := range rows {
		prefix := "  "
		if i == 0 {
			prefix = "3."
		}
		if styled {
			row = digitsStyle.Render(row)
		}
		rows[i] = prefix + row
	}
	return strings.Join(rows, "\n")
}

func clampRowWidth(width, cols int) int {
	if cols <= 0 {
		return width
	}
	if width == 0 || width > cols {
		return cols
	}
	return width
}

func resolveConfig(cmd *cobra.Command, fileCfg config.FileConfig) model.Config {
	rowWidth := widgetRowWidth
	fps := widgetFPS
	showDigits := widgetShowDigits
	logFile := widgetLogFile
	applyIntConfig(cmd, "row-width", &rowWidth, fileCfg.Widget.RowWidth)
	applyIntConfig(cmd, "fps", &fps, fileCfg.Widget.FPS)
	applyBoolConfig(cmd, "show-digits", &showDigits, fileCfg.Widget.ShowDigits)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	return model.Config{
		RowWidth:   rowWidth,
		FPS:        fps,
		ShowDigits: showDigits,
		LogFile:    logFile,
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# pitype configuration
# Uncomment a value to enable it. CLI flags override config values.
# Changes are picked up while pitype is running.

[widget]
# row-width = %d          # Digits per input row (0 = single line)
# fps = %d                # Timer refreshes per second (1-%d)
# show-digits = false     # Show the reference digits from the start

[log]
# file = %q
`,
		defaultRowWidth,
		defaultFPS,
		maxFPS,
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.RowWidth < 0 {
		return fmt.Errorf("--row-width must be >= 0")
	}
	if cfg.FPS < 1 || cfg.FPS > maxFPS {
		return fmt.Errorf("--fps must be between 1 and %d", maxFPS)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
