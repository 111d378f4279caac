// galacticcic is the Control CLI for the collector daemon, the
// embedded metrics store, and the read-only dashboard: start, stop,
// restart, status, dashboard, collect, db, logs, install, version.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/spacetrucker2196/galacticcic/internal/config"
	"github.com/spacetrucker2196/galacticcic/internal/dashboard"
	"github.com/spacetrucker2196/galacticcic/internal/installer"
	"github.com/spacetrucker2196/galacticcic/internal/output"
	"github.com/spacetrucker2196/galacticcic/internal/render"
	"github.com/spacetrucker2196/galacticcic/internal/scheduler"
	"github.com/spacetrucker2196/galacticcic/internal/store"
	"github.com/spacetrucker2196/galacticcic/internal/version"
)

// exitError carries the exit code spec.md §4.9 assigns to each error
// category: 1 operational failure, 2 misuse, 3 precondition failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func operationalErr(err error) error  { return &exitError{code: 1, err: err} }
func misuseErr(err error) error       { return &exitError{code: 2, err: err} }
func preconditionErr(err error) error { return &exitError{code: 3, err: err} }

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "error:", ee.err)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "galacticcic",
		Short:   "Single-host ops dashboard for an OpenClaw agent fleet",
		Version: version.Version,
	}

	root.AddCommand(
		newStartCmd(),
		newStopCmd(),
		newRestartCmd(),
		newStatusCmd(),
		newDashboardCmd(),
		newCollectCmd(),
		newDBCmd(),
		newLogsCmd(),
		newInstallCmd(),
		newVersionCmd(),
	)
	return root
}

func newStartCmd() *cobra.Command {
	var foreground bool
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the collector daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !foreground {
				if err := installer.SystemctlUser("start"); err != nil {
					return operationalErr(fmt.Errorf("start daemon via systemctl: %w", err))
				}
				return nil
			}
			return runForeground(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&foreground, "foreground", false, "run the daemon directly instead of via systemctl --user")
	return cmd
}

func runForeground(ctx context.Context) error {
	cfg, _, err := config.LoadProcessConfig()
	if err != nil {
		return operationalErr(fmt.Errorf("load process config: %w", err))
	}

	s, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return preconditionErr(fmt.Errorf("open metrics store: %w", err))
	}
	defer s.Close()

	log := scheduler.NewFileLogger(cfg.LogPath, scheduler.ParseLevel(cfg.LogLevel))
	deps := scheduler.BuildDeps(cfg, s)
	sched := scheduler.New(deps, scheduler.DefaultCollectors(cfg), log)
	return sched.Run(ctx)
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the collector daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := installer.SystemctlUser("stop"); err != nil {
				return operationalErr(fmt.Errorf("stop daemon via systemctl: %w", err))
			}
			return nil
		},
	}
}

func newRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart the collector daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := installer.SystemctlUser("restart"); err != nil {
				return operationalErr(fmt.Errorf("restart daemon via systemctl: %w", err))
			}
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the collector daemon's service status",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := installer.SystemctlUser("status"); err != nil {
				return operationalErr(fmt.Errorf("query daemon status via systemctl: %w", err))
			}
			return nil
		},
	}
}

func newDashboardCmd() *cobra.Command {
	var refresh time.Duration
	var width int
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Run the read-only terminal dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.LoadProcessConfig()
			if err != nil {
				return operationalErr(fmt.Errorf("load process config: %w", err))
			}
			s, err := store.Open(cmd.Context(), cfg.DBPath)
			if err != nil {
				return preconditionErr(fmt.Errorf("open metrics store: %w", err))
			}
			defer s.Close()

			configPath := mustDashboardConfigPath()
			dashCfg, err := config.LoadDashboardConfig(configPath)
			if err != nil {
				return operationalErr(fmt.Errorf("load dashboard config: %w", err))
			}
			if !cmd.Flags().Changed("refresh") {
				refresh = time.Duration(dashCfg.RefreshInterval) * time.Second
			}

			d := &dashboard.Dashboard{
				Store:           s,
				Renderer:        render.PlainRenderer{W: os.Stdout},
				RefreshInterval: refresh,
				Input:           bufio.NewReader(os.Stdin),
				Theme:           render.ThemeByName(dashCfg.Theme),
				Layout:          render.LayoutForWidth(width),
			}
			finalTheme, runErr := d.Run(cmd.Context())

			dashCfg.Theme = finalTheme.Name
			if configPath != "" {
				if err := config.SaveDashboardConfig(configPath, dashCfg); err != nil {
					return operationalErr(fmt.Errorf("save dashboard config: %w", err))
				}
			}

			if runErr != nil {
				return operationalErr(fmt.Errorf("run dashboard: %w", runErr))
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&refresh, "refresh", 2*time.Second, "refresh interval (minimum 1s)")
	cmd.Flags().IntVar(&width, "width", 120, "terminal width, for layout breakpoint selection")
	return cmd
}

func mustDashboardConfigPath() string {
	path, err := config.DashboardConfigPath()
	if err != nil {
		return ""
	}
	return path
}

func newCollectCmd() *cobra.Command {
	var outputPath string
	var quiet bool
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Run one cycle of all tiers synchronously",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.LoadProcessConfig()
			if err != nil {
				return operationalErr(fmt.Errorf("load process config: %w", err))
			}
			s, err := store.Open(cmd.Context(), cfg.DBPath)
			if err != nil {
				return preconditionErr(fmt.Errorf("open metrics store: %w", err))
			}
			defer s.Close()

			deps := scheduler.BuildDeps(cfg, s)
			results := scheduler.RunOnce(cmd.Context(), deps, scheduler.DefaultCollectors(cfg), output.NewProgress(!quiet))
			return output.WriteJSON(results, outputPath)
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "-", "output file path (- for stdout)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
	return cmd
}

func newDBCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "db",
		Short: "Inspect or maintain the metrics store",
	}
	root.AddCommand(newDBStatsCmd(), newDBPruneCmd(), newDBPathCmd())
	return root
}

func openStoreForDB(ctx context.Context) (*store.Store, error) {
	cfg, _, err := config.LoadProcessConfig()
	if err != nil {
		return nil, operationalErr(fmt.Errorf("load process config: %w", err))
	}
	s, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, preconditionErr(fmt.Errorf("open metrics store: %w", err))
	}
	return s, nil
}

func newDBStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print row-count and schema-version summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStoreForDB(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			stats, err := s.Stats(cmd.Context())
			if err != nil {
				return operationalErr(fmt.Errorf("query stats: %w", err))
			}
			return output.WriteJSON(stats, "-")
		},
	}
}

func newDBPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete rows past their retention window or cache TTL",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStoreForDB(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := s.Prune(cmd.Context(), float64(time.Now().Unix()))
			if err != nil {
				return operationalErr(fmt.Errorf("prune store: %w", err))
			}
			return output.WriteJSON(result, "-")
		},
	}
}

func newDBPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the metrics database file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.LoadProcessConfig()
			if err != nil {
				return operationalErr(fmt.Errorf("load process config: %w", err))
			}
			fmt.Println(cfg.DBPath)
			return nil
		},
	}
}

func newLogsCmd() *cobra.Command {
	var follow bool
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Tail the collector daemon's structured run log",
		RunE: func(cmd *cobra.Command, args []string) error {
			if lines < 0 {
				return misuseErr(fmt.Errorf("--lines must not be negative, got %d", lines))
			}
			cfg, _, err := config.LoadProcessConfig()
			if err != nil {
				return operationalErr(fmt.Errorf("load process config: %w", err))
			}
			return tailLog(cmd.Context(), cfg.LogPath, lines, follow)
		},
	}
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep reading as the file grows")
	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "number of trailing lines to print")
	return cmd
}

func tailLog(ctx context.Context, path string, n int, follow bool) error {
	f, err := os.Open(path)
	if err != nil {
		return operationalErr(fmt.Errorf("open log file: %w", err))
	}
	defer f.Close()

	lines, err := lastLines(f, n)
	if err != nil {
		return operationalErr(fmt.Errorf("read log file: %w", err))
	}
	for _, l := range lines {
		fmt.Println(l)
	}
	if !follow {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(500 * time.Millisecond):
			line, err := bufio.NewReader(f).ReadString('\n')
			if err == nil {
				fmt.Print(line)
			}
		}
	}
}

// lastLines reads at most n trailing lines from f, which must be
// opened for reading from the start.
func lastLines(f *os.File, n int) ([]string, error) {
	scanner := bufio.NewScanner(f)
	var buf []string
	for scanner.Scan() {
		buf = append(buf, scanner.Text())
		if len(buf) > n {
			buf = buf[1:]
		}
	}
	return buf, scanner.Err()
}

func newInstallCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Emit a systemd --user service unit for the collector daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := config.LoadProcessConfig()
			if err != nil {
				return operationalErr(fmt.Errorf("load process config: %w", err))
			}
			binPath, err := os.Executable()
			if err != nil {
				return operationalErr(fmt.Errorf("resolve executable path: %w", err))
			}

			inst := &installer.Installer{DryRun: dryRun}
			_, err = inst.Run(installer.UnitParams{
				BinaryPath: binPath,
				DBPath:     cfg.DBPath,
				LogPath:    cfg.LogPath,
			})
			if err != nil {
				return operationalErr(fmt.Errorf("write unit file: %w", err))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the unit file instead of writing it")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the galacticcic version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version.Version)
			return nil
		},
	}
}

