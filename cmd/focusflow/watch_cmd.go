package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sadopc/focusflow/internal/monitor"
	"github.com/sadopc/focusflow/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Run the focus monitor headless until interrupted",
	Long: `Watch a workspace and run periodic focus checks without the TUI.
Verdicts are printed to stdout; stop with Ctrl-C. The path argument
overrides the configured watch path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Monitor.WatchPath = args[0]
	}
	setupLogging(cfg, os.Stderr)

	s := openStore(cfg)
	defer s.Close()

	mon, activity, err := buildMonitor(cfg, s)
	if err != nil {
		return err
	}

	if !cfg.Monitor.TextMode {
		w := watcher.New(activity, cfg.Monitor.WatchPath)
		if err := w.Start(); err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		defer w.Stop()
		fmt.Printf("Watching %s, checking every %s. Ctrl-C to stop.\n",
			cfg.Monitor.WatchPath, checkInterval(cfg))
	} else {
		fmt.Printf("Text mode, checking every %s. Ctrl-C to stop.\n", checkInterval(cfg))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := monitor.NewScheduler(mon, checkInterval(cfg), printCheckResult)
	sched.Start(ctx)

	<-ctx.Done()
	sched.Stop()
	fmt.Println("\nStopped.")
	return nil
}

func printCheckResult(result monitor.CheckResult) {
	if len(result.Log) == 0 {
		return
	}
	fmt.Println(result.Log[len(result.Log)-1])
	if result.Escalated {
		fmt.Println("🚨 You've been off track for a while. Time to refocus!")
	}
}
