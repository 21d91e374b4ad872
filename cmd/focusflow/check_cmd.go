package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single focus check and print the verdict",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg, os.Stderr)

	s := openStore(cfg)
	defer s.Close()

	mon, _, err := buildMonitor(cfg, s)
	if err != nil {
		return err
	}

	result := mon.RunCheck(context.Background())
	for _, line := range result.Log {
		fmt.Println(line)
	}
	if result.Escalated {
		fmt.Println("🚨 You've been off track for a while. Time to refocus!")
	}
	return nil
}
