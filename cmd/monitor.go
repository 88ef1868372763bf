// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 AeroAPI Project

package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Interactive live view of the bridged state",
	Long: `Run the bridge with a terminal UI instead of plain logs.

The left pane shows the normalized state groups as they arrive from the
simulator; the input line at the bottom sends write commands upstream,
e.g.:

  GEAR_HANDLE true
  throttle 0.75
  PARKING_BRAKE false

Downstream clients can connect while the monitor is running.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	// Logs go to the TUI event pane, not stderr.
	p, err := newPipeline(func(string, ...interface{}) {})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- p.run(ctx) }()

	program := tea.NewProgram(initialMonitorModel(p), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}

	cancel()
	return <-runErr
}
