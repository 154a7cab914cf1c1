package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Search documents, open a result and read it with the query highlighted. The
outline follows your scroll position and shows how strongly each section
supports the query. Config changes are picked up while the UI runs.

Controls:
  Enter       - Search / Open
  Tab         - Cycle category filter
  s           - Toggle sort (relevance / score)
  ] / [       - Next / previous section
  /           - Refine the query in the reader
  c / p       - Copy citation / paragraph
  Esc         - Back
  ?           - Toggle help
  q           - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if svc == nil {
		return errors.New("reader services not configured")
	}

	ports := tui.NewPorts(svc.Search, svc.Reader, svc.Tasks)
	ports.Notifications = svc.Notifications
	ports.Export = svc.Export
	ports.Highlighter = svc.Highlighter
	ports.Settings = svc.Settings

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	app.WithContext(ctx)

	p := app.NewProgram()

	// Reload settings while the UI runs; the program serialises delivery.
	if svc.Watch != nil {
		go func() {
			err := svc.Watch(ctx, func(settings *domain.AppSettings, err error) {
				p.Send(messages.SettingsReloaded{Settings: settings, Err: err})
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				cliLog.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
