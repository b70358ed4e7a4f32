// Package cli provides the command-line interface for salesdeck.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdeck/salesdeck/internal/app"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupBoard = "board"
	groupPages = "pages"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for salesdeck.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "salesdeck",
		Short: "Sales pipeline board and landing page manager",
		Long: `salesdeck keeps a kanban board of leads moving through the sales
pipeline and a store of generated landing pages for those leads.

Data lives in the .salesdeck/ directory of the current project.
Run without arguments to open the interactive board.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupBoard, Title: "Board Commands:"},
		&cobra.Group{ID: groupPages, Title: "Page Commands:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupSetup

	// Board commands
	boardCmd := newBoardCommand(c)
	boardCmd.GroupID = groupBoard

	cardCmd := newCardCommand(c)
	cardCmd.GroupID = groupBoard

	columnCmd := newColumnCommand(c)
	columnCmd.GroupID = groupBoard

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupBoard

	// Page commands
	pageCmd := newPageCommand(c)
	pageCmd.GroupID = groupPages

	root.AddCommand(
		initCmd,
		configCmd,
		serveCmd,
		boardCmd,
		cardCmd,
		columnCmd,
		tuiCmd,
		pageCmd,
	)

	return root
}
