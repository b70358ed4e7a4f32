package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdeck/salesdeck/internal/app"
	"github.com/salesdeck/salesdeck/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize salesdeck in the current directory",
		Long: `Initialize salesdeck in the current directory.

This command creates the .salesdeck/ directory with:
- an empty board using the columns from [board].columns
- logs/: directory for log files

With [store].type = "git" the board is kept under refs/<namespace>/board
of the enclosing git repository instead of .salesdeck/board.json.

Running init again leaves an existing board untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitBoardUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitBoardInput{
				DataDir: c.Config.DataDir,
				Columns: c.AppConfig.BoardColumns(),
			})
			if err != nil {
				return err
			}

			if out.AlreadyInitialized {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "salesdeck already initialized in %s\n", out.DataDir)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized salesdeck in %s\n", out.DataDir)
			return nil
		},
	}
}
