package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/salesdeck/salesdeck/internal/app"
	"github.com/salesdeck/salesdeck/internal/domain"
	"github.com/salesdeck/salesdeck/internal/usecase"
)

// newBoardCommand creates the board command.
func newBoardCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the pipeline board",
		Long: `Show every column of the pipeline board with its cards in order.

Examples:
  # Print the board as a table
  salesdeck board

  # Dump the board for scripting
  salesdeck board --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowBoardUseCase().Execute(cmd.Context(), usecase.ShowBoardInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if done, err := writeStructured(w, format, out.Board); done {
				return err
			}
			printBoard(w, out.Board)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table, json or yaml")

	cmd.AddCommand(newBoardMovesCommand(c))
	cmd.AddCommand(newBoardHistoryCommand(c))

	return cmd
}

// printBoard prints the board as a table, one row per card.
func printBoard(w io.Writer, board domain.Board) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "COLUMN\t#\tID\tNAME\tCONTACT\tNEXT ACTION")
	for _, col := range board.Columns {
		header := fmt.Sprintf("%s (%d)", col.Title, len(col.Cards))
		if len(col.Cards) == 0 {
			_, _ = fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t-\n", header)
			continue
		}
		for i, card := range col.Cards {
			label := ""
			if i == 0 {
				label = header
			}
			_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n",
				label, i, card.ID, orDash(card.Fields.Name), orDash(card.Fields.Contact), orDash(card.Fields.NextAction))
		}
	}
}

// newBoardMovesCommand creates the board moves subcommand.
func newBoardMovesCommand(c *app.Container) *cobra.Command {
	var opts struct {
		CardID string
		Format string
		Limit  int
	}

	cmd := &cobra.Command{
		Use:   "moves",
		Short: "Show recorded card moves",
		Long:  `Show card moves recorded in .salesdeck/logs/moves.log, oldest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListMovesUseCase().Execute(cmd.Context(), usecase.ListMovesInput{
				CardID: opts.CardID,
				Limit:  opts.Limit,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if done, err := writeStructured(w, opts.Format, out.Moves); done {
				return err
			}

			tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
			defer func() { _ = tw.Flush() }()
			_, _ = fmt.Fprintln(tw, "TIME\tCARD\tFROM\tTO")
			for _, e := range out.Moves {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s[%d]\t%s[%d]\n",
					e.Time.Local().Format("2006-01-02 15:04:05"), e.CardID,
					e.SourceColumnID, e.SourceIndex, e.DestColumnID, e.DestIndex)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.CardID, "card", "", "Only show moves of this card")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Number of most recent moves to show (0 = all)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", formatTable, "Output format: table, json or yaml")

	return cmd
}

// newBoardHistoryCommand creates the board history subcommand.
func newBoardHistoryCommand(c *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored board revisions",
		Long: `Show the revisions of the board kept by the git store, newest first.

Requires [store].type = "git".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.BoardHistoryUseCase().Execute(cmd.Context(), usecase.BoardHistoryInput{Limit: limit})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			defer func() { _ = tw.Flush() }()
			_, _ = fmt.Fprintln(tw, "COMMIT\tTIME\tMESSAGE")
			for _, rev := range out.Revisions {
				hash := rev.Hash
				if len(hash) > 8 {
					hash = hash[:8]
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", hash, rev.Time.Local().Format("2006-01-02 15:04:05"), strings.TrimSpace(rev.Message))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of revisions to show (0 = all)")

	return cmd
}
