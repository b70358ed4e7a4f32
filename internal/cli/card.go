package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/salesdeck/salesdeck/internal/app"
	"github.com/salesdeck/salesdeck/internal/usecase"
)

// newCardCommand creates the card command.
func newCardCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Add and move cards",
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newCardAddCommand(c))
	cmd.AddCommand(newCardMoveCommand(c))

	return cmd
}

// newCardAddCommand creates the card add subcommand.
func newCardAddCommand(c *app.Container) *cobra.Command {
	var in usecase.AddCardInput

	cmd := &cobra.Command{
		Use:   "add <column>",
		Short: "Add a card to the end of a column",
		Long: `Add a new lead card to the end of a column.

Cards created without --name or --next-action get placeholder values.

Examples:
  salesdeck card add new --name "Acme Inc" --email ceo@acme.test
  salesdeck card add meeting --name "Globex" --next-action "Send deck"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.ColumnID = args[0]
			out, err := c.AddCardUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added card %s to %s\n", out.Card.ID, out.Card.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Lead name")
	cmd.Flags().StringVar(&in.Contact, "contact", "", "Contact person")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&in.NextAction, "next-action", "", "Next step for this lead")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Free-form notes")

	return cmd
}

// newCardMoveCommand creates the card move subcommand.
func newCardMoveCommand(c *app.Container) *cobra.Command {
	var opts struct {
		From     string
		To       string
		Index    int
		Position int
	}

	cmd := &cobra.Command{
		Use:   "move [card-id]",
		Short: "Move a card within or across columns",
		Long: `Move a card to a position in a column.

The card is identified either by its id or by --from and --index.
The destination position is clamped to the destination column, so a large
--position appends the card.

Examples:
  # Move a card to the top of "contacted"
  salesdeck card move 3f2a... --to contacted --position 0

  # Move the second card of "new" to the end of "lost"
  salesdeck card move --from new --index 1 --to lost --position 999`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.MoveCardInput{
				SourceColumnID: opts.From,
				SourceIndex:    opts.Index,
				DestColumnID:   opts.To,
				DestIndex:      opts.Position,
			}
			if len(args) == 1 {
				in.CardID = args[0]
			} else if opts.From == "" {
				return fmt.Errorf("either a card id or --from is required")
			}
			if !cmd.Flags().Changed("position") {
				in.DestIndex = math.MaxInt
			}

			out, err := c.MoveCardUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			e := out.Event
			if e.NoOp {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Card %s is already at %s[%d]\n", e.CardID, e.DestColumnID, e.DestIndex)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved card %s: %s[%d] -> %s[%d]\n",
				e.CardID, e.SourceColumnID, e.SourceIndex, e.DestColumnID, e.DestIndex)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "Source column (when no card id is given)")
	cmd.Flags().IntVar(&opts.Index, "index", 0, "Position of the card in the source column")
	cmd.Flags().StringVar(&opts.To, "to", "", "Destination column (required)")
	cmd.Flags().IntVar(&opts.Position, "position", 0, "Position in the destination column (default: end)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// newColumnCommand creates the column command.
func newColumnCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Add and remove board columns",
		// No RunE: shows subcommand list when called without arguments
	}

	var title string
	addCmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Append a column to the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.AddColumnUseCase().Execute(cmd.Context(), usecase.AddColumnInput{ID: args[0], Title: title})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added column %s\n", args[0])
			return nil
		},
	}
	addCmd.Flags().StringVar(&title, "title", "", "Column title (default: id)")

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an empty column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.RemoveColumnUseCase().Execute(cmd.Context(), usecase.RemoveColumnInput{ID: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed column %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(addCmd, rmCmd)
	return cmd
}
