package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/salesdeck/salesdeck/internal/app"
	"github.com/salesdeck/salesdeck/internal/domain"
	"github.com/salesdeck/salesdeck/internal/usecase"
)

// newPageCommand creates the page command.
func newPageCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Manage generated landing pages",
		Long: `Manage landing pages stored in the pages database.

Page documents are stored as JSON. Editing a page only changes the fields
you name; every other field of the stored document is kept as is.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newPageListCommand(c))
	cmd.AddCommand(newPageShowCommand(c))
	cmd.AddCommand(newPageImportCommand(c))
	cmd.AddCommand(newPageExportCommand(c))
	cmd.AddCommand(newPageSaveCommand(c))
	cmd.AddCommand(newPageRmCommand(c))

	return cmd
}

// newPageListCommand creates the page list subcommand.
func newPageListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Status string
		Tag    string
		Format string
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List pages, most recently updated first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListPagesUseCase().Execute(cmd.Context(), usecase.ListPagesInput{
				Status: domain.PageStatus(opts.Status),
				Tag:    opts.Tag,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if done, err := writeStructured(w, opts.Format, out.Pages); done {
				return err
			}
			printPages(w, out.Pages)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "Only pages with this status (draft, published, archived)")
	cmd.Flags().StringVar(&opts.Tag, "tag", "", "Only pages with this tag")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", formatTable, "Output format: table, json or yaml")

	return cmd
}

// printPages prints pages as a table.
func printPages(w io.Writer, pages []*domain.Page) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "SLUG\tSTATUS\tWORDS\tCOMPANY\tUPDATED\tTITLE")
	for _, p := range pages {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			p.Slug, p.Status.Display(), p.WordCount, p.CompanyName, orDash(p.UpdatedAt), p.Title)
	}
}

// newPageShowCommand creates the page show subcommand.
func newPageShowCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Show a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ShowPageUseCase().Execute(cmd.Context(), usecase.ShowPageInput{Slug: args[0]})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if done, err := writeStructured(w, format, out.Page); done {
				return err
			}
			printPage(w, out.Page)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format: table, json or yaml")

	return cmd
}

// printPage prints a page summary followed by its extracted text.
func printPage(w io.Writer, p *domain.Page) {
	tags := "-"
	if len(p.Tags) > 0 {
		tags = strings.Join(p.Tags, ", ")
	}
	_, _ = fmt.Fprintf(w, "# %s\n\n", p.Title)
	_, _ = fmt.Fprintf(w, "Slug: %s\n", p.Slug)
	_, _ = fmt.Fprintf(w, "ID: %d\n", p.ID)
	_, _ = fmt.Fprintf(w, "Status: %s\n", p.Status.Display())
	_, _ = fmt.Fprintf(w, "Tags: %s\n", tags)
	_, _ = fmt.Fprintf(w, "Company: %s\n", p.CompanyName)
	_, _ = fmt.Fprintf(w, "Person: %s\n", p.PersonName)
	_, _ = fmt.Fprintf(w, "Words: %d\n", p.WordCount)
	_, _ = fmt.Fprintf(w, "Created: %s\n", orDash(p.CreatedAt))
	_, _ = fmt.Fprintf(w, "Updated: %s\n", orDash(p.UpdatedAt))
	if p.Content != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", p.Content)
	}
}

// newPageImportCommand creates the page import subcommand.
func newPageImportCommand(c *app.Container) *cobra.Command {
	var slug string

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import a page from a JSON document",
		Long: `Import a page from a JSON document.

The document is either a stored row ({"slug": ..., "data": {...}}) as written
by 'salesdeck page export', or a bare page body. Without a slug in the
document or --slug, one is derived from the page title.

Examples:
  salesdeck page import acme.json
  generate-page | salesdeck page import - --slug acme`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}

			out, err := c.ImportDocumentUseCase().Execute(cmd.Context(), usecase.ImportDocumentInput{
				Data: data,
				Slug: slug,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported page %s\n", out.Page.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "Slug to store the page under")

	return cmd
}

// newPageExportCommand creates the page export subcommand.
func newPageExportCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <slug>",
		Short: "Write the stored row of a page as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ExportPageUseCase().Execute(cmd.Context(), usecase.ExportPageInput{Slug: args[0]})
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(out.Row, "", "  ")
			if err != nil {
				return fmt.Errorf("encode page: %w", err)
			}
			data = append(data, '\n')

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported page %s to %s\n", args[0], output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

// newPageSaveCommand creates the page save subcommand.
func newPageSaveCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Status      string
		Thumbnail   string
		Prompt      string
		CompanyName string
		PersonName  string
		Tags        []string
		WordCount   int
		ClearTags   bool
	}

	cmd := &cobra.Command{
		Use:   "save <slug>",
		Short: "Edit fields of a stored page",
		Long: `Edit fields of a stored page. Only the flags you pass are changed.

Examples:
  salesdeck page save acme --status published
  salesdeck page save acme --tag b2b --tag enterprise
  salesdeck page save acme --clear-tags`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			in := usecase.SavePageInput{Slug: args[0]}
			if flags.Changed("title") {
				in.Title = &opts.Title
			}
			if flags.Changed("status") {
				status := domain.PageStatus(opts.Status)
				in.Status = &status
			}
			if flags.Changed("thumbnail") {
				in.Thumbnail = &opts.Thumbnail
			}
			if flags.Changed("prompt") {
				in.Prompt = &opts.Prompt
			}
			if flags.Changed("company") {
				in.CompanyName = &opts.CompanyName
			}
			if flags.Changed("person") {
				in.PersonName = &opts.PersonName
			}
			if flags.Changed("word-count") {
				in.WordCount = &opts.WordCount
			}
			switch {
			case opts.ClearTags:
				in.Tags = []string{}
			case flags.Changed("tag"):
				in.Tags = opts.Tags
			}

			out, err := c.SavePageUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved page %s\n", out.Page.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Page title")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Page status (draft, published, archived)")
	cmd.Flags().StringVar(&opts.Thumbnail, "thumbnail", "", "Thumbnail URL")
	cmd.Flags().StringVar(&opts.Prompt, "prompt", "", "Generation prompt")
	cmd.Flags().StringVar(&opts.CompanyName, "company", "", "Company name")
	cmd.Flags().StringVar(&opts.PersonName, "person", "", "Person name")
	cmd.Flags().IntVar(&opts.WordCount, "word-count", 0, "Word count")
	cmd.Flags().StringArrayVar(&opts.Tags, "tag", nil, "Tags, replacing the current ones (can specify multiple)")
	cmd.Flags().BoolVar(&opts.ClearTags, "clear-tags", false, "Remove all tags")
	cmd.MarkFlagsMutuallyExclusive("tag", "clear-tags")

	return cmd
}

// newPageRmCommand creates the page rm subcommand.
func newPageRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <slug>",
		Short: "Delete a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.DeletePageUseCase().Execute(cmd.Context(), usecase.DeletePageInput{Slug: args[0]}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted page %s\n", args[0])
			return nil
		},
	}
}
