package wiki

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nostromo/mother/internal/cli"
	"github.com/nostromo/mother/internal/wiki"
)

// NewCmd instantiates and returns the wiki command.
func NewCmd(store *wiki.Store) *cobra.Command {
	var opts struct {
		Franchise string
		Long      bool
	}
	cmd := &cobra.Command{
		Use:   "wiki [kind] [query...]",
		Short: "Query the reference database",
		Long:  "Without arguments, prints the database summary. A leading kind (planets, aliens...) restricts the search to that kind.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cli.Title("REFERENCE DATABASE")
				printText(wiki.FormatHelp(store.Counts()))
				return nil
			}

			var records []wiki.Record
			title := "search results"
			if kind, ok := wiki.ParseKind(args[0]); ok {
				title = kind.Plural()
				for _, entry := range store.SearchAll(strings.Join(args[1:], " "), wiki.Filters{Kind: kind, Franchise: opts.Franchise}) {
					records = append(records, entry.Record)
				}
			} else {
				for _, entry := range store.SearchAll(strings.Join(args, " "), wiki.Filters{Franchise: opts.Franchise}) {
					records = append(records, entry.Record)
				}
			}
			return printRecords(title, records, opts.Long)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			var completions []string
			for _, kind := range wiki.Kinds {
				if strings.HasPrefix(kind.Plural(), toComplete) {
					completions = append(completions, kind.Plural())
				}
			}
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
	}
	cmd.Flags().StringVarP(&opts.Franchise, "franchise", "f", "", "Only show records of this franchise (e.g. 'Alien: Earth')")
	cmd.Flags().BoolVarP(&opts.Long, "long", "l", false, "Print the full record of every result")
	return cmd
}

func printRecords(title string, records []wiki.Record, long bool) error {
	if len(records) == 0 {
		cli.Notice("NO DATA FOUND.")
		return nil
	}
	if len(records) > 1 && !long {
		printText(wiki.FormatListing(title, records))
		return nil
	}
	for i, record := range records {
		if i > 0 {
			cli.Separator()
		}
		text, err := wiki.FormatLong(record)
		if err != nil {
			return err
		}
		printText(text)
	}
	return nil
}

func printText(text string) {
	for _, line := range strings.Split(text, "\n") {
		cli.MotherChunk(line + "\n")
	}
}
