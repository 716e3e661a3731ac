package models

import (
	"fmt"
	"strings"

	"github.com/buger/goterm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nostromo/mother/internal/cli"
	"github.com/nostromo/mother/internal/router"
)

// NewCmd instantiates and returns the models command.
func NewCmd(gateway router.Gateway, settings router.Settings) *cobra.Command {
	var opts struct {
		Select int
	}
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the models of the configured provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			current := settings.Current()
			models := gateway.FetchModels(ctx, current)
			if len(models) == 0 {
				cli.Failure(router.ReplyNoModels)
				return nil
			}

			if cmd.Flags().Changed("select") {
				if opts.Select < 0 || opts.Select >= len(models) {
					return errors.Errorf("selection %d out of range [0, %d)", opts.Select, len(models))
				}
				name := models[opts.Select].Name
				if err := settings.SetModel(ctx, name); err != nil {
					return errors.Wrap(err, "saving model selection")
				}
				cli.Notice("MODEL UPDATED: %s", strings.ToUpper(name))
				return nil
			}

			cli.Title("%s NEURAL MODELS", strings.ToUpper(string(current.AIProvider)))
			table := goterm.NewTable(0, 8, 2, ' ', 0)
			fmt.Fprintf(table, "INDEX\tNAME\tSIZE (GB)\tMODIFIED\t\n")
			for i, model := range models {
				name := model.Name
				if name == current.CurrentModel {
					name += " *"
				}
				modified := "-"
				if !model.ModifiedAt.IsZero() {
					modified = model.ModifiedAt.Format("2006-01-02")
				}
				fmt.Fprintf(table, "[%d]\t%s\t%s\t%s\t\n", i, name, model.SizeGB(), modified)
			}
			cli.MotherChunk(table.String())
			return nil
		},
	}
	cmd.Flags().IntVarP(&opts.Select, "select", "s", 0, "Make the model at this index the current model")
	return cmd
}
