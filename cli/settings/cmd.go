package settings

import (
	"fmt"
	"strings"

	"github.com/buger/goterm"
	"github.com/spf13/cobra"

	"github.com/nostromo/mother/internal/cli"
	"github.com/nostromo/mother/internal/settings"
)

// NewCmd instantiates and returns the settings command.
func NewCmd(manager *settings.Manager, edit settings.EditFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Edit the console settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			editor := settings.NewEditorCommand(cmd.Context(), manager, edit)
			editor.SetStdin(cmd.InOrStdin())
			editor.SetStdout(cmd.OutOrStdout())
			editor.SetStderr(cmd.ErrOrStderr())
			if err := editor.Run(); err != nil {
				return err
			}
			printSettings(manager.Stored())
			return nil
		},
	}
	cmd.AddCommand(newShowCmd(manager), newResetCmd(manager))
	return cmd
}

func newShowCmd(manager *settings.Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored settings",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printSettings(manager.Stored())
		},
	}
}

func newResetCmd(manager *settings.Manager) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !cli.QueryUser("Restore the default settings?") {
				return nil
			}
			if err := manager.Reset(cmd.Context()); err != nil {
				return err
			}
			cli.Notice("SETTINGS RESTORED TO DEFAULTS.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func printSettings(s settings.Settings) {
	cli.Title("SYSTEM CONFIGURATION")
	table := goterm.NewTable(0, 8, 2, ' ', 0)
	rows := [][2]string{
		{"PROVIDER", string(s.AIProvider)},
		{"OLLAMA URL", s.OllamaURL},
		{"OPENAI API KEY", mask(s.OpenAIAPIKey)},
		{"GOOGLE API KEY", mask(s.GoogleAPIKey)},
		{"ANTHROPIC API KEY", mask(s.AnthropicAPIKey)},
		{"MODEL", s.CurrentModel},
		{"COLOR THEME", string(s.ColorTheme)},
		{"SOUNDS", onOff(s.EnableSounds)},
		{"SCANLINES", onOff(s.ShowScanlines)},
	}
	for _, row := range rows {
		fmt.Fprintf(table, "%s\t%s\t\n", row[0], row[1])
	}
	cli.MotherChunk(table.String())
}

// mask keeps the last four characters of a key.
func mask(key string) string {
	if key == "" {
		return "-"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", 8) + key[len(key)-4:]
}

func onOff(value bool) string {
	if value {
		return "ON"
	}
	return "OFF"
}
