package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nostromo/mother/cli/line"
	"github.com/nostromo/mother/cli/models"
	settingscli "github.com/nostromo/mother/cli/settings"
	"github.com/nostromo/mother/cli/terminal"
	wikicli "github.com/nostromo/mother/cli/wiki"
	"github.com/nostromo/mother/internal/cli"
	"github.com/nostromo/mother/internal/configuration"
	"github.com/nostromo/mother/internal/console"
	"github.com/nostromo/mother/internal/debug"
	"github.com/nostromo/mother/internal/file"
	"github.com/nostromo/mother/internal/provider"
	"github.com/nostromo/mother/internal/router"
	"github.com/nostromo/mother/internal/settings"
	"github.com/nostromo/mother/internal/sound"
	"github.com/nostromo/mother/internal/typewriter"
	"github.com/nostromo/mother/internal/wiki"
	"github.com/nostromo/mother/server"
)

const (
	configFilepath  = "~/.config/mother/config.json"
	historyFilepath = "~/.config/mother/history"
	envFilepath     = ".env"
)

var rootCmd = &cobra.Command{
	Use:           "mother",
	Short:         "MU/TH/UR 6000 terminal interface",
	Version:       "1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	cobra.CheckErr(run())
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := configuration.Parse(configFilepath)
	if err != nil {
		return err
	}
	if err := configuration.LoadEnvironment(envFilepath); err != nil {
		return err
	}
	debug.SetLogFile(config.LogFile)
	logger := debug.GetLogger()
	defer logger.Sync()

	// Create store
	store, err := settings.OpenSQLiteStore(config.Database)
	if err != nil {
		logger.Error("opening settings store", zap.Error(err))
		return err
	}
	// Ensure store is closed when the program exits normally
	defer store.Close()

	manager, err := settings.NewManager(ctx, store, os.Getenv)
	if err != nil {
		logger.Error("loading settings", zap.Error(err))
		return err
	}
	gateway := provider.New(provider.Config{
		Timeout: config.RequestTimeoutDuration(),
		Logger:  logger.Named("provider"),
	})
	records, err := wiki.NewSeededStore()
	if err != nil {
		return err
	}
	executor := router.New(gateway, manager, records, config.Terminal.ReplyLatency(), logger.Named("router"))

	newConsole := func() *console.Console {
		return console.New(executor, manager, console.SystemClock{}, console.Config{
			Pacing: typewriter.Pacing{
				Standard:        config.Terminal.RevealInterval(),
				Acknowledgement: config.Terminal.AcknowledgementInterval(),
				Boot:            config.Terminal.BootRevealInterval(),
			},
			BootItems:    typewriter.BootSequence,
			BootInterval: config.Terminal.BootInterval(),
			Logger:       logger.Named("console"),
		})
	}

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return terminal.Run(cmd.Context(), terminal.Options{
			Console: newConsole(),
			Manager: manager,
			Edit:    settings.Edit,
			Player:  sound.NewBell(os.Stderr),
			Logger:  logger.Named("terminal"),
		})
	}
	rootCmd.AddCommand(newLineCmd(newConsole))
	rootCmd.AddCommand(wikicli.NewCmd(records))
	rootCmd.AddCommand(models.NewCmd(gateway, manager))
	rootCmd.AddCommand(settingscli.NewCmd(manager, settings.Edit))
	rootCmd.AddCommand(server.NewServeCmd(records, newConsole, config.Server.Address, logger.Named("server")))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("executing command", zap.Error(err))
		return err
	}
	return nil
}

func newLineCmd(newConsole server.ConsoleFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "line",
		Short: "Run the console in line mode, reading from a prompt or a pipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := console.NewRunner(newConsole(), console.SystemClock{})
			player := sound.NewBell(os.Stderr)
			if !readline.IsTerminal(int(os.Stdin.Fd())) {
				reader, err := line.NewStdinReader(cmd.InOrStdin())
				if err != nil {
					return err
				}
				return line.Run(cmd.Context(), runner, reader, player)
			}

			historyFile, err := file.ExpandPath(historyFilepath)
			if err != nil {
				return err
			}
			prompt, err := cli.NewPrompt(historyFile)
			if err != nil {
				return err
			}
			cli.Output = prompt.Stdout()
			return line.Run(cmd.Context(), runner, line.PromptReader{Prompt: prompt}, player)
		},
	}
}
