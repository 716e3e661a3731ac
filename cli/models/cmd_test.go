package models

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/nostromo/mother/internal/cli"
	"github.com/nostromo/mother/internal/provider"
	"github.com/nostromo/mother/internal/router"
	"github.com/nostromo/mother/internal/settings"
)

type fakeGateway struct {
	models []provider.Model
}

func (fakeGateway) Send(context.Context, string, settings.Settings) (provider.Result, error) {
	return provider.Result{}, nil
}

func (g fakeGateway) FetchModels(context.Context, settings.Settings) []provider.Model { return g.models }

type fakeSettings struct {
	settings settings.Settings
}

func (s *fakeSettings) Current() settings.Settings { return s.settings }

func (s *fakeSettings) SetModel(_ context.Context, model string) error {
	s.settings.CurrentModel = model
	return nil
}

var models = []provider.Model{
	{Name: "llama3.1:8b", Size: 4_920_753_328, ModifiedAt: time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)},
	{Name: "mistral:7b", Size: 4_113_301_824},
}

func run(t *testing.T, gateway fakeGateway, current *fakeSettings, args ...string) (string, error) {
	t.Helper()
	buffer := &bytes.Buffer{}
	previousOutput, previousNoColor := cli.Output, color.NoColor
	cli.Output, color.NoColor = buffer, true
	t.Cleanup(func() { cli.Output, color.NoColor = previousOutput, previousNoColor })

	cmd := NewCmd(gateway, current)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(context.Background())
	return buffer.String(), err
}

func TestList(t *testing.T) {
	output, err := run(t, fakeGateway{models: models}, &fakeSettings{settings: settings.Default()})
	require.NoError(t, err)
	require.Contains(t, output, "OLLAMA NEURAL MODELS")
	require.Regexp(t, `\[0\]\s+llama3\.1:8b \*\s+4\.92\s+2024-08-01`, output)
	require.Regexp(t, `\[1\]\s+mistral:7b\s+4\.11\s+-`, output)
}

func TestSelect(t *testing.T) {
	current := &fakeSettings{settings: settings.Default()}
	output, err := run(t, fakeGateway{models: models}, current, "--select", "1")
	require.NoError(t, err)
	require.Equal(t, "mistral:7b", current.settings.CurrentModel)
	require.Contains(t, output, "MODEL UPDATED: MISTRAL:7B")

	_, err = run(t, fakeGateway{models: models}, current, "-s", "2")
	require.Error(t, err)
	require.Equal(t, "mistral:7b", current.settings.CurrentModel)
}

func TestNoModels(t *testing.T) {
	output, err := run(t, fakeGateway{}, &fakeSettings{settings: settings.Default()})
	require.NoError(t, err)
	require.Contains(t, output, router.ReplyNoModels)
}
