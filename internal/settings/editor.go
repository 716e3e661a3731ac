package settings

import (
	"context"
	"io"
	"os"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/pkg/errors"
)

// EditFunc asks the user for new settings, starting from current.
type EditFunc func(current Settings, opts ...survey.AskOpt) (Settings, error)

// Edit settings interactively.
func Edit(current Settings, opts ...survey.AskOpt) (Settings, error) {
	next := current

	provider := string(current.AIProvider)
	err := survey.AskOne(&survey.Select{
		Message: "AI provider:",
		Options: toStrings(Providers),
		Default: defaultOption(toStrings(Providers), provider),
	}, &provider, opts...)
	if err != nil {
		return current, errors.Wrap(err, "asking provider")
	}
	next.AIProvider = Provider(provider)

	switch next.AIProvider {
	case ProviderOllama:
		err = survey.AskOne(&survey.Input{Message: "Ollama URL:", Default: current.OllamaURL}, &next.OllamaURL, append(opts, survey.WithValidator(survey.Required))...)
	case ProviderOpenAI:
		err = askKey("OpenAI API key", &next.OpenAIAPIKey, opts)
	case ProviderGoogle:
		err = askKey("Google API key", &next.GoogleAPIKey, opts)
	case ProviderAnthropic:
		err = askKey("Anthropic API key", &next.AnthropicAPIKey, opts)
	}
	if err != nil {
		return current, errors.Wrap(err, "asking provider credentials")
	}

	if err := survey.AskOne(&survey.Input{Message: "Model:", Default: current.CurrentModel}, &next.CurrentModel, opts...); err != nil {
		return current, errors.Wrap(err, "asking model")
	}

	theme := string(current.ColorTheme)
	err = survey.AskOne(&survey.Select{
		Message: "Color theme:",
		Options: toStrings(ColorThemes),
		Default: defaultOption(toStrings(ColorThemes), theme),
	}, &theme, opts...)
	if err != nil {
		return current, errors.Wrap(err, "asking color theme")
	}
	next.ColorTheme = ColorTheme(theme)

	if err := survey.AskOne(&survey.Confirm{Message: "Enable sounds?", Default: current.EnableSounds}, &next.EnableSounds, opts...); err != nil {
		return current, errors.Wrap(err, "asking sounds")
	}
	if err := survey.AskOne(&survey.Confirm{Message: "Show scanlines?", Default: current.ShowScanlines}, &next.ShowScanlines, opts...); err != nil {
		return current, errors.Wrap(err, "asking scanlines")
	}
	return next, nil
}

// askKey keeps the existing key when the answer is empty.
func askKey(message string, key *string, opts []survey.AskOpt) error {
	if *key != "" {
		message += " (leave empty to keep the current one)"
	}
	var answer string
	if err := survey.AskOne(&survey.Password{Message: message + ":"}, &answer, opts...); err != nil {
		return err
	}
	if answer != "" {
		*key = answer
	}
	return nil
}

func toStrings[T ~string](values []T) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		result = append(result, string(value))
	}
	return result
}

func defaultOption(options []string, value string) any {
	if slices.Contains(options, value) {
		return value
	}
	return nil
}

// EditorCommand runs the editor against a Manager. It implements tea.ExecCommand so the
// terminal can hand the screen over to it.
type EditorCommand struct {
	ctx     context.Context
	manager *Manager
	edit    EditFunc
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// NewEditorCommand returns an EditorCommand. A nil edit uses Edit.
func NewEditorCommand(ctx context.Context, manager *Manager, edit EditFunc) *EditorCommand {
	if edit == nil {
		edit = Edit
	}
	return &EditorCommand{ctx: ctx, manager: manager, edit: edit, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}

// Run the editor and save the result.
func (c *EditorCommand) Run() error {
	var opts []survey.AskOpt
	in, inOK := c.stdin.(terminal.FileReader)
	out, outOK := c.stdout.(terminal.FileWriter)
	if inOK && outOK {
		opts = append(opts, survey.WithStdio(in, out, c.stderr))
	}
	next, err := c.edit(c.manager.Stored(), opts...)
	if err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil
		}
		return errors.Wrap(err, "editing settings")
	}
	return c.manager.Replace(c.ctx, next)
}

func (c *EditorCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *EditorCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *EditorCommand) SetStderr(w io.Writer) { c.stderr = w }
