package terminal

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"
	"go.uber.org/zap"

	"github.com/nostromo/mother/cli/terminal/styles"
	"github.com/nostromo/mother/cli/terminal/viewer"
	"github.com/nostromo/mother/internal/console"
	"github.com/nostromo/mother/internal/markdown"
	"github.com/nostromo/mother/internal/settings"
	"github.com/nostromo/mother/internal/sound"
)

const placeholder = "ENTER COMMAND... (Enter to send, Tab for suggestions, ↑/↓ history, Ctrl+C to quit)"

// Options of a terminal session.
type Options struct {
	Console *console.Console
	Manager *settings.Manager
	// Edit runs the settings editor. Defaults to settings.Edit.
	Edit   settings.EditFunc
	Player sound.Player
	Logger *zap.Logger
}

// Model is the bubbletea model of the terminal.
type Model struct {
	// Core dependencies
	ctx     context.Context
	console *console.Console
	manager *settings.Manager
	edit    settings.EditFunc
	player  sound.Player
	logger  *zap.Logger

	// UI components
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *markdown.Renderer
	styles   styles.Styles

	// UI state
	width    int
	height   int
	ready    bool
	err      error
	quitting bool

	// Alert notifications.
	alert bubbleup.AlertModel

	// Job control
	cancelJob context.CancelFunc

	// Earliest scheduled wake-up
	wakeAt time.Time

	historyNavigating bool
	suggestionIndex   int

	// Sub-views
	viewerMode  bool
	viewerModel *viewer.Model
}

// New creates the terminal model.
func New(ctx context.Context, opts Options) (*Model, error) {
	if opts.Player == nil {
		opts.Player = sound.Silent{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	current := opts.Manager.Current()
	st := styles.New(current.ColorTheme)

	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "> "
	input.PromptStyle = st.MotherLabel
	input.TextStyle = st.Crew.UnsetPaddingLeft()
	input.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = st.Spinner

	renderer, err := markdown.NewRenderer(80)
	if err != nil {
		return nil, err
	}

	return &Model{
		ctx:      ctx,
		console:  opts.Console,
		manager:  opts.Manager,
		edit:     opts.Edit,
		player:   opts.Player,
		logger:   opts.Logger,
		input:    input,
		spinner:  sp,
		renderer: renderer,
		styles:   st,
		alert:    *bubbleup.NewAlertModel(40, false, 2),
	}, nil
}

// Init starts the boot sequence.
func (m *Model) Init() tea.Cmd {
	m.console.Start()
	cmds := []tea.Cmd{
		textinput.Blink,
		m.spinner.Tick,
		m.alert.Init(),
	}
	cmds = append(cmds, m.afterConsole()...)
	return tea.Batch(cmds...)
}

// applyTheme rebuilds the styles from the current settings.
func (m *Model) applyTheme() {
	m.styles = styles.New(m.manager.Current().ColorTheme)
	m.input.PromptStyle = m.styles.MotherLabel
	m.input.TextStyle = m.styles.Crew.UnsetPaddingLeft()
	m.spinner.Style = m.styles.Spinner
}
