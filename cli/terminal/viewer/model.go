package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nostromo/mother/internal/markdown"
	"github.com/nostromo/mother/internal/transcript"
)

// ExitMsg is sent when exiting the viewer.
type ExitMsg struct{}

// CopyMsg asks for the message on screen to be copied to the clipboard.
type CopyMsg struct {
	Message transcript.Message
}

// Model is the full-screen message viewer.
type Model struct {
	messages     []transcript.Message
	currentIndex int
	viewport     viewport.Model
	renderer     *markdown.Renderer
	header       lipgloss.Style
	footer       lipgloss.Style
	width        int
	height       int
}

// New creates a new viewer model starting at the last message.
func New(messages []transcript.Message, renderer *markdown.Renderer, accent lipgloss.Color, width, height int) *Model {
	m := &Model{
		messages:     messages,
		currentIndex: max(len(messages)-1, 0),
		renderer:     renderer,
		header:       lipgloss.NewStyle().Bold(true).Foreground(accent),
		footer:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		width:        width,
		height:       height,
	}
	// Reserve 2 lines for footer.
	m.viewport = viewport.New(width, max(height-2, 1))
	m.viewport.MouseWheelEnabled = false
	m.updateContent()
	return m
}

// Init initializes the viewer model.
func (m *Model) Init() tea.Cmd {
	return tea.DisableMouse
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return ExitMsg{} }

		case "j", "down":
			if m.currentIndex > 0 {
				m.currentIndex--
				m.updateContent()
				m.viewport.GotoTop()
			}
			return m, nil

		case "k", "up":
			if m.currentIndex < len(m.messages)-1 {
				m.currentIndex++
				m.updateContent()
				m.viewport.GotoTop()
			}
			return m, nil

		case "y":
			message, ok := m.Current()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return CopyMsg{Message: message} }

		case "g":
			m.viewport.GotoTop()
			return m, nil

		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-2, 1)
		m.renderer.SetWidth(msg.Width)
		m.updateContent()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the viewer.
func (m *Model) View() string {
	if len(m.messages) == 0 {
		return "NO MESSAGES TO DISPLAY. PRESS Q TO EXIT."
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.footer.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")
	footer := fmt.Sprintf(" %d/%d │ j/k next │ g/G top/bottom │ y copy │ q exit", m.currentIndex+1, len(m.messages))
	b.WriteString(m.footer.Render(footer))
	return b.String()
}

// Current returns the message on screen.
func (m *Model) Current() (transcript.Message, bool) {
	if len(m.messages) == 0 {
		return transcript.Message{}, false
	}
	return m.messages[m.currentIndex], true
}

func (m *Model) updateContent() {
	message, ok := m.Current()
	if !ok {
		m.viewport.SetContent("NO MESSAGES")
		return
	}
	var b strings.Builder
	b.WriteString(m.header.Render(fmt.Sprintf("%s │ %s", message.Sender.Label(), message.Timestamp.Format("15:04:05"))))
	b.WriteString("\n\n")
	b.WriteString(m.renderer.Render(message.ID, message.Content))
	m.viewport.SetContent(b.String())
}
