package terminal

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"
	"go.uber.org/zap"

	"github.com/nostromo/mother/cli/terminal/viewer"
	"github.com/nostromo/mother/internal/sound"
	"github.com/nostromo/mother/internal/transcript"
)

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Always update the alert model with every message
	outAlert, alertCmd := m.alert.Update(msg)
	m.alert = outAlert.(bubbleup.AlertModel)
	if alertCmd != nil {
		cmds = append(cmds, alertCmd)
	}

	switch msg.(type) {
	case spinner.TickMsg, cursor.BlinkMsg, wakeMsg:
	default:
		m.logger.Debug("update", zap.String("msg_type", fmt.Sprintf("%T", msg)))
	}

	switch msg := msg.(type) {
	case viewer.ExitMsg:
		m.viewerMode = false
		m.viewerModel = nil
		m.viewport.GotoBottom()
		return m, tea.Batch(append(cmds, m.input.Focus())...)

	case viewer.CopyMsg:
		return m, tea.Batch(append(cmds, m.copyMessage(msg.Message))...)

	case wakeMsg:
		if msg.at.Equal(m.wakeAt) {
			m.wakeAt = time.Time{}
		}
		m.console.Advance(time.Now())
		cmds = append(cmds, m.afterConsole()...)
		return m, tea.Batch(cmds...)

	case jobDoneMsg:
		m.console.Complete(msg.result)
		cmds = append(cmds, m.afterConsole()...)
		return m, tea.Batch(cmds...)

	case settingsClosedMsg:
		if msg.err != nil {
			m.logger.Error("running settings editor", zap.Error(msg.err))
		}
		m.err = msg.err
		m.applyTheme()
		m.recalculateLayout()
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.viewerMode {
			var cmd tea.Cmd
			m.viewerModel, cmd = m.viewerModel.Update(msg)
			return m, tea.Batch(append(cmds, cmd)...)
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			return m, m.quit()

		case "enter":
			return m, tea.Batch(append(cmds, m.submit())...)

		case "tab":
			if suggestions := m.console.Suggestions(); len(suggestions) > 0 {
				m.input.SetValue(suggestions[m.suggestionIndex%len(suggestions)])
				m.input.CursorEnd()
				m.suggestionIndex++
			}
			return m, tea.Batch(cmds...)

		case "up", "alt+p":
			if entry, ok := m.console.History().Previous(m.input.Value()); ok {
				m.input.SetValue(entry)
				m.input.CursorEnd()
				m.historyNavigating = true
			}
			return m, tea.Batch(cmds...)

		case "down", "alt+n":
			if entry, ok := m.console.History().Next(); ok {
				m.input.SetValue(entry)
				m.input.CursorEnd()
				m.historyNavigating = true
			}
			return m, tea.Batch(cmds...)

		case "alt+w":
			return m, tea.Batch(append(cmds, m.copyLastReply())...)

		case "alt+v":
			if m.console.Busy() || len(m.console.Messages()) == 0 {
				return m, tea.Batch(cmds...)
			}
			messages := make([]transcript.Message, 0)
			for _, view := range m.console.Messages() {
				messages = append(messages, view.Message)
			}
			m.viewerMode = true
			m.viewerModel = viewer.New(messages, m.renderer, m.styles.Palette.Main, m.width, m.height)
			m.input.Blur()
			return m, tea.Batch(append(cmds, m.viewerModel.Init())...)
		}

		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			if m.manager.Current().EnableSounds {
				m.player.Play(sound.EffectKeypress)
			}
			fallthrough
		case tea.KeyBackspace, tea.KeyDelete:
			if m.historyNavigating {
				m.console.History().Reset()
				m.historyNavigating = false
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.viewerMode && m.viewerModel != nil {
			m.viewerModel, _ = m.viewerModel.Update(msg)
		}
		m.recalculateLayout()

	case spinner.TickMsg:
		if !m.console.InputLocked() {
			return m, tea.Batch(cmds...)
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.viewerMode {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
