package terminal

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.dalton.dog/bubbleup"
	"go.uber.org/zap"
	"golang.design/x/clipboard"

	"github.com/nostromo/mother/internal/console"
	"github.com/nostromo/mother/internal/settings"
	"github.com/nostromo/mother/internal/transcript"
)

// wakeMsg fires when a console deadline is due.
type wakeMsg struct {
	at time.Time
}

// jobDoneMsg carries the result of a console job.
type jobDoneMsg struct {
	result console.Result
}

// settingsClosedMsg is sent when the settings editor returns.
type settingsClosedMsg struct {
	err error
}

func (m *Model) submit() tea.Cmd {
	input := m.input.Value()
	m.input.Reset()
	m.historyNavigating = false
	m.console.History().Reset()

	job := m.console.Submit(input)
	cmds := m.afterConsole()
	if job != nil {
		cmds = append(cmds, m.runJob(job), m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) runJob(job *console.Job) tea.Cmd {
	jobCtx, cancel := context.WithCancel(m.ctx)
	m.cancelJob = cancel
	return func() tea.Msg {
		defer cancel()
		return jobDoneMsg{result: job.Run(jobCtx)}
	}
}

func (m *Model) stopJob() {
	if m.cancelJob != nil {
		m.cancelJob()
		m.cancelJob = nil
	}
}

// afterConsole handles the events emitted by the console and schedules its next wake-up.
func (m *Model) afterConsole() []tea.Cmd {
	var cmds []tea.Cmd
	for _, event := range m.console.Drain() {
		switch event.Kind {
		case console.EventSound:
			m.player.Play(event.Effect())
		case console.EventOpenSettings:
			cmds = append(cmds, m.openSettings())
		case console.EventClear:
			m.stopJob()
			m.suggestionIndex = 0
		case console.EventSuggestions:
			m.suggestionIndex = 0
		case console.EventBusy:
			if !event.Busy {
				m.cancelJob = nil
			}
		case console.EventBootComplete:
			cmds = append(cmds, m.input.Focus())
		}
	}
	m.refresh()
	if cmd := m.schedule(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return cmds
}

// schedule a wake-up for the earliest console deadline.
func (m *Model) schedule() tea.Cmd {
	deadline, ok := m.console.NextDeadline()
	if !ok || deadline.Equal(m.wakeAt) {
		return nil
	}
	m.wakeAt = deadline
	return tea.Tick(max(time.Until(deadline), 0), func(time.Time) tea.Msg {
		return wakeMsg{at: deadline}
	})
}

func (m *Model) openSettings() tea.Cmd {
	command := settings.NewEditorCommand(m.ctx, m.manager, m.edit)
	return tea.Exec(command, func(err error) tea.Msg {
		return settingsClosedMsg{err: err}
	})
}

func (m *Model) copyLastReply() tea.Cmd {
	message, ok := m.console.LastCopyable()
	if !ok {
		return m.alert.NewAlertCmd(bubbleup.WarnKey, "NOTHING TO COPY")
	}
	return m.copyMessage(message)
}

// copyMessage copies a message once it is fully shown.
func (m *Model) copyMessage(message transcript.Message) tea.Cmd {
	for _, view := range m.console.Messages() {
		if view.ID == message.ID && view.Streaming {
			return m.alert.NewAlertCmd(bubbleup.WarnKey, "MESSAGE STILL STREAMING")
		}
	}
	if err := clipboard.Init(); err != nil {
		m.logger.Warn("initializing clipboard", zap.Error(err))
		return m.alert.NewAlertCmd(bubbleup.ErrorKey, "CLIPBOARD UNAVAILABLE")
	}
	clipboard.Write(clipboard.FmtText, []byte(message.Content))
	return m.alert.NewAlertCmd(bubbleup.InfoKey, "COPIED TO CLIPBOARD")
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.stopJob()
	m.console.Stop()
	return tea.Quit
}
