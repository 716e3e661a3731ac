package terminal

import (
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/nostromo/mother/cli/terminal/styles"
)

// recalculateLayout adjusts viewport and input dimensions based on current state.
func (m *Model) recalculateLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	viewportHeight := m.height - styles.HeaderHeight - (1 + styles.InputBorderHeight) - styles.SuggestionsHeight - styles.HelpHeight
	if m.err != nil {
		viewportHeight--
	}
	viewportHeight = max(viewportHeight, styles.MinViewportHeight)
	m.renderer.SetWidth(m.width)

	if !m.ready {
		m.viewport = viewport.New(m.width, viewportHeight)
		m.viewport.MouseWheelEnabled = true
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = viewportHeight
	}
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()

	m.input.Width = max(m.width-m.styles.InputFrameWidth()-len(m.input.Prompt)-1, 1)
}

// refresh re-renders the transcript, following the bottom if the user was there.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	wasAtBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderMessages())
	if wasAtBottom {
		m.viewport.GotoBottom()
	}
}
