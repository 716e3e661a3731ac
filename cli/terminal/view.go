package terminal

import (
	"fmt"
	"strings"

	"github.com/nostromo/mother/cli/terminal/styles"
	"github.com/nostromo/mother/internal/transcript"
)

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "INITIALIZING..."
	}
	if m.viewerMode && m.viewerModel != nil {
		return m.viewerModel.View()
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderSuggestions())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter send │ tab suggestion │ ↑/↓ history │ alt+w copy │ alt+v view │ ctrl+c quit"))

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("ERROR: %v", m.err)))
	}

	return m.alert.Render(b.String())
}

func (m *Model) renderTitle() string {
	current := m.manager.Current()
	model := current.CurrentModel
	if model == "" {
		model = "DEFAULT"
	}
	title := fmt.Sprintf(" MU/TH/UR 6000 │ INTERFACE 2037 │ %s:%s ", strings.ToUpper(string(current.AIProvider)), strings.ToUpper(model))
	return m.styles.Title.Width(m.width).Render(title)
}

func (m *Model) renderMessages() string {
	width := max(m.viewport.Width-m.styles.MessageFrameWidth(), 1)
	var b strings.Builder
	for i, message := range m.console.Messages() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := fmt.Sprintf("%s [%s]", message.Sender.Label(), message.Timestamp.Format("15:04:05"))
		if message.Sender == transcript.SenderUser {
			b.WriteString(m.styles.CrewLabel.Render(label))
			b.WriteString("\n")
			b.WriteString(m.styles.Crew.Width(width).Render(message.Text))
			continue
		}
		b.WriteString(m.styles.MotherLabel.Render(label))
		b.WriteString("\n")
		b.WriteString(m.styles.Mother.Width(width).Render(message.Text))
	}
	content := b.String()
	if m.manager.Current().ShowScanlines {
		content = scanlines(content, m.styles)
	}
	return content
}

// scanlines dims every ScanlineInterval-th line.
func scanlines(content string, st styles.Styles) string {
	lines := strings.Split(content, "\n")
	for i := styles.ScanlineInterval - 1; i < len(lines); i += styles.ScanlineInterval {
		lines[i] = st.Scanline.Render(lines[i])
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderInput() string {
	switch {
	case m.console.Booting():
		return m.styles.InputLocked.Width(m.inputWidth()).Render(m.spinner.View() + " SYSTEM INITIALIZING...")
	case m.console.Busy():
		return m.styles.InputLocked.Width(m.inputWidth()).Render(m.spinner.View() + " PROCESSING...")
	}
	return m.styles.Input.Width(m.inputWidth()).Render(m.input.View())
}

func (m *Model) inputWidth() int {
	return max(m.width-m.styles.Input.GetHorizontalBorderSize(), 1)
}

func (m *Model) renderSuggestions() string {
	suggestions := m.console.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}
	return m.styles.Suggestion.Render("TAB ▸ " + strings.Join(suggestions, " · "))
}
