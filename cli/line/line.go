package line

import (
	"context"
	"io"
	"strings"

	"github.com/buger/goterm"
	"github.com/pkg/errors"

	"github.com/nostromo/mother/internal/cli"
	"github.com/nostromo/mother/internal/console"
	"github.com/nostromo/mother/internal/sound"
	"github.com/nostromo/mother/internal/transcript"
)

// Reader of input lines. Returns io.EOF when the user is done.
type Reader interface {
	ReadLine() (string, error)
	Close() error
}

// Run the console in line mode until the reader is exhausted or ctx is done.
func Run(ctx context.Context, runner *console.Runner, reader Reader, player sound.Player) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer reader.Close()

	r := newRenderer(player)
	// Piped lines never appear on the terminal.
	_, r.echo = reader.(*StdinReader)
	inputs := make(chan string)
	go func() {
		defer close(inputs)
		select {
		case <-r.booted:
		case <-ctx.Done():
			return
		}
		for {
			line, err := reader.ReadLine()
			if err != nil {
				return
			}
			select {
			case inputs <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	return runner.Run(ctx, inputs, r.render)
}

// renderer prints console events as they arrive.
type renderer struct {
	player   sound.Player
	echo     bool
	contents map[string][]rune
	printed  map[string]int
	labelled string
	// booted is closed once the boot announcements are done. Input is read from then on.
	booted chan struct{}
}

func newRenderer(player sound.Player) *renderer {
	return &renderer{player: player, contents: map[string][]rune{}, printed: map[string]int{}, booted: make(chan struct{})}
}

func (r *renderer) render(events []console.Event) {
	for _, event := range events {
		switch event.Kind {
		case console.EventMessage:
			if event.Message.Sender == transcript.SenderUser {
				if r.echo {
					cli.Crew(event.Message.Content)
				}
				continue
			}
			r.contents[event.Message.ID] = []rune(event.Message.Content)
		case console.EventReveal:
			r.label(event.MessageID)
			cli.MotherChunk(event.Delta)
			r.printed[event.MessageID] += len([]rune(event.Delta))
		case console.EventRevealDone:
			r.label(event.MessageID)
			content := r.contents[event.MessageID]
			cli.MotherChunk(string(content[r.printed[event.MessageID]:]) + "\n")
			delete(r.contents, event.MessageID)
			delete(r.printed, event.MessageID)
		case console.EventSuggestions:
			if len(event.Suggestions) > 0 {
				cli.Notice("SUGGESTIONS: %s", strings.Join(event.Suggestions, " · "))
			}
		case console.EventClear:
			clear(r.contents)
			clear(r.printed)
			r.labelled = ""
			goterm.Clear()
			goterm.MoveCursor(1, 1)
			goterm.Flush()
		case console.EventRejected:
			cli.Failure("INPUT REJECTED: %s", event.Input)
		case console.EventOpenSettings:
			cli.Notice("RUN `mother settings` TO EDIT THE CONFIGURATION.")
		case console.EventSound:
			r.player.Play(event.Effect())
		case console.EventBootComplete:
			cli.Separator()
			close(r.booted)
		}
	}
}

// label prints the system label once per message.
func (r *renderer) label(messageID string) {
	if r.labelled == messageID {
		return
	}
	r.labelled = messageID
	cli.Mother("")
}

// PromptReader reads lines from a readline prompt.
type PromptReader struct {
	*cli.Prompt
}

var _ Reader = PromptReader{}

// StdinReader reads lines from a non-interactive stream such as a pipe.
type StdinReader struct {
	lines []string
	next  int
}

// NewStdinReader reads every line of r up front.
func NewStdinReader(r io.Reader) (*StdinReader, error) {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	text := strings.TrimRight(string(bytes), "\n")
	if text == "" {
		return &StdinReader{}, nil
	}
	return &StdinReader{lines: strings.Split(text, "\n")}, nil
}

// ReadLine implements Reader.
func (s *StdinReader) ReadLine() (string, error) {
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	s.next++
	return s.lines[s.next-1], nil
}

// Close implements Reader.
func (s *StdinReader) Close() error { return nil }
