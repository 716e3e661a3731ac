package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/buger/goterm"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

var (
	crewColor      = color.New(color.FgHiWhite)
	motherColor    = color.New(color.FgGreen)
	noticeColor    = color.New(color.FgHiYellow)
	failureColor   = color.New(color.FgRed, color.Bold)
	titleColor     = color.New(color.FgHiGreen, color.Bold)
	separatorColor = color.New(color.FgHiBlack)
	labelColor     = color.New(color.FgGreen, color.Faint)
	promptColor    = color.New(color.FgHiGreen)

	// Output receives everything printed by this package.
	Output io.Writer = color.Output
)

const minimumWidth = 40

// Width of the terminal.
func Width() int {
	width := goterm.Width()
	if width < minimumWidth {
		return minimumWidth
	}
	return width
}

// Separator printed to cli.
func Separator() {
	separatorColor.Fprintln(Output, strings.Repeat("-", Width()))
}

// Title printed to cli.
func Title(text string, args ...any) {
	width := Width()
	title := "      " + fmt.Sprintf(text, args...) + "      "
	leftWidth := max((width-len(title))/2, 0)
	separator1 := strings.Repeat("-", leftWidth)
	separator2 := strings.Repeat("-", max(width-len(title)-len(separator1), 0))
	titleColor.Fprintf(Output, "%s%s%s\n", separator1, title, separator2)
}

// Crew message printed to cli.
func Crew(text string) {
	labelColor.Fprint(Output, "CREW> ")
	crewColor.Fprintln(Output, text)
}

// Mother message printed to cli. The label is only printed before the first chunk of a message.
func Mother(text string) {
	labelColor.Fprint(Output, "MOTHER> ")
	MotherChunk(text)
}

// MotherChunk prints part of a system message as it is revealed.
func MotherChunk(text string) {
	motherColor.Fprint(Output, text)
}

// Notice printed to cli.
func Notice(text string, args ...any) {
	noticeColor.Fprintf(Output, text+"\n", args...)
}

// Failure printed to cli.
func Failure(text string, args ...any) {
	failureColor.Fprintf(Output, text+"\n", args...)
}

// Prompt reads input lines.
type Prompt struct {
	instance *readline.Instance
}

// NewPrompt returns a Prompt recording its history in historyFile. An empty historyFile disables the history file.
func NewPrompt(historyFile string) (*Prompt, error) {
	config := &readline.Config{
		Prompt:            promptColor.Sprint("> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistoryFile:       historyFile,
		HistorySearchFold: true,
	}
	instance, err := readline.NewEx(config)
	if err != nil {
		return nil, errors.Wrap(err, "creating readline instance")
	}
	return &Prompt{instance: instance}, nil
}

// ReadLine blocks until the user submits a line. Returns io.EOF when the user is done.
func (p *Prompt) ReadLine() (string, error) {
	line, err := p.instance.Readline()
	if err == readline.ErrInterrupt {
		if line == "" {
			return "", io.EOF
		}
		return "", nil
	}
	return line, err
}

// Stdout returns a writer that does not corrupt the prompt line.
func (p *Prompt) Stdout() io.Writer {
	return p.instance.Stdout()
}

// Close the prompt.
func (p *Prompt) Close() error {
	return p.instance.Close()
}

// QueryUser a yes/no question.
func QueryUser(question string) bool {
	surveyQuestion := &survey.Confirm{
		Message: question,
	}
	confirm := false
	survey.AskOne(surveyQuestion, &confirm)
	return confirm
}
