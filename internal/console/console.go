package console

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nostromo/mother/internal/history"
	"github.com/nostromo/mother/internal/router"
	"github.com/nostromo/mother/internal/settings"
	"github.com/nostromo/mother/internal/sound"
	"github.com/nostromo/mother/internal/suggestion"
	"github.com/nostromo/mother/internal/transcript"
	"github.com/nostromo/mother/internal/typewriter"
)

// Clock tells the time. Consoles never read the system clock directly.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// Executor runs classified inputs.
type Executor interface {
	Execute(ctx context.Context, state router.State, intent router.Intent, input string) (router.State, router.Outcome)
}

// SettingsReader exposes the live settings.
type SettingsReader interface {
	Current() settings.Settings
}

// Config of a Console.
type Config struct {
	Pacing       typewriter.Pacing
	BootItems    []string
	BootInterval time.Duration
	Logger       *zap.Logger
}

// DefaultConfig of a Console.
func DefaultConfig() Config {
	return Config{
		Pacing:       typewriter.DefaultPacing,
		BootItems:    typewriter.BootSequence,
		BootInterval: typewriter.DefaultBootInterval,
	}
}

// Job is the asynchronous part of a submission. Run it off the console goroutine and hand the result to Complete.
type Job struct {
	Generation uint64
	Intent     router.Intent
	Input      string
	state      router.State
	executor   Executor
}

// Run the job.
func (j *Job) Run(ctx context.Context) Result {
	state, outcome := j.executor.Execute(ctx, j.state, j.Intent, j.Input)
	return Result{Generation: j.Generation, State: state, Outcome: outcome}
}

// Result of a Job.
type Result struct {
	Generation uint64
	State      router.State
	Outcome    router.Outcome
}

type pendingReply struct {
	text string
	pace typewriter.Pace
	due  time.Time
}

// MessageView is a message as it should be displayed.
type MessageView struct {
	transcript.Message
	// Text shown: the revealed prefix and cursor while streaming, the content otherwise.
	Text string
	// Streaming is true while the message is being revealed.
	Streaming bool
}

// Console is a single chat session. Not safe for concurrent use: every method must be called
// from the same goroutine.
type Console struct {
	executor Executor
	settings SettingsReader
	clock    Clock
	pacing   typewriter.Pacing
	logger   *zap.Logger

	state       router.State
	transcript  transcript.Transcript
	history     *history.History
	reveal      typewriter.Reveal
	suggest     bool
	boot        *typewriter.Boot
	pending     *pendingReply
	inFlight    bool
	generation  uint64
	suggestions []string
	events      []Event
}

// New returns a Console. Call Start to run the boot sequence.
func New(executor Executor, settings SettingsReader, clock Clock, config Config) *Console {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Console{
		executor: executor,
		settings: settings,
		clock:    clock,
		pacing:   config.Pacing,
		logger:   config.Logger,
		history:  history.NewHistory(),
		boot:     typewriter.NewBoot(config.BootItems, config.BootInterval),
	}
}

// Start the boot sequence. Input is rejected until it completes.
func (c *Console) Start() {
	c.boot.Start(c.clock.Now())
	c.state.BootInProgress = c.boot.Running()
	if !c.state.BootInProgress {
		c.emit(Event{Kind: EventBootComplete})
	}
}

// Submit an input line. Returns a Job to run when the input needs asynchronous work.
func (c *Console) Submit(input string) *Job {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	c.history.Add(input)

	intent := router.Classify(c.state, input)
	if c.Busy() && intent != router.IntentClear {
		intent = router.IntentRejected
	}
	c.logger.Debug("submitted input", zap.Stringer("intent", intent), zap.Uint64("generation", c.generation))

	switch intent {
	case router.IntentRejected:
		c.emit(Event{Kind: EventRejected, Input: input})
		return nil
	case router.IntentClear:
		busy := c.Busy()
		c.Reset()
		c.emit(Event{Kind: EventClear})
		if busy {
			c.emit(Event{Kind: EventBusy, Busy: false})
		}
		return nil
	}

	c.play(sound.EffectBeep)
	message := transcript.NewMessage(transcript.SenderUser, input, c.clock.Now())
	c.transcript.Append(message)
	c.emit(Event{Kind: EventMessage, Message: &message})
	c.setSuggestions(nil)

	c.inFlight = true
	c.emit(Event{Kind: EventBusy, Busy: true})
	return &Job{Generation: c.generation, Intent: intent, Input: input, state: c.state, executor: c.executor}
}

// Complete applies the result of a Job. Results of a previous generation are dropped.
func (c *Console) Complete(result Result) {
	if result.Generation != c.generation || !c.inFlight {
		c.logger.Debug("dropping stale result", zap.Uint64("generation", result.Generation), zap.Uint64("current", c.generation))
		return
	}
	c.inFlight = false
	bootInProgress := c.state.BootInProgress
	c.state = result.State
	c.state.BootInProgress = bootInProgress

	outcome := result.Outcome
	if outcome.OpenSettings {
		c.emit(Event{Kind: EventOpenSettings})
	}
	if outcome.Reply == nil {
		c.emit(Event{Kind: EventBusy, Busy: false})
		return
	}
	now := c.clock.Now()
	if outcome.Reply.Latency > 0 {
		c.pending = &pendingReply{text: outcome.Reply.Text, pace: outcome.Reply.Pace, due: now.Add(outcome.Reply.Latency)}
		return
	}
	c.appendReply(outcome.Reply.Text, outcome.Reply.Pace, true, now)
	c.emit(Event{Kind: EventBusy, Busy: false})
}

// Advance the console to now, firing every deadline that passed.
func (c *Console) Advance(now time.Time) {
	if due := c.boot.Advance(now); len(due) > 0 {
		for _, item := range due {
			c.play(sound.EffectBoot)
			c.appendReply(item, typewriter.PaceBoot, false, now)
		}
		if !c.boot.Running() {
			c.state.BootInProgress = false
			c.emit(Event{Kind: EventBootComplete})
		}
	}

	if c.pending != nil && !now.Before(c.pending.due) {
		pending := c.pending
		c.pending = nil
		c.appendReply(pending.text, pending.pace, true, now)
		c.emit(Event{Kind: EventBusy, Busy: false})
	}

	if c.reveal.Phase() == typewriter.PhaseRevealing {
		before := c.reveal.Position()
		finished := c.reveal.Advance(now)
		if c.reveal.Position() > before {
			visible := []rune(c.reveal.Visible())
			c.emit(Event{Kind: EventReveal, MessageID: c.reveal.MessageID(), Delta: string(visible[before:])})
		}
		if finished {
			c.revealDone(c.reveal.MessageID())
		}
	}
}

// NextDeadline returns the earliest pending deadline.
func (c *Console) NextDeadline() (time.Time, bool) {
	var deadline time.Time
	found := false
	consider := func(t time.Time, ok bool) {
		if ok && (!found || t.Before(deadline)) {
			deadline, found = t, true
		}
	}
	consider(c.boot.Deadline())
	if c.pending != nil {
		consider(c.pending.due, true)
	}
	consider(c.reveal.Deadline())
	return deadline, found
}

// Reset wipes the session: transcript, history, reveal, pending reply and suggestions.
// Jobs and wake-ups scheduled before the reset become no-ops.
func (c *Console) Reset() {
	c.generation++
	c.transcript.Clear()
	c.history.Clear()
	c.reveal.Cancel()
	c.pending = nil
	c.inFlight = false
	c.suggestions = nil
	c.state.AwaitingModelSelection = false
	c.state.LastAvailableModels = nil
}

// Stop cancels everything, boot included.
func (c *Console) Stop() {
	c.Reset()
	c.boot.Cancel()
	c.state.BootInProgress = false
}

// Drain returns the events emitted since the last call.
func (c *Console) Drain() []Event {
	events := c.events
	c.events = nil
	return events
}

// Busy reports whether a submission is being processed.
func (c *Console) Busy() bool {
	return c.inFlight || c.pending != nil
}

// Settled reports whether nothing is being processed or revealed.
func (c *Console) Settled() bool {
	return !c.Busy() && c.reveal.Phase() != typewriter.PhaseRevealing
}

// Queues reports whether a real-time driver should hold input back until the console settles.
// Clear is never held: it is accepted while busy.
func (c *Console) Queues(input string) bool {
	return !c.Settled() && !c.state.BootInProgress && router.Classify(c.state, input) != router.IntentClear
}

// InputLocked reports whether new inputs would be rejected.
func (c *Console) InputLocked() bool {
	return c.state.BootInProgress || c.Busy()
}

// Booting reports whether the boot sequence is running.
func (c *Console) Booting() bool { return c.state.BootInProgress }

// State of the router.
func (c *Console) State() router.State { return c.state }

// History of inputs.
func (c *Console) History() *history.History { return c.history }

// Suggestions for the last reply.
func (c *Console) Suggestions() []string {
	return append([]string(nil), c.suggestions...)
}

// Messages returns the transcript as it should be displayed.
func (c *Console) Messages() []MessageView {
	messages := c.transcript.Messages()
	views := make([]MessageView, 0, len(messages))
	for _, message := range messages {
		view := MessageView{Message: message, Text: message.Content}
		if c.reveal.Revealing(message.ID) {
			view.Text = c.reveal.Visible() + typewriter.Cursor
			view.Streaming = true
		}
		views = append(views, view)
	}
	return views
}

// Message returns a message by id.
func (c *Console) Message(id string) (transcript.Message, bool) {
	return c.transcript.Get(id)
}

// LastCopyable returns the latest system message that is fully shown.
func (c *Console) LastCopyable() (transcript.Message, bool) {
	messages := c.transcript.Messages()
	for i := len(messages) - 1; i >= 0; i-- {
		message := messages[i]
		if message.Sender != transcript.SenderMother || c.reveal.Revealing(message.ID) {
			continue
		}
		return message, true
	}
	return transcript.Message{}, false
}

func (c *Console) appendReply(text string, pace typewriter.Pace, suggest bool, now time.Time) {
	message := transcript.NewMessage(transcript.SenderMother, typewriter.Format(text), now)
	c.transcript.Append(message)
	c.emit(Event{Kind: EventMessage, Message: &message})

	previousSuggest := c.suggest
	if flushed, ok := c.reveal.Start(message.ID, message.Content, c.pacing.Interval(pace), now); ok {
		c.finishRevealOf(flushed, previousSuggest)
	}
	c.suggest = suggest
	if c.reveal.Phase() == typewriter.PhaseDone {
		c.revealDone(message.ID)
	}
}

func (c *Console) revealDone(messageID string) {
	c.finishRevealOf(messageID, c.suggest)
}

func (c *Console) finishRevealOf(messageID string, suggest bool) {
	c.emit(Event{Kind: EventRevealDone, MessageID: messageID})
	if !suggest {
		return
	}
	message, ok := c.transcript.Get(messageID)
	if !ok {
		return
	}
	c.setSuggestions(suggestion.For(message.Content))
}

func (c *Console) setSuggestions(suggestions []string) {
	if len(suggestions) == 0 && len(c.suggestions) == 0 {
		return
	}
	c.suggestions = suggestions
	c.emit(Event{Kind: EventSuggestions, Suggestions: append([]string(nil), suggestions...)})
}

func (c *Console) play(effect sound.Effect) {
	if c.settings != nil && !c.settings.Current().EnableSounds {
		return
	}
	c.emit(Event{Kind: EventSound, Sound: effect.String(), effect: effect})
}

func (c *Console) emit(event Event) {
	c.events = append(c.events, event)
}
