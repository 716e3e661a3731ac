package console

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nostromo/mother/internal/provider"
	"github.com/nostromo/mother/internal/router"
	"github.com/nostromo/mother/internal/settings"
	"github.com/nostromo/mother/internal/transcript"
	"github.com/nostromo/mother/internal/typewriter"
	"github.com/nostromo/mother/internal/wiki"
)

var epoch = time.Date(2122, time.June, 3, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Add(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

type fakeGateway struct {
	models []provider.Model
	result provider.Result
	err    error
}

func (g *fakeGateway) Send(context.Context, string, settings.Settings) (provider.Result, error) {
	return g.result, g.err
}

func (g *fakeGateway) FetchModels(context.Context, settings.Settings) []provider.Model {
	return g.models
}

type fakeSettings struct {
	settings settings.Settings
}

func (s *fakeSettings) Current() settings.Settings { return s.settings }

func (s *fakeSettings) SetModel(_ context.Context, model string) error {
	s.settings.CurrentModel = model
	return nil
}

type fixture struct {
	console  *Console
	clock    *fakeClock
	gateway  *fakeGateway
	settings *fakeSettings
}

func newFixture(t *testing.T, bootItems []string) *fixture {
	t.Helper()
	store, err := wiki.NewSeededStore()
	require.NoError(t, err)
	f := &fixture{
		clock:    &fakeClock{now: epoch},
		gateway:  &fakeGateway{},
		settings: &fakeSettings{settings: settings.Default()},
	}
	executor := router.New(f.gateway, f.settings, store, router.DefaultReplyLatency, nil)
	config := DefaultConfig()
	config.BootItems = bootItems
	f.console = New(executor, f.settings, f.clock, config)
	f.console.Start()
	return f
}

// submit runs the whole submission synchronously.
func (f *fixture) submit(input string) {
	if job := f.console.Submit(input); job != nil {
		f.console.Complete(job.Run(context.Background()))
	}
}

// settle advances the clock until nothing is pending.
func (f *fixture) settle() {
	for {
		deadline, ok := f.console.NextDeadline()
		if !ok {
			return
		}
		f.clock.now = deadline
		f.console.Advance(deadline)
	}
}

func (f *fixture) contents() []string {
	var contents []string
	for _, message := range f.console.Messages() {
		contents = append(contents, message.Content)
	}
	return contents
}

func kinds(events []Event) []EventKind {
	var result []EventKind
	for _, event := range events {
		result = append(result, event.Kind)
	}
	return result
}

func TestBootCompletesAfterNTicks(t *testing.T) {
	f := newFixture(t, typewriter.BootSequence)
	require.True(t, f.console.InputLocked())
	require.True(t, f.console.Booting())

	for i := 1; i <= len(typewriter.BootSequence); i++ {
		require.True(t, f.console.InputLocked(), "tick %d", i)
		f.console.Advance(f.clock.Add(typewriter.DefaultBootInterval))
		require.Len(t, f.console.Messages(), i)
	}

	require.False(t, f.console.InputLocked())
	require.False(t, f.console.State().BootInProgress)
	require.Equal(t, typewriter.BootSequence, f.contents())
	for _, message := range f.console.Messages() {
		require.Equal(t, transcript.SenderMother, message.Sender)
	}

	events := f.console.Drain()
	var sounds, bootComplete int
	for _, event := range events {
		switch event.Kind {
		case EventSound:
			require.Equal(t, "boot", event.Sound)
			sounds++
		case EventBootComplete:
			bootComplete++
		case EventSuggestions:
			t.Fatalf("boot announcements must not produce suggestions")
		}
	}
	require.Equal(t, len(typewriter.BootSequence), sounds)
	require.Equal(t, 1, bootComplete)
}

func TestBootRejectsInput(t *testing.T) {
	f := newFixture(t, typewriter.BootSequence)
	require.Nil(t, f.console.Submit("hello"))
	require.Nil(t, f.console.Submit("clear"))
	require.Empty(t, f.console.Messages())
	require.False(t, f.console.Busy())
}

func TestRejectedInputIsReported(t *testing.T) {
	f := newFixture(t, typewriter.BootSequence)
	f.console.Drain()
	require.Nil(t, f.console.Submit("hello"))
	require.Equal(t, []Event{{Kind: EventRejected, Input: "hello"}}, f.console.Drain())

	f = newFixture(t, nil)
	f.gateway.result = provider.Result{Content: "STAND BY."}
	job := f.console.Submit("status")
	require.NotNil(t, job)
	f.console.Drain()
	require.Nil(t, f.console.Submit("orders"))
	require.Equal(t, []Event{{Kind: EventRejected, Input: "orders"}}, f.console.Drain())
}

func TestQueuesUntilSettled(t *testing.T) {
	f := newFixture(t, typewriter.BootSequence)
	require.False(t, f.console.Queues("status"), "booting consoles reject instead")
	f.settle()
	require.True(t, f.console.Settled())
	require.False(t, f.console.Queues("status"))

	f.gateway.result = provider.Result{Content: "STAND BY."}
	job := f.console.Submit("status")
	require.True(t, f.console.Queues("orders"))
	require.False(t, f.console.Queues("clear"))

	f.console.Complete(job.Run(context.Background()))
	f.console.Advance(f.clock.Add(router.DefaultReplyLatency))
	require.False(t, f.console.Busy())
	require.True(t, f.console.Queues("orders"), "reply still revealing")

	f.settle()
	require.True(t, f.console.Settled())
	require.False(t, f.console.Queues("orders"))
}

func TestBootIsTypedAtBootPace(t *testing.T) {
	f := newFixture(t, []string{"WEYLAND-YUTANI SYSTEMS"})
	f.console.Advance(f.clock.Add(typewriter.DefaultBootInterval))
	message := f.console.Messages()[0]
	require.True(t, message.Streaming)
	require.Equal(t, typewriter.Cursor, message.Text)

	f.console.Advance(f.clock.Add(2 * typewriter.DefaultPacing.Boot))
	require.Equal(t, "WE"+typewriter.Cursor, f.console.Messages()[0].Text)
}

func TestSoundsDisabled(t *testing.T) {
	f := newFixture(t, typewriter.BootSequence)
	f.settings.settings.EnableSounds = false
	f.settle()
	f.submit("config")
	for _, event := range f.console.Drain() {
		require.NotEqual(t, EventSound, event.Kind)
	}
}

func TestChatReplyAfterLatency(t *testing.T) {
	f := newFixture(t, nil)
	f.gateway.result = provider.Result{Content: "THE PLANET IS HOSTILE."}
	f.console.Drain()

	job := f.console.Submit("describe LV-426")
	require.NotNil(t, job)
	require.Equal(t, router.IntentChat, job.Intent)
	require.True(t, f.console.Busy())
	require.Equal(t, []string{"describe LV-426"}, f.contents())
	require.Nil(t, f.console.Submit("second input"), "input is locked while a job is in flight")

	f.console.Complete(job.Run(context.Background()))
	require.True(t, f.console.Busy(), "input stays locked during the reply latency")
	deadline, ok := f.console.NextDeadline()
	require.True(t, ok)
	require.Equal(t, epoch.Add(router.DefaultReplyLatency), deadline)

	f.console.Advance(f.clock.Add(router.DefaultReplyLatency - time.Millisecond))
	require.Len(t, f.console.Messages(), 1)

	f.console.Advance(f.clock.Add(time.Millisecond))
	require.False(t, f.console.Busy())
	messages := f.console.Messages()
	require.Len(t, messages, 2)
	require.Equal(t, transcript.SenderMother, messages[1].Sender)
	require.True(t, messages[1].Streaming)
	_, ok = f.console.LastCopyable()
	require.False(t, ok)

	f.console.Advance(f.clock.Add(typewriter.DefaultPacing.Standard))
	require.Equal(t, "T"+typewriter.Cursor, f.console.Messages()[1].Text)
	require.Empty(t, f.console.Suggestions())

	f.settle()
	messages = f.console.Messages()
	require.False(t, messages[1].Streaming)
	require.Equal(t, "THE PLANET IS HOSTILE.", messages[1].Text)
	require.Equal(t, "What is the atmosphere like?", f.console.Suggestions()[0])
	copyable, ok := f.console.LastCopyable()
	require.True(t, ok)
	require.Equal(t, messages[1].ID, copyable.ID)

	events := kinds(f.console.Drain())
	require.Equal(t, EventSound, events[0])
	require.Equal(t, EventMessage, events[1])
	require.Contains(t, events, EventRevealDone)
	require.Equal(t, EventSuggestions, events[len(events)-1])
}

func TestTransportErrorIsImmediate(t *testing.T) {
	f := newFixture(t, nil)
	f.gateway.err = context.DeadlineExceeded
	f.submit("hello")
	require.False(t, f.console.Busy())
	f.settle()
	require.Equal(t, []string{"hello", "COMMUNICATION ERROR: context deadline exceeded. CHECK SYSTEM LOG FOR DETAILS."}, f.contents())
}

func TestRepliesAreFormatted(t *testing.T) {
	f := newFixture(t, nil)
	f.gateway.result = provider.Result{Content: "ORDERS: 1. RETURN 2. ANALYZE"}
	f.submit("orders")
	f.settle()
	require.Equal(t, "ORDERS:\n1. RETURN\n2. ANALYZE", f.contents()[1])
}

func TestNewRevealFlushesPrevious(t *testing.T) {
	f := newFixture(t, nil)
	f.submit("/planets lv-426")
	require.True(t, f.console.Messages()[1].Streaming)

	f.submit("config")
	messages := f.console.Messages()
	require.Len(t, messages, 4)
	require.False(t, messages[1].Streaming)
	require.Equal(t, messages[1].Content, messages[1].Text)
	require.True(t, messages[3].Streaming)
	// The flushed reply mentions planets.
	require.Equal(t, "What is the atmosphere like?", f.console.Suggestions()[0])
}

func TestClearFromAnyState(t *testing.T) {
	setups := map[string]func(f *fixture){
		"idle": func(f *fixture) {},
		"revealing": func(f *fixture) {
			f.submit("/aliens")
		},
		"waiting for latency": func(f *fixture) {
			f.gateway.result = provider.Result{Content: "STAND BY."}
			f.submit("hello")
		},
		"job in flight": func(f *fixture) {
			f.console.Submit("hello")
		},
		"awaiting selection": func(f *fixture) {
			f.gateway.models = []provider.Model{{Name: "llama3.1:8b"}}
			f.submit("show models")
			f.settle()
		},
		"with suggestions": func(f *fixture) {
			f.gateway.result = provider.Result{Content: "SYSTEM STATUS NOMINAL."}
			f.submit("status")
			f.settle()
		},
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, nil)
			setup(f)
			require.Nil(t, f.console.Submit("CLS"))

			require.Empty(t, f.console.Messages())
			require.Zero(t, f.console.History().Len())
			require.Empty(t, f.console.Suggestions())
			require.False(t, f.console.Busy())
			require.False(t, f.console.State().AwaitingModelSelection)
			_, ok := f.console.NextDeadline()
			require.False(t, ok)

			f.clock.Add(time.Hour)
			f.console.Advance(f.clock.now)
			require.Empty(t, f.console.Messages())
		})
	}
}

func TestStaleJobIsDropped(t *testing.T) {
	f := newFixture(t, nil)
	f.gateway.result = provider.Result{Content: "LATE."}
	job := f.console.Submit("hello")
	require.NotNil(t, job)
	f.submit("clear")

	f.console.Complete(job.Run(context.Background()))
	f.settle()
	require.Empty(t, f.console.Messages())
	require.False(t, f.console.Busy())
}

func TestEmptyModelListThenNumberIsChat(t *testing.T) {
	f := newFixture(t, nil)
	f.gateway.result = provider.Result{Content: "ACKNOWLEDGED."}
	f.submit("show models")
	f.settle()
	require.Equal(t, []string{"show models", router.ReplyNoModels}, f.contents())
	require.False(t, f.console.State().AwaitingModelSelection)

	job := f.console.Submit("1")
	require.Equal(t, router.IntentChat, job.Intent)
	f.console.Complete(job.Run(context.Background()))
	f.settle()
	require.Equal(t, "ACKNOWLEDGED.", f.contents()[3])
}

func TestModelSelection(t *testing.T) {
	f := newFixture(t, nil)
	f.gateway.models = []provider.Model{{Name: "llama3.1:8b"}, {Name: "mistral:7b"}, {Name: "phi3:mini"}}

	f.submit("show models")
	require.True(t, f.console.State().AwaitingModelSelection)
	f.submit("1")
	f.settle()
	require.Equal(t, "mistral:7b", f.settings.settings.CurrentModel)
	require.Equal(t, "MODEL UPDATED: MISTRAL:7B. NEURAL PROTOCOLS RECONFIGURED.", f.contents()[3])
	require.False(t, f.console.State().AwaitingModelSelection)

	f.submit("list models")
	f.submit("9")
	f.settle()
	require.Equal(t, router.ReplyInvalidSelection, f.contents()[7])
	require.False(t, f.console.State().AwaitingModelSelection)
	require.Equal(t, "mistral:7b", f.settings.settings.CurrentModel)
}

func TestSettingsOpensEditor(t *testing.T) {
	f := newFixture(t, nil)
	f.console.Drain()
	f.submit("settings")
	events := kinds(f.console.Drain())
	require.Contains(t, events, EventOpenSettings)
	require.Equal(t, []string{"settings", router.ReplyOpeningSettings}, f.contents())
}

func TestHistoryRecordsEveryInput(t *testing.T) {
	f := newFixture(t, nil)
	f.submit("/wiki")
	f.submit("   ")
	f.submit("/planets")
	require.Equal(t, []string{"/wiki", "/planets"}, f.console.History().Entries())
}
