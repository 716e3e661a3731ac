package router

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nostromo/mother/internal/provider"
	"github.com/nostromo/mother/internal/settings"
	"github.com/nostromo/mother/internal/typewriter"
)

// Fixed replies.
const (
	ReplyOpeningSettings  = "OPENING SYSTEM CONFIGURATION..."
	ReplyNoModels         = "NO MODELS DETECTED. SYSTEM ERROR."
	ReplyInvalidSelection = "INVALID SELECTION. OPERATION ABORTED."
	ReplyInterfaceError   = "INTERFACE ERROR. PLEASE STAND BY."
	ReplyUnknownDirective = "UNRECOGNIZED DATABASE DIRECTIVE. TYPE /WIKI FOR HELP."
)

// DefaultReplyLatency is the pause before a provider reply is shown.
const DefaultReplyLatency = time.Second

// Intent of an input line.
type Intent int

const (
	IntentRejected Intent = iota
	IntentClear
	IntentSettings
	IntentListModels
	IntentSelectModel
	IntentReference
	IntentChat
)

func (i Intent) String() string {
	switch i {
	case IntentRejected:
		return "rejected"
	case IntentClear:
		return "clear"
	case IntentSettings:
		return "settings"
	case IntentListModels:
		return "list-models"
	case IntentSelectModel:
		return "select-model"
	case IntentReference:
		return "reference"
	case IntentChat:
		return "chat"
	default:
		return "unknown"
	}
}

// State threaded through every call.
type State struct {
	AwaitingModelSelection bool
	BootInProgress         bool
	LastAvailableModels    []provider.Model
}

// Reply of the system to an input.
type Reply struct {
	Text string
	Pace typewriter.Pace
	// Latency before the reply is shown.
	Latency time.Duration
}

// Outcome of an input.
type Outcome struct {
	Intent Intent
	// Echo the input as a user message.
	Echo bool
	// Clear the session.
	Clear bool
	// OpenSettings asks the surface to show the settings editor.
	OpenSettings bool
	Reply        *Reply
}

// Gateway to the AI providers.
type Gateway interface {
	Send(ctx context.Context, text string, settings settings.Settings) (provider.Result, error)
	FetchModels(ctx context.Context, settings settings.Settings) []provider.Model
}

// Settings read and written by the router.
type Settings interface {
	Current() settings.Settings
	SetModel(ctx context.Context, model string) error
}

// Router executes console inputs.
type Router struct {
	gateway  Gateway
	settings Settings
	store    ReferenceStore
	latency  time.Duration
	logger   *zap.Logger
}

// New returns a Router.
func New(gateway Gateway, settings Settings, store ReferenceStore, latency time.Duration, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{gateway: gateway, settings: settings, store: store, latency: latency, logger: logger}
}

type route struct {
	intent Intent
	match  func(state State, input string) bool
}

// Checked in order, first match wins.
var routes = []route{
	{IntentRejected, func(state State, _ string) bool { return state.BootInProgress }},
	{IntentClear, exactly("clear", "cls")},
	{IntentSettings, exactly("settings", "config")},
	{IntentListModels, exactly("show models", "list models")},
	{IntentSelectModel, func(state State, input string) bool {
		_, err := parseSelection(input)
		return state.AwaitingModelSelection && err == nil
	}},
	{IntentReference, func(_ State, input string) bool { return isReference(input) }},
	{IntentChat, func(State, string) bool { return true }},
}

func exactly(commands ...string) func(State, string) bool {
	return func(_ State, input string) bool {
		input = strings.ToLower(input)
		for _, command := range commands {
			if input == command {
				return true
			}
		}
		return false
	}
}

func parseSelection(input string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(input))
}

// Classify an input line. Pure.
func Classify(state State, input string) Intent {
	for _, route := range routes {
		if route.match(state, input) {
			return route.intent
		}
	}
	return IntentChat
}

// Execute an input of the given intent against state. May block on the network.
func (r *Router) Execute(ctx context.Context, state State, intent Intent, input string) (State, Outcome) {
	outcome := Outcome{Intent: intent, Echo: intent != IntentRejected && intent != IntentClear}
	next := state
	if intent != IntentRejected && intent != IntentListModels {
		next.AwaitingModelSelection = false
		next.LastAvailableModels = nil
	}

	switch intent {
	case IntentRejected:
		outcome.Echo = false
	case IntentClear:
		outcome.Clear = true
	case IntentSettings:
		outcome.OpenSettings = true
		outcome.Reply = &Reply{Text: ReplyOpeningSettings, Pace: typewriter.PaceAcknowledgement}
	case IntentListModels:
		models := r.gateway.FetchModels(ctx, r.settings.Current())
		if len(models) == 0 {
			next.AwaitingModelSelection = false
			next.LastAvailableModels = nil
			outcome.Reply = &Reply{Text: ReplyNoModels}
			break
		}
		next.AwaitingModelSelection = true
		next.LastAvailableModels = models
		outcome.Reply = &Reply{Text: FormatModels(models)}
	case IntentSelectModel:
		outcome.Reply = r.selectModel(ctx, state.LastAvailableModels, input)
	case IntentReference:
		outcome.Reply = &Reply{Text: r.queryReference(input)}
	default:
		outcome.Reply = r.chat(ctx, input)
	}
	return next, outcome
}

func (r *Router) selectModel(ctx context.Context, models []provider.Model, input string) *Reply {
	index, err := parseSelection(input)
	if err != nil || index < 0 || index >= len(models) {
		return &Reply{Text: ReplyInvalidSelection}
	}
	name := models[index].Name
	if err := r.settings.SetModel(ctx, name); err != nil {
		r.logger.Error("saving model selection", zap.String("model", name), zap.Error(err))
		return &Reply{Text: fmt.Sprintf("MODEL UPDATE FAILED: %s.", strings.ToUpper(err.Error()))}
	}
	return &Reply{Text: fmt.Sprintf("MODEL UPDATED: %s. NEURAL PROTOCOLS RECONFIGURED.", strings.ToUpper(name))}
}

func (r *Router) chat(ctx context.Context, input string) *Reply {
	result, err := r.gateway.Send(ctx, input, r.settings.Current())
	if err != nil {
		r.logger.Error("sending chat message", zap.Error(err))
		return &Reply{Text: fmt.Sprintf("COMMUNICATION ERROR: %s. CHECK SYSTEM LOG FOR DETAILS.", err.Error())}
	}
	text := result.Content
	if text == "" {
		text = result.Error
	}
	if text == "" {
		text = ReplyInterfaceError
	}
	return &Reply{Text: text, Latency: r.latency}
}

// FormatModels renders the numbered model list.
func FormatModels(models []provider.Model) string {
	lines := make([]string, 0, len(models))
	for i, model := range models {
		lines = append(lines, fmt.Sprintf("[%d] %s (%sGB)", i, model.Name, model.SizeGB()))
	}
	return "AVAILABLE NEURAL MODELS:\n" + strings.Join(lines, "\n") + "\n\nENTER SELECTION NUMBER:"
}
