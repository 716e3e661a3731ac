package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nostromo/mother/internal/console"
	"github.com/nostromo/mother/internal/provider"
	"github.com/nostromo/mother/internal/router"
	"github.com/nostromo/mother/internal/settings"
	"github.com/nostromo/mother/internal/transcript"
	"github.com/nostromo/mother/internal/wiki"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"), goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

type fakeGateway struct{}

func (fakeGateway) Send(context.Context, string, settings.Settings) (provider.Result, error) {
	return provider.Result{Content: "ACKNOWLEDGED."}, nil
}

func (fakeGateway) FetchModels(context.Context, settings.Settings) []provider.Model { return nil }

type staticSettings struct{}

func (staticSettings) Current() settings.Settings { return settings.Default() }

func (staticSettings) SetModel(context.Context, string) error { return nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := wiki.NewSeededStore()
	require.NoError(t, err)
	executor := router.New(fakeGateway{}, staticSettings{}, store, time.Millisecond, nil)
	newConsole := func() *console.Console {
		config := console.Config{BootItems: []string{"INTERFACE 2037 READY"}, BootInterval: time.Millisecond}
		return console.New(executor, staticSettings{}, console.SystemClock{}, config)
	}
	server := httptest.NewServer(New(store, newConsole, nil).Handler())
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, status int, payload any) {
	t.Helper()
	response, err := http.Get(url)
	require.NoError(t, err)
	defer response.Body.Close()
	require.Equal(t, status, response.StatusCode)
	require.Equal(t, "application/json", response.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(response.Body).Decode(payload))
}

func TestCounts(t *testing.T) {
	server := newTestServer(t)
	var response countsResponse
	getJSON(t, server.URL+"/api/wiki", http.StatusOK, &response)
	expected := map[string]int{"planets": 1, "aliens": 3, "characters": 1, "organizations": 2, "spaceships": 1, "movies": 1}
	if diff := cmp.Diff(expected, response.Counts); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}
	require.Equal(t, 9, response.Total)
}

func TestKind(t *testing.T) {
	server := newTestServer(t)
	var response struct {
		Kind    string           `json:"kind"`
		Records []map[string]any `json:"records"`
	}
	getJSON(t, server.URL+"/api/wiki/planets?q=acheron", http.StatusOK, &response)
	require.Equal(t, "planet", response.Kind)
	require.Len(t, response.Records, 1)
	require.Equal(t, "lv-426", response.Records[0]["id"])

	getJSON(t, server.URL+"/api/wiki/planets?q=nonexistent%20world", http.StatusOK, &response)
	require.Empty(t, response.Records)

	var failure errorResponse
	getJSON(t, server.URL+"/api/wiki/droids", http.StatusNotFound, &failure)
	require.Equal(t, "unknown kind", failure.Error)
}

func TestSearch(t *testing.T) {
	server := newTestServer(t)
	var response struct {
		Results []struct {
			Kind   string         `json:"kind"`
			Record map[string]any `json:"record"`
		} `json:"results"`
	}
	getJSON(t, server.URL+"/api/search?franchise=alien:+earth", http.StatusOK, &response)
	var ids []string
	for _, result := range response.Results {
		ids = append(ids, result.Record["id"].(string))
	}
	require.ElementsMatch(t, []string{"prodigy-corporation", "cyborg"}, ids)

	var failure errorResponse
	getJSON(t, server.URL+"/api/search?kind=droids", http.StatusBadRequest, &failure)
}

func readUntil(t *testing.T, conn *websocket.Conn, match func(console.Event) bool) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var event console.Event
		require.NoError(t, conn.ReadJSON(&event))
		if match(event) {
			return
		}
	}
}

func TestConsoleSession(t *testing.T) {
	server := newTestServer(t)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/console"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var boot []string
	readUntil(t, conn, func(event console.Event) bool {
		if event.Kind == console.EventMessage {
			boot = append(boot, event.Message.Content)
		}
		return event.Kind == console.EventBootComplete
	})
	require.Equal(t, []string{"INTERFACE 2037 READY"}, boot)

	// The second frame arrives while the first is still being answered.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("status report")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("/planets lv-426")))
	var replies []string
	readUntil(t, conn, func(event console.Event) bool {
		require.NotEqual(t, console.EventRejected, event.Kind, "input %q was dropped", event.Input)
		if event.Kind == console.EventMessage && event.Message.Sender == transcript.SenderMother {
			replies = append(replies, event.Message.Content)
		}
		return event.Kind == console.EventRevealDone && len(replies) == 2
	})
	require.Equal(t, "ACKNOWLEDGED.", replies[0])
	require.True(t, strings.HasPrefix(replies[1], "PLANET RECORD: LV-426 (ACHERON)"))

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
}

func TestServeStopsWithContext(t *testing.T) {
	store, err := wiki.NewSeededStore()
	require.NoError(t, err)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(store, nil, nil).Serve(ctx, addr) }()

	require.Eventually(t, func() bool {
		response, err := http.Get("http://" + addr + "/api/wiki")
		if err != nil {
			return false
		}
		response.Body.Close()
		return response.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
