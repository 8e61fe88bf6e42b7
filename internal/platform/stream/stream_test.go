package stream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/registry"
)

// plainGame is registered but cannot be streamed.
type plainGame struct{}

func (plainGame) ID() string               { return "stream-plain" }
func (plainGame) Title() string            { return "Plain" }
func (plainGame) Reset(core.RuntimeConfig) {}
func (plainGame) Step() core.StepResult    { return core.StepResult{} }
func (plainGame) Render(*core.Screen)      {}
func (plainGame) State() core.GameState    { return core.GameState{} }

func init() {
	registry.Register("stream-plain", func() registry.Game { return plainGame{} })
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	srv := NewServer(Config{
		TickRate: 200,
		Variant:  "chainfall",
		Logger:   log.New(io.Discard),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Update {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var u Update
	require.NoError(t, conn.ReadJSON(&u))
	return u
}

func TestStreamSendsFrames(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "?seed=42")

	first := read(t, conn)
	assert.Equal(t, "chainfall", first.Variant)
	assert.Equal(t, int64(42), first.Seed)
	assert.False(t, first.Paused)
	assert.Equal(t, 16, first.Frame.Width)
	assert.Len(t, first.Frame.Rows, first.Frame.Height)

	var last Update
	for range 10 {
		last = read(t, conn)
	}
	assert.Greater(t, last.Frame.Tick, first.Frame.Tick)
}

func TestStreamSameSeedSameFrames(t *testing.T) {
	ts := newTestServer(t)
	a := dial(t, ts, "?seed=7&variant=chainfall")
	b := dial(t, ts, "?seed=7&variant=chainfall")

	byTick := func(conn *websocket.Conn) map[uint64][]string {
		frames := make(map[uint64][]string)
		for range 40 {
			u := read(t, conn)
			frames[u.Frame.Tick] = u.Frame.Rows
		}
		return frames
	}

	fa, fb := byTick(a), byTick(b)
	compared := 0
	for tick, rows := range fa {
		if other, ok := fb[tick]; ok {
			assert.Equal(t, rows, other, "tick %d", tick)
			compared++
		}
	}
	assert.Positive(t, compared)
}

func TestStreamPauseAndResume(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "?seed=1")
	read(t, conn)

	require.NoError(t, conn.WriteJSON(Control{Type: ControlPause}))

	var paused Update
	for {
		paused = read(t, conn)
		if paused.Paused {
			break
		}
	}
	for range 5 {
		u := read(t, conn)
		assert.True(t, u.Paused)
		assert.Equal(t, paused.Frame.Tick, u.Frame.Tick)
	}

	require.NoError(t, conn.WriteJSON(Control{Type: ControlResume}))
	var resumed Update
	for range 50 {
		resumed = read(t, conn)
		if !resumed.Paused && resumed.Frame.Tick > paused.Frame.Tick {
			break
		}
	}
	assert.Greater(t, resumed.Frame.Tick, paused.Frame.Tick)
}

func TestStreamReseed(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "?seed=1")
	for range 20 {
		read(t, conn)
	}

	require.NoError(t, conn.WriteJSON(Control{Type: ControlReseed, Seed: 99}))
	var u Update
	for {
		u = read(t, conn)
		if u.Seed == 99 {
			break
		}
	}
	assert.LessOrEqual(t, u.Frame.Tick, uint64(1))
}

func TestStreamZeroSeedIsRandom(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, "?seed=0")
	first := read(t, conn)
	assert.NotZero(t, first.Seed)

	require.NoError(t, conn.WriteJSON(Control{Type: ControlReseed}))
	var u Update
	for {
		u = read(t, conn)
		if u.Seed != first.Seed {
			break
		}
	}
	assert.NotZero(t, u.Seed)
}

func TestStreamRejectsBadRequests(t *testing.T) {
	ts := newTestServer(t)
	base := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	tests := []struct {
		name  string
		query string
	}{
		{"unknown variant", "?variant=nope"},
		{"not streamable", "?variant=stream-plain"},
		{"bad seed", "?seed=abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, resp, err := websocket.DefaultDialer.Dial(base+tt.query, nil)
			require.Error(t, err)
			require.NotNil(t, resp)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestVariantsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/variants")
	require.NoError(t, err)
	defer resp.Body.Close()

	var ids []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ids))
	assert.Contains(t, ids, "chainfall")
	assert.Contains(t, ids, "chainfall_single")
	assert.NotContains(t, ids, "stream-plain")
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	srv := NewServer(Config{Address: "127.0.0.1:0", Logger: log.New(io.Discard)})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
