// Package stream serves simulations over websocket. Every connection
// drives its own simulation instance and receives one JSON update per tick.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/chainfall/internal/core"
	"github.com/vovakirdan/chainfall/internal/games/chainfall"
	"github.com/vovakirdan/chainfall/internal/registry"
)

// Framer is a simulation that can encode its board for streaming.
type Framer interface {
	registry.Game
	Frame() chainfall.Frame
}

// Update is one message sent to a client.
type Update struct {
	Variant string          `json:"variant"`
	Seed    int64           `json:"seed"`
	Paused  bool            `json:"paused"`
	Frame   chainfall.Frame `json:"frame"`
}

// Control is a message received from a client.
//
//	{"type": "pause"} | {"type": "resume"} | {"type": "reseed", "seed": 42}
type Control struct {
	Type string `json:"type"`
	Seed int64  `json:"seed,omitempty"`
}

// Control message types.
const (
	ControlPause  = "pause"
	ControlResume = "resume"
	ControlReseed = "reseed"
)

// Config holds the server settings.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// TickRate is the number of simulation steps per second.
	TickRate int

	// Variant is used when a client does not pass ?variant=.
	Variant string

	// Logger receives connection events. A prefixed stderr logger is used when nil.
	Logger *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:  ":8080",
		TickRate: core.DefaultConfig().TickRate,
		Variant:  "chainfall",
	}
}

// Server is the websocket feed.
type Server struct {
	config   Config
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a server with the given configuration.
func NewServer(cfg Config) *Server {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.Variant == "" {
		cfg.Variant = DefaultConfig().Variant
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "chainfall-stream",
		})
	}

	return &Server{
		config: cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes: /ws for the feed and /variants for the
// list of streamable variants.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/variants", s.handleVariants)
	return mux
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// Hijacked websocket connections outlive Shutdown; deriving request
		// contexts from ctx ends their sessions too.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting stream server", "address", s.config.Address)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleVariants(w http.ResponseWriter, _ *http.Request) {
	var ids []string
	for _, info := range registry.List() {
		if _, err := s.create(info.ID); err == nil {
			ids = append(ids, info.ID)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ids); err != nil {
		s.logger.Warn("write variants", "error", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	variant := r.URL.Query().Get("variant")
	if variant == "" {
		variant = s.config.Variant
	}

	game, err := s.create(variant)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var seed int64
	if raw := r.URL.Query().Get("seed"); raw != "" {
		seed, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
	}
	seed = seedOrRandom(seed)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	remote := r.RemoteAddr
	started := time.Now()
	s.logger.Info("stream started", "remote", remote, "variant", variant, "seed", seed)

	sess := &session{
		game:    game,
		variant: variant,
		seed:    seed,
		rate:    s.config.TickRate,
	}
	err = sess.run(r.Context(), conn)
	s.logger.Info("stream ended",
		"remote", remote,
		"duration", time.Since(started).Round(time.Second),
		"tick", game.State().Tick,
		"reason", err,
	)
}

// create builds a fresh instance of a streamable variant.
func (s *Server) create(variant string) (Framer, error) {
	game, err := registry.Create(variant)
	if err != nil {
		return nil, err
	}
	framer, ok := game.(Framer)
	if !ok {
		return nil, fmt.Errorf("variant %s cannot be streamed", variant)
	}
	return framer, nil
}

// session is one connection. Only run's goroutine touches the game; the
// reader hands control messages over a channel.
type session struct {
	game    Framer
	variant string
	seed    int64
	rate    int
	paused  bool
}

func (s *session) run(ctx context.Context, conn *websocket.Conn) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	controls := make(chan Control)
	readErr := make(chan error, 1)
	go func() {
		for {
			var msg Control
			if err := conn.ReadJSON(&msg); err != nil {
				readErr <- err
				return
			}
			select {
			case controls <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	s.reset()
	if err := conn.WriteJSON(s.update()); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / time.Duration(s.rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-readErr:
			return err

		case msg := <-controls:
			s.apply(msg)
			if err := conn.WriteJSON(s.update()); err != nil {
				return err
			}

		case <-ticker.C:
			if !s.paused {
				s.game.Step()
			}
			if err := conn.WriteJSON(s.update()); err != nil {
				return err
			}
		}
	}
}

func (s *session) reset() {
	s.game.Reset(core.RuntimeConfig{
		ScreenW:  core.DefaultConfig().ScreenW,
		ScreenH:  core.DefaultConfig().ScreenH,
		TickRate: s.rate,
		Seed:     s.seed,
	})
}

// apply handles a control message. Unknown types are ignored.
func (s *session) apply(msg Control) {
	switch msg.Type {
	case ControlPause:
		s.paused = true
	case ControlResume:
		s.paused = false
	case ControlReseed:
		s.seed = seedOrRandom(msg.Seed)
		s.reset()
	}
}

// seedOrRandom treats a zero seed as a request for a time-based one.
func seedOrRandom(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

func (s *session) update() Update {
	return Update{
		Variant: s.variant,
		Seed:    s.seed,
		Paused:  s.paused,
		Frame:   s.game.Frame(),
	}
}
