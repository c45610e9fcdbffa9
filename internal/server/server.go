package server

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/cardroom/holdem/internal/game"
)

// Options configures a hosted table
type Options struct {
	Addr        string
	SmallBlind  int
	BigBlind    int
	StartStack  int
	RemoteSeats int
	MaxHands    int
	TurnTimeout time.Duration
}

// BotSeat is a locally-driven seat at the hosted table
type BotSeat struct {
	Name  string
	Agent game.Agent
}

// Server hosts one table over websockets. Remote players connect to /ws,
// take the open seats, and play against the configured bots. The game
// starts once every remote seat is filled.
type Server struct {
	opts   Options
	bots   []BotSeat
	rng    *rand.Rand
	oracle game.Oracle
	clock  quartz.Clock
	logger *log.Logger

	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions []*session
	started  bool
	ready    chan struct{}
}

// session is one connected remote player
type session struct {
	conn    *websocket.Conn
	name    string
	agent   *RemoteAgent
	writeMu sync.Mutex
}

func (s *session) send(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(v)
}

// NewServer creates a table server
func NewServer(opts Options, bots []BotSeat, rng *rand.Rand, oracle game.Oracle, logger *log.Logger) *Server {
	return &Server{
		opts:   opts,
		bots:   bots,
		rng:    rng,
		oracle: oracle,
		clock:  quartz.NewReal(),
		logger: logger.WithPrefix("server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		ready: make(chan struct{}),
	}
}

// Run serves until the table finishes or ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	if s.opts.RemoteSeats < 1 {
		return errors.New("server needs at least one remote seat")
	}
	if s.opts.RemoteSeats+len(s.bots) < 2 {
		return errors.New("a table needs at least two seats")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	httpServer := &http.Server{Addr: s.opts.Addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", "addr", s.opts.Addr, "seats", s.opts.RemoteSeats)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpServer.Shutdown(shutdownCtx)
		}()

		select {
		case <-s.ready:
		case <-ctx.Done():
			return ctx.Err()
		}
		return s.playTable(ctx)
	})

	return g.Wait()
}

// handleWebSocket upgrades a connection and seats the player
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	var hello Envelope
	if err := conn.ReadJSON(&hello); err != nil || hello.Type != TypeConnect || hello.Name == "" {
		_ = conn.WriteJSON(ErrorMsg{Type: TypeError, Error: "expected a connect message with a name"})
		_ = conn.Close()
		return
	}

	sess, err := s.seat(conn, hello.Name)
	if err != nil {
		_ = conn.WriteJSON(ErrorMsg{Type: TypeError, Error: err.Error()})
		_ = conn.Close()
		return
	}

	s.logger.Info("player connected", "player", sess.name)
	s.readLoop(sess)
}

// seat registers a session for an open remote seat
func (s *Server) seat(conn *websocket.Conn, name string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil, errors.New("the game has already started")
	}
	if len(s.sessions) >= s.opts.RemoteSeats {
		return nil, fmt.Errorf("table is full (%d seats)", s.opts.RemoteSeats)
	}
	for _, existing := range s.sessions {
		if existing.name == name {
			return nil, fmt.Errorf("name %q is taken", name)
		}
	}

	sess := &session{conn: conn, name: name}
	sess.agent = NewRemoteAgent(name, sess.send, s.opts.TurnTimeout, s.logger)
	s.sessions = append(s.sessions, sess)

	if err := sess.send(Welcome{
		Type:       TypeWelcome,
		Seat:       len(s.sessions) - 1,
		Stack:      s.opts.StartStack,
		SmallBlind: s.opts.SmallBlind,
		BigBlind:   s.opts.BigBlind,
	}); err != nil {
		return nil, err
	}

	if len(s.sessions) == s.opts.RemoteSeats {
		close(s.ready)
	}
	return sess, nil
}

// readLoop pumps client messages into the session's agent until the
// connection drops.
func (s *Server) readLoop(sess *session) {
	defer func() {
		sess.agent.Disconnect()
		_ = sess.conn.Close()
		s.logger.Info("player disconnected", "player", sess.name)
	}()

	for {
		var msg Envelope
		if err := sess.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case TypeAction:
			if err := sess.agent.HandleAction(msg); err != nil {
				s.logger.Warn("rejected client action", "player", sess.name, "error", err)
				_ = sess.send(ErrorMsg{Type: TypeError, Error: err.Error()})
			}
		default:
			_ = sess.send(ErrorMsg{Type: TypeError, Error: fmt.Sprintf("unexpected message type %q", msg.Type)})
		}
	}
}

// playTable runs the table to completion, broadcasting state after every
// street and every finished hand.
func (s *Server) playTable(ctx context.Context) error {
	s.mu.Lock()
	s.started = true
	sessions := append([]*session(nil), s.sessions...)
	s.mu.Unlock()

	table := game.NewTable(s.rng, s.opts.SmallBlind, s.opts.BigBlind, s.oracle, broadcastDisplay{s}, s.logger)
	for _, sess := range sessions {
		agent := game.NewTimeoutAgent(sess.agent, s.opts.TurnTimeout, s.clock, s.logger)
		if err := table.Seat(sess.name, s.opts.StartStack, agent); err != nil {
			return err
		}
	}
	for _, b := range s.bots {
		if err := table.Seat(b.Name, s.opts.StartStack, b.Agent); err != nil {
			return err
		}
	}

	for len(table.Players()) > 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.opts.MaxHands > 0 && table.HandsPlayed() >= s.opts.MaxHands {
			s.logger.Info("hand limit reached", "hands", table.HandsPlayed())
			return nil
		}

		result, err := table.PlayHand(ctx)
		if err != nil {
			return err
		}
		s.broadcast(newHandResult(result))
	}

	if players := table.Players(); len(players) == 1 {
		s.logger.Info("table finished", "winner", players[0].Name, "stack", players[0].Stack)
	}
	return nil
}

// broadcast sends a message to every connected session
func (s *Server) broadcast(v any) {
	s.mu.Lock()
	sessions := append([]*session(nil), s.sessions...)
	s.mu.Unlock()

	for _, sess := range sessions {
		if err := sess.send(v); err != nil {
			s.logger.Debug("broadcast failed", "player", sess.name, "error", err)
		}
	}
}

// broadcastDisplay fans table snapshots out to every client
type broadcastDisplay struct {
	server *Server
}

func (d broadcastDisplay) Observe(s game.Snapshot) {
	d.server.broadcast(newGameUpdate(s))
}
