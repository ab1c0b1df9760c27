package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"

	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// Websocket keepalive timing.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// ScoreSource provides the high-score list.
type ScoreSource interface {
	Load() []int
}

// RoundSource provides finished-round history.
type RoundSource interface {
	RecentRounds(limit int) ([]storage.Round, error)
	Stats() (*storage.Stats, error)
}

// Server is the HTTP front end: JSON endpoints and the spectator socket.
type Server struct {
	router   *way.Router
	hub      *Hub
	scores   ScoreSource
	rounds   RoundSource
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer wires the routes. rounds may be nil when no database is open.
func NewServer(hub *Hub, scores ScoreSource, rounds RoundSource, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		hub:    hub,
		scores: scores,
		rounds: rounds,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc("GET", "/api/highscores", s.handleHighScores)
	s.router.HandleFunc("GET", "/api/rounds", s.handleRounds)
	s.router.HandleFunc("GET", "/api/sessions", s.handleSessions)
	s.router.HandleFunc("GET", "/watch/:session", s.handleWatch)
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on addr until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("web: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHighScores(w http.ResponseWriter, r *http.Request) {
	scores := []int{}
	if s.scores != nil {
		scores = s.scores.Load()
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"highscores": scores})
}

func (s *Server) handleRounds(w http.ResponseWriter, r *http.Request) {
	if s.rounds == nil {
		s.writeError(w, http.StatusServiceUnavailable, "round history unavailable")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	rounds, err := s.rounds.RecentRounds(limit)
	if err != nil {
		s.logger.Error("cannot load rounds", "err", err)
		s.writeError(w, http.StatusInternalServerError, "cannot load rounds")
		return
	}
	stats, err := s.rounds.Stats()
	if err != nil {
		s.logger.Error("cannot load stats", "err", err)
		s.writeError(w, http.StatusInternalServerError, "cannot load stats")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"rounds": rounds, "stats": stats})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"sessions": s.hub.Sessions()})
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := way.Param(r.Context(), "session")
	snaps, cancel, ok := s.hub.Subscribe(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "no such session")
		return
	}
	defer cancel()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "session", id, "err", err)
		return
	}
	defer conn.Close()
	s.logger.Info("spectator joined", "session", id, "remote", r.RemoteAddr)

	done := make(chan struct{})
	go readPump(conn, done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case snap, ok := <-snaps:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, //nolint:errcheck
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			s.logger.Info("spectator left", "session", id)
			return
		}
	}
}

// readPump discards client messages and keeps the read deadline moving
// on pongs. It closes done when the peer goes away.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("cannot encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
