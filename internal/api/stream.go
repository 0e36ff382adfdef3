package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	streamWriteTimeout = 10 * time.Second
	streamPingInterval = 30 * time.Second
)

// StreamMessage is one frame on the live scorecard stream
type StreamMessage struct {
	Type   string      `json:"type"` // snapshot, update, error
	Data   interface{} `json:"data,omitempty"`
	Reason string      `json:"reason,omitempty"`
}

// handleScoreStream pushes a fresh scorecard to the client after every
// answer change on the session. A snapshot is sent on connect.
func (s *Server) handleScoreStream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		respondSessionError(w, err)
		return
	}
	if sess.IsTerminal() {
		respondError(w, http.StatusConflict, "finalized", "assessment session no longer accepts answers")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	slog.Info("scorecard stream connected", "session_id", id)

	reports, cancel := s.sessions.Watch(id)
	defer cancel()

	snapshot, err := s.sessions.Scorecard(r.Context(), id)
	if err != nil {
		s.sendStreamMessage(conn, StreamMessage{Type: "error", Reason: "failed to compute scorecard"})
		return
	}
	if !s.sendStreamMessage(conn, StreamMessage{Type: "snapshot", Data: snapshot}) {
		return
	}

	// Reader goroutine only drains control frames and detects close
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					slog.Debug("scorecard stream read ended", "session_id", id, "error", err)
				}
				return
			}
		}
	}()

	pinger := time.NewTicker(streamPingInterval)
	defer pinger.Stop()

	for {
		select {
		case report, ok := <-reports:
			if !ok {
				s.sendStreamMessage(conn, StreamMessage{Type: "error", Reason: "session closed"})
				return
			}
			if !s.sendStreamMessage(conn, StreamMessage{Type: "update", Data: report}) {
				return
			}
		case <-pinger.C:
			conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) sendStreamMessage(conn *websocket.Conn, msg StreamMessage) bool {
	conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		slog.Debug("failed to write stream message", "error", err)
		return false
	}
	return true
}
