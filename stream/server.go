package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AchrafSoltani/bounce"
	"github.com/AchrafSoltani/bounce/raster"
)

const (
	sendQueue    = 16
	writeTimeout = 5 * time.Second
)

// Server fans published states out to websocket clients. Publishing never
// blocks: a client whose queue is full misses that state.
type Server struct {
	upgrader websocket.Upgrader
	mux      *http.ServeMux
	srv      *http.Server

	mu      sync.Mutex
	clients map[*client]struct{}
	frame   *raster.Surface
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewServer creates a server. Any origin may connect.
func NewServer() *Server {
	s := &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		mux:     http.NewServeMux(),
		clients: make(map[*client]struct{}),
	}
	s.mux.HandleFunc("/ws", s.handleWS)
	s.mux.HandleFunc("/frame.png", s.handleFrame)
	return s
}

// Handler returns the HTTP handler with both endpoints.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bounce.Logger().Debug("stream request", "remote", r.RemoteAddr, "method", r.Method, "url", r.URL.String())
		s.mux.ServeHTTP(w, r)
	})
}

// ListenAndServe serves on addr until Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	s.mu.Lock()
	s.srv = &http.Server{Addr: addr, Handler: s.Handler()}
	srv := s.srv
	s.mu.Unlock()

	bounce.Logger().Info("stream listening", "addr", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server and disconnects every client.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	for c := range s.clients {
		c.conn.Close()
	}
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Publish sends st to every client.
func (s *Server) Publish(st State) {
	msg, err := json.Marshal(st)
	if err != nil {
		bounce.Logger().Warn("stream encode failed", "err", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}

// PublishFrame keeps a copy of the surface for /frame.png.
func (s *Server) PublishFrame(src *raster.Surface) {
	cp := *src
	cp.Pixels = append([]byte(nil), src.Pixels...)

	s.mu.Lock()
	s.frame = &cp
	s.mu.Unlock()
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	frame := s.frame
	s.mu.Unlock()

	if frame == nil {
		http.Error(w, "no frame yet", http.StatusNotFound)
		return
	}
	var buf bytes.Buffer
	if err := bounce.WritePNG(&buf, frame); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if _, ok := err.(websocket.HandshakeError); !ok {
			bounce.Logger().Warn("websocket upgrade failed", "err", err)
		}
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendQueue)}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	n := len(s.clients)
	s.mu.Unlock()
	bounce.Logger().Info("stream client connected", "remote", r.RemoteAddr, "clients", n)

	go s.writePump(c)
	s.readPump(c)
}

// readPump discards client messages and unregisters the client when the
// connection ends.
func (s *Server) readPump(c *client) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		close(c.send)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				bounce.Logger().Warn("stream client error", "err", err)
			}
			return
		}
	}
}

func (s *Server) writePump(c *client) {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.conn.Close()
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
