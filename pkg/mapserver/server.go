package mapserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dshills/dungeonwalk/pkg/export"
	"github.com/dshills/dungeonwalk/pkg/grid"
	"github.com/dshills/dungeonwalk/pkg/mapgen"
)

// DefaultPort is the TCP port the server listens on when none is given.
const DefaultPort = 5000

// RequestMapPayload is the JSON body of a RequestMap frame.
type RequestMapPayload struct {
	Width, Height      int
	Kind               string
	Seed               *uint64
	MinRooms, MaxRooms int
}

// clientSession tracks the per-connection state the server keeps behind its
// mutex: the client's minted ID and the last map it requested.
type clientSession struct {
	id       string
	name     string
	lastGrid *grid.Grid
}

// Server is the TCP serving collaborator. It accepts connections, decodes
// wire frames, runs map generation on request, and replies with the map's
// JSON encoding.
type Server struct {
	addr     string
	listener net.Listener
	logger   *logrus.Entry

	mu      sync.Mutex
	clients map[string]*clientSession

	wg sync.WaitGroup
}

// NewServer builds a Server bound to addr (host:port form; an empty host
// binds all interfaces). addr is not dialed until Start is called.
func NewServer(addr string, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{
		addr:    addr,
		logger:  logger.WithField("component", "mapserver"),
		clients: make(map[string]*clientSession),
	}
}

// Start binds the listener and begins accepting connections. It blocks
// until ctx is canceled or the listener fails. On cancellation it closes the
// listener and waits for in-flight client goroutines to finish; an accept
// error is returned at once, without waiting for them.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("mapserver: listen %s: %w", s.addr, err)
	}
	s.listener = ln
	s.logger.WithField("addr", ln.Addr().String()).Info("listening")

	go func() {
		<-ctx.Done()
		s.logger.Info("shutdown requested, closing listener")
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				s.wg.Wait()
				return nil
			default:
				return fmt.Errorf("mapserver: accept: %w", err)
			}
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}
}

// Addr returns the address the listener is bound to, or the empty string
// before Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	id := uuid.New().String()
	session := &clientSession{id: id}
	s.addClient(session)
	defer s.removeClient(id)

	logger := s.logger.WithFields(logrus.Fields{"client": id, "remote": conn.RemoteAddr().String()})
	logger.Info("client connected")

	for {
		frame, err := ReadFrame(conn)
		if err != nil {
			logger.WithError(err).Info("client disconnected")
			return
		}

		if err := s.dispatch(conn, session, logger, frame); err != nil {
			logger.WithError(err).Warn("handling frame failed")
			s.sendError(conn, logger, err)
		}
	}
}

func (s *Server) dispatch(conn net.Conn, session *clientSession, logger *logrus.Entry, frame Frame) error {
	switch frame.Type {
	case RequestMap:
		return s.handleRequestMap(conn, session, logger, frame.Payload)
	case PlayerJoin:
		session.name = string(frame.Payload)
		logger.WithField("player", session.name).Info("player joined")
		return nil
	case PlayerLeave:
		logger.WithField("player", session.name).Info("player left")
		return nil
	case PlayerMove:
		// Movement validation and pathfinding are out of scope; the server
		// only acknowledges receipt so a client's frame sequencing stays in
		// sync.
		logger.Debug("player move received")
		return nil
	default:
		return fmt.Errorf("mapserver: unknown message type %v", frame.Type)
	}
}

func (s *Server) handleRequestMap(conn net.Conn, session *clientSession, logger *logrus.Entry, payload []byte) error {
	var req RequestMapPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("mapserver: decode RequestMap payload: %w", err)
	}

	kind, err := mapgen.ParseKind(req.Kind)
	if err != nil {
		return err
	}

	res, err := mapgen.Generate(mapgen.Params{
		Width: req.Width, Height: req.Height, Seed: req.Seed,
		Kind: kind, MinRooms: req.MinRooms, MaxRooms: req.MaxRooms,
	})
	if err != nil {
		return fmt.Errorf("mapserver: generate map: %w", err)
	}
	for _, warn := range res.Warnings {
		logger.WithField("warning", warn).Warn("generation warning")
	}

	s.mu.Lock()
	session.lastGrid = res.Grid
	s.mu.Unlock()

	data, err := export.EncodeJSONCompact(res.Grid)
	if err != nil {
		return fmt.Errorf("mapserver: encode map: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"kind": kind.String(), "width": req.Width, "height": req.Height, "seed": res.Seed,
	}).Info("generated map")

	return WriteFrame(conn, MapData, data)
}

func (s *Server) sendError(conn net.Conn, logger *logrus.Entry, cause error) {
	body, err := json.Marshal(ErrorPayload{Message: cause.Error()})
	if err != nil {
		logger.WithError(err).Error("failed to encode error payload")
		return
	}
	if err := WriteFrame(conn, ErrorMsg, body); err != nil {
		logger.WithError(err).Warn("failed to send error frame")
	}
}

func (s *Server) addClient(session *clientSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[session.id] = session
}

func (s *Server) removeClient(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, id)
}

// ClientCount returns the number of currently connected clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
