package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/netutil"

	"qrport/internal/httperr"
	"qrport/internal/request"
)

// ErrServerClosed is returned by the accept loop after Close.
var ErrServerClosed = errors.New("server closed")

const maxAcceptBackoff = time.Second

// Handler is called once per parsed request, from that connection's own
// goroutine. It may be called concurrently and should answer with exactly
// one of SendBytes, SendFile or NotFound.
type Handler func(req *request.Request)

type Config struct {
	// Port to listen on, on all interfaces. 0 picks a free port.
	Port uint16

	// ReadBufferSize bounds the single read each request is parsed from.
	ReadBufferSize int

	// ReadTimeout and WriteTimeout are per connection. 0 means a peer may
	// hold its connection open indefinitely.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxConns caps simultaneously open connections; further accepts wait.
	// 0 means unbounded.
	MaxConns int

	// ReusePort sets SO_REUSEPORT on the listening socket.
	ReusePort bool

	Logger *zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = request.DefaultBufferSize
	}
	if c.Logger == nil {
		nop := zerolog.Nop()
		c.Logger = &nop
	}
	return c
}

type Server struct {
	cfg     Config
	handler Handler
	log     zerolog.Logger

	mu       sync.Mutex
	listener net.Listener
	closed   atomic.Bool
}

func New(cfg Config, h Handler) *Server {
	cfg = cfg.withDefaults()
	return &Server{
		cfg:     cfg,
		handler: h,
		log:     cfg.Logger.With().Str("component", "server").Logger(),
	}
}

// Serve binds port and runs the accept loop until the process exits.
func Serve(port uint16, h Handler) error {
	return New(Config{Port: port}, h).ListenAndServe()
}

// Start binds the listener and runs the accept loop in the background.
func Start(cfg Config, h Handler) (*Server, error) {
	srv := New(cfg, h)
	if err := srv.Listen(); err != nil {
		return nil, err
	}
	go srv.Serve()
	return srv, nil
}

func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Listen binds the listening socket. A bind failure is returned as-is and
// nothing is served.
func (s *Server) Listen() error {
	lc, err := listenConfig(s.cfg.ReusePort)
	if err != nil {
		return err
	}
	ln, err := lc.Listen(context.Background(), "tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", s.cfg.Port, err)
	}
	if s.cfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConns)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	s.log.Info().Stringer("addr", ln.Addr()).Msg("listening")
	return nil
}

// Addr is the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close stops accepting. Connections already handed to a worker run to
// completion.
func (s *Server) Close() error {
	s.closed.Store(true)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	err := s.listener.Close()
	s.listener = nil
	return err
}

// Serve accepts connections one at a time and hands each to its own
// goroutine. Accept failures are logged and skipped.
func (s *Server) Serve() error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln == nil {
		return ErrServerClosed
	}

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.closed.Load() {
				return ErrServerClosed
			}
			s.log.Error().Err(err).Msg("could not accept connection")
			backoff = nextBackoff(backoff)
			time.Sleep(backoff)
			continue
		}
		backoff = 0
		go s.handle(conn)
	}
}

func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	d *= 2
	if d > maxAcceptBackoff {
		d = maxAcceptBackoff
	}
	return d
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	log := s.log.With().Str("remote", conn.RemoteAddr().String()).Logger()
	defer func() {
		if v := recover(); v != nil {
			log.Error().Interface("panic", v).Bytes("stack", debug.Stack()).Msg("handler panicked")
		}
	}()

	if s.cfg.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}
	req, err := request.ParseBuffer(conn, s.cfg.ReadBufferSize)
	if err != nil {
		log.Warn().Err(err).Stringer("kind", httperr.KindOf(err)).Msg("could not parse request")
		return
	}
	defer req.Close()

	req.Logger = log.With().Str("method", req.Method).Str("path", req.Path).Logger()
	req.Logger.Debug().Msg("request parsed")

	if s.cfg.WriteTimeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
	s.handler(req)
}
