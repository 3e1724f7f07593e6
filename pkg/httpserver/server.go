package httpserver

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	_defaultAddr            = ":8080"
	_defaultReadTimeout     = 5 * time.Second
	_defaultWriteTimeout    = 5 * time.Second
	_defaultShutdownTimeout = 3 * time.Second
)

// Server runs a fiber app in the background until Shutdown.
type Server struct {
	App    *fiber.App
	notify chan error

	address         string
	listener        net.Listener
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
}

func New(opts ...Option) *Server {
	s := &Server{
		App:             nil,
		notify:          make(chan error, 1),
		address:         _defaultAddr,
		readTimeout:     _defaultReadTimeout,
		writeTimeout:    _defaultWriteTimeout,
		shutdownTimeout: _defaultShutdownTimeout,
	}

	// Custom options
	for _, opt := range opts {
		opt(s)
	}

	if s.App == nil {
		s.App = NewApp(s.readTimeout, s.writeTimeout, s.shutdownTimeout)
	}

	return s
}

// NewApp returns a fiber app configured the way the sandbox serves.
func NewApp(readTimeout, writeTimeout, idleTimeout time.Duration) *fiber.App {
	return fiber.New(fiber.Config{
		Prefork:               false,
		DisableStartupMessage: true,
		ReadTimeout:           readTimeout,
		WriteTimeout:          writeTimeout,
		IdleTimeout:           idleTimeout,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})
}

func (s *Server) Address() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.address
}

func (s *Server) Start() {
	go func() {
		if s.listener != nil {
			s.notify <- s.App.Listener(s.listener)
		} else {
			s.notify <- s.App.Listen(s.address)
		}

		close(s.notify)
	}()
}

func (s *Server) Notify() <-chan error {
	return s.notify
}

func (s *Server) Shutdown() error {
	if err := s.App.ShutdownWithTimeout(s.shutdownTimeout); err != nil {
		return fmt.Errorf("httpserver: shutdown error: %w", err)
	}

	return nil
}
