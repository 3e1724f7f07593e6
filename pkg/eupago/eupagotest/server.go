// Package eupagotest runs the EuPago sandbox gateway in process, on an
// in-memory listener, for tests and offline use of the client.
package eupagotest

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/savioruz/eupago/config"
	router "github.com/savioruz/eupago/internal/delivery/http"
	"github.com/savioruz/eupago/internal/domains/paybylink/handler"
	"github.com/savioruz/eupago/internal/domains/paybylink/service"
	"github.com/savioruz/eupago/pkg/logger"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

const (
	DefaultAPIKey = "sandbox-api-key"

	// URL is the base URL the client must use together with Doer.
	URL = "http://eupago.sandbox/api"

	redirectBaseURL = "https://sandbox.eupago.pt/paybylink"
)

// Request is a request received by the server.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type fixed struct {
	status int
	body   string
}

type Server struct {
	ln      *fasthttputil.InmemoryListener
	app     *fiber.App
	service service.PayByLinkService

	apiKeys  []string
	logger   logger.Interface
	location *time.Location
	fixed    *fixed

	mu       sync.Mutex
	requests []Request
}

type Option func(*Server)

// WithAPIKeys replaces the accepted API keys.
func WithAPIKeys(keys ...string) Option {
	return func(s *Server) {
		s.apiKeys = keys
	}
}

func WithLogger(l logger.Interface) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithLocation sets the zone wire dates are read in. The default is UTC.
func WithLocation(loc *time.Location) Option {
	return func(s *Server) {
		s.location = loc
	}
}

// Respond makes every request answer status with body, bypassing the gateway rules.
func Respond(status int, body string) Option {
	return func(s *Server) {
		s.fixed = &fixed{status: status, body: body}
	}
}

// New starts a server. Callers must Close it.
func New(opts ...Option) *Server {
	s := &Server{
		ln:      fasthttputil.NewInmemoryListener(),
		apiKeys: []string{DefaultAPIKey},
		logger:  logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	cfg := &config.Config{
		Sandbox: config.Sandbox{
			APIKeys:         s.apiKeys,
			RedirectBaseURL: redirectBaseURL,
		},
	}

	s.service = service.New(service.Config{
		RedirectBaseURL: redirectBaseURL,
		Location:        s.location,
	}, s.logger)

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s.app.Use(s.record)

	if s.fixed != nil {
		s.app.Use(s.respond)
	}

	router.NewRouter(s.app, cfg, s.logger, router.Handlers{
		PayByLink: handler.New(s.service, s.logger),
	})

	go func() {
		_ = s.app.Listener(s.ln)
	}()

	return s
}

func (s *Server) record(c *fiber.Ctx) error {
	header := http.Header{}
	c.Request().Header.VisitAll(func(key, value []byte) {
		header.Add(string(key), string(value))
	})

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: c.Method(),
		Path:   c.Path(),
		Header: header,
		Body:   append([]byte(nil), c.Body()...),
	})
	s.mu.Unlock()

	return c.Next()
}

func (s *Server) respond(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	return c.Status(s.fixed.status).SendString(s.fixed.body)
}

// Doer returns a client that dials the server in memory.
func (s *Server) Doer() *fasthttp.Client {
	return &fasthttp.Client{
		Dial: func(string) (net.Conn, error) {
			return s.ln.Dial()
		},
	}
}

func (s *Server) Service() service.PayByLinkService {
	return s.service
}

// Requests returns a copy of the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Request(nil), s.requests...)
}

func (s *Server) Close() error {
	err := s.app.Shutdown()
	_ = s.ln.Close()

	return err
}
