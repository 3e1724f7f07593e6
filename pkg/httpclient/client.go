package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	_defaultTimeout = 5 * time.Second
	_defaultName    = "eupago-go"
)

// Doer is the part of *fasthttp.Client the transport needs.
type Doer interface {
	DoDeadline(req *fasthttp.Request, resp *fasthttp.Response, deadline time.Time) error
}

// Request is the outgoing request handed to request interceptors.
type Request struct {
	Method string
	Path   string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is a received response, whatever its status.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Request    *Request
}

type (
	RequestInterceptor       func(ctx context.Context, req *Request) (*Request, error)
	ResponseInterceptor      func(ctx context.Context, resp *Response) (*Response, error)
	ResponseErrorInterceptor func(ctx context.Context, resp *Response, err error) error
)

// Error is returned when no usable response was obtained. Response is nil
// when the failure happened before a response arrived.
type Error struct {
	Response *Response
	Err      error
}

func (e *Error) Error() string {
	if e.Response != nil {
		return fmt.Sprintf("httpclient: unexpected status %d: %v", e.Response.StatusCode, e.Err)
	}

	return fmt.Sprintf("httpclient: no response: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client is a JSON oriented HTTP client with ordered interceptor chains.
// It is safe for concurrent use.
type Client struct {
	doer       Doer
	baseURL    string
	timeout    time.Duration
	headers    http.Header
	classifier ResponseErrorInterceptor

	mu              sync.RWMutex
	onRequest       []RequestInterceptor
	onResponse      []ResponseInterceptor
	onResponseError []ResponseErrorInterceptor
}

func New(opts ...Option) *Client {
	c := &Client{
		baseURL: "",
		timeout: _defaultTimeout,
		headers: http.Header{},
	}

	// Custom options
	for _, opt := range opts {
		opt(c)
	}

	if c.doer == nil {
		c.doer = &fasthttp.Client{
			Name: _defaultName,
		}
	}

	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

func (c *Client) UseRequest(fn RequestInterceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onRequest = append(c.onRequest, fn)
}

func (c *Client) UseResponse(fn ResponseInterceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onResponse = append(c.onResponse, fn)
}

func (c *Client) UseResponseError(fn ResponseErrorInterceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onResponseError = append(c.onResponseError, fn)
}

func (c *Client) snapshot() ([]RequestInterceptor, []ResponseInterceptor, []ResponseErrorInterceptor) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]RequestInterceptor(nil), c.onRequest...),
		append([]ResponseInterceptor(nil), c.onResponse...),
		append([]ResponseErrorInterceptor(nil), c.onResponseError...)
}

// PostJSON marshals in and posts it to p.
func (c *Client) PostJSON(ctx context.Context, p string, in any) (*Response, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("httpclient: marshal body: %w", err)
	}

	return c.Do(ctx, fasthttp.MethodPost, p, body)
}

// Do runs the request interceptors, sends the request and runs the response
// or response error interceptors depending on the outcome. Any non 2xx status
// is a failure.
func (c *Client) Do(ctx context.Context, method, p string, body []byte) (*Response, error) {
	full, err := joinURL(c.baseURL, p)
	if err != nil {
		return nil, err
	}

	onRequest, onResponse, onResponseError := c.snapshot()

	req := &Request{
		Method: method,
		Path:   p,
		URL:    full,
		Header: c.headers.Clone(),
		Body:   body,
	}

	for _, fn := range onRequest {
		if req, err = fn(ctx, req); err != nil {
			return nil, err
		}

		if req == nil {
			return nil, errors.New("httpclient: request interceptor returned no request")
		}
	}

	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, c.handleError(ctx, onResponseError, nil, &Error{Err: err})
	}

	if resp.StatusCode < fasthttp.StatusOK || resp.StatusCode >= fasthttp.StatusMultipleChoices {
		statusErr := fmt.Errorf("%s %s: %s", req.Method, req.URL, http.StatusText(resp.StatusCode))

		return nil, c.handleError(ctx, onResponseError, resp, &Error{Response: resp, Err: statusErr})
	}

	for _, fn := range onResponse {
		if resp, err = fn(ctx, resp); err != nil {
			return nil, err
		}

		if resp == nil {
			return nil, errors.New("httpclient: response interceptor returned no response")
		}
	}

	return resp, nil
}

// handleError runs the classifier first. Once it returns an error the
// interceptors only observe that error. Without a classified error the first
// interceptor returning one wins.
func (c *Client) handleError(ctx context.Context, chain []ResponseErrorInterceptor, resp *Response, cause *Error) error {
	if c.classifier != nil {
		if classified := c.classifier(ctx, resp, cause); classified != nil {
			for _, fn := range chain {
				_ = fn(ctx, resp, classified)
			}

			return classified
		}
	}

	for _, fn := range chain {
		if err := fn(ctx, resp, cause); err != nil {
			return err
		}
	}

	return cause
}

func (c *Client) send(ctx context.Context, r *Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(r.URL)
	req.Header.SetMethod(r.Method)

	for key, values := range r.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	req.SetBody(r.Body)

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.doer.DoDeadline(req, resp, deadline); err != nil {
		return nil, err
	}

	header := http.Header{}
	resp.Header.VisitAll(func(key, value []byte) {
		header.Add(string(key), string(value))
	})

	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     header,
		Body:       append([]byte(nil), resp.Body()...),
		Request:    r,
	}, nil
}

func joinURL(base string, p string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("httpclient: invalid base url %q: %w", base, err)
	}

	u.Path = path.Join("/", u.Path, p)

	return u.String(), nil
}
