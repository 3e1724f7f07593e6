package httpclient

import (
	"time"
)

type Option func(*Client)

// BaseURL sets the URL every request path is resolved against.
func BaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// Timeout sets the per-request budget. Non positive values keep the default.
func Timeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// Header adds a default header sent with every request.
func Header(key, value string) Option {
	return func(c *Client) {
		c.headers.Add(key, value)
	}
}

// WithDoer replaces the underlying fasthttp client.
func WithDoer(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.doer = d
		}
	}
}

// Classifier sets the first link of the response error chain. When it returns
// an error, registered ResponseErrorInterceptors receive that error and their
// results are ignored.
func Classifier(fn ResponseErrorInterceptor) Option {
	return func(c *Client) {
		c.classifier = fn
	}
}
