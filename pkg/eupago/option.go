package eupago

import (
	"github.com/savioruz/eupago/pkg/httpclient"
	"github.com/savioruz/eupago/pkg/logger"
)

type Option func(*Client)

// WithLogger sets the sink for validation failures and call outcomes.
func WithLogger(l logger.Interface) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDoer replaces the fasthttp client used for transport.
func WithDoer(d httpclient.Doer) Option {
	return func(c *Client) {
		c.doer = d
	}
}

// WithBaseURL overrides the environment URL chosen from Options.IsSandbox.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}
