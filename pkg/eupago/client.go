package eupago

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/savioruz/eupago/pkg/constant"
	"github.com/savioruz/eupago/pkg/eupago/dto"
	"github.com/savioruz/eupago/pkg/failure"
	"github.com/savioruz/eupago/pkg/httpclient"
	"github.com/savioruz/eupago/pkg/logger"
	"github.com/savioruz/eupago/pkg/validation"
	"github.com/valyala/fasthttp"
)

const (
	DefaultMessage      = "EuPago With Api Key Client Unexpected Error"
	BusinessMessage     = "EuPago business error"
	UnauthorizedMessage = "EuPago unauthorized"

	msgParseOptions       = "Error when parsing client options"
	msgParseRequest       = "Error when parsing request payload for pay by link"
	msgParseResponse      = "Error when parsing response from EuPago"
	msgParseBusinessError = "Error when parsing business error response from EuPago"

	msgParseOnRequest       = "Error when parsing interceptor on request"
	msgParseOnResponse      = "Error when parsing interceptor on response"
	msgParseOnResponseError = "Error when parsing interceptor on response error"
)

// Client calls the EuPago pay by link API with an API key.
type Client struct {
	options   Options
	http      *httpclient.Client
	validator *validation.Validator
	logger    logger.Interface

	doer    httpclient.Doer
	baseURL string
}

// New validates opts and builds a client. The auth header interceptor and the
// status classifier are installed ahead of any interceptor from
// opts.Interceptors.
func New(opts Options, clientOpts ...Option) (*Client, error) {
	c := &Client{
		logger: logger.Nop(),
	}

	for _, opt := range clientOpts {
		opt(c)
	}

	c.validator = validation.New(c.logger)

	parsed, err := validation.Struct(c.validator, opts, msgParseOptions)
	if err != nil {
		return nil, err
	}

	c.options = parsed

	if c.baseURL == "" {
		c.baseURL = parsed.baseURL()
	}

	c.http = httpclient.New(
		httpclient.BaseURL(c.baseURL),
		httpclient.Timeout(parsed.Timeout),
		httpclient.Header(constant.HeaderContentType, constant.MIMEApplicationJSON),
		httpclient.WithDoer(c.doer),
		httpclient.Classifier(c.classify),
	)

	c.http.UseRequest(c.authorize)

	if ic := parsed.Interceptors; ic != nil {
		for _, fn := range ic.OnRequest {
			c.http.UseRequest(fn)
		}

		for _, fn := range ic.OnResponse {
			c.http.UseResponse(fn)
		}

		for _, fn := range ic.OnResponseError {
			c.http.UseResponseError(fn)
		}
	}

	return c, nil
}

// BaseURL returns the environment URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request budget.
func (c *Client) Timeout() time.Duration {
	return c.options.Timeout
}

// AddOnRequestInterceptor appends fn to the hooks run before transmission and
// returns the client for chaining.
func (c *Client) AddOnRequestInterceptor(fn RequestInterceptor) (*Client, error) {
	if err := c.validator.Var(fn, "required", msgParseOnRequest); err != nil {
		return nil, err
	}

	c.http.UseRequest(fn)

	return c, nil
}

// AddOnResponseInterceptor appends fn to the hooks run on successful responses.
func (c *Client) AddOnResponseInterceptor(fn ResponseInterceptor) (*Client, error) {
	if err := c.validator.Var(fn, "required", msgParseOnResponse); err != nil {
		return nil, err
	}

	c.http.UseResponse(fn)

	return c, nil
}

// AddOnResponseErrorInterceptor appends fn to the hooks run on failed calls.
// The built-in classifier runs first and always decides the returned failure.
// Hooks run after it in registration order and receive that failure; their
// return values are ignored.
func (c *Client) AddOnResponseErrorInterceptor(fn ResponseErrorInterceptor) (*Client, error) {
	if err := c.validator.Var(fn, "required", msgParseOnResponseError); err != nil {
		return nil, err
	}

	c.http.UseResponseError(fn)

	return c, nil
}

// PayByLink creates a payment link. Invalid requests fail before any network
// activity.
func (c *Client) PayByLink(ctx context.Context, req dto.PayByLinkRequest) (res dto.PayByLinkResponse, err error) {
	parsed, err := validation.Struct(c.validator, req, msgParseRequest)
	if err != nil {
		return res, err
	}

	callID := uuid.NewString()
	started := time.Now()

	c.logger.Debug("eupago - PayByLink - call %s started", callID)

	resp, err := c.http.PostJSON(ctx, constant.PathPayByLinkCreate, dto.SerializePayByLinkRequest(parsed))
	if err != nil {
		f := asFailure(err)
		c.logger.Error("eupago - PayByLink - call %s failed: %v", callID, f)

		return res, f
	}

	res, err = validation.Decode[dto.PayByLinkResponse](c.validator, resp.Body, msgParseResponse)
	if err != nil {
		return res, err
	}

	c.logger.Info("eupago - PayByLink - call %s created transaction %s in %dms", callID, res.TransactionID, time.Since(started).Milliseconds())

	return res, nil
}

func (c *Client) authorize(_ context.Context, req *httpclient.Request) (*httpclient.Request, error) {
	req.Header.Set(constant.HeaderAuthorization, constant.AuthorizationScheme+" "+c.options.APIKey)

	return req, nil
}

// classify maps a failed call to the failure taxonomy. It always returns an error.
func (c *Client) classify(_ context.Context, resp *httpclient.Response, err error) error {
	if resp != nil {
		switch resp.StatusCode {
		case fasthttp.StatusBadRequest, fasthttp.StatusConflict:
			body, perr := validation.Decode[dto.PayByLinkErrorResponse](c.validator, resp.Body, msgParseBusinessError)
			if perr != nil {
				return perr
			}

			return failure.Business(BusinessMessage).
				WithData("code", body.Code).
				WithData("message", body.Text).
				WithCause(err)
		case fasthttp.StatusUnauthorized:
			return failure.Unauthorized(UnauthorizedMessage).WithCause(err)
		}
	}

	return failure.Generic(DefaultMessage).WithCause(err)
}

func asFailure(err error) *failure.Failure {
	if f, ok := failure.As(err); ok {
		return f
	}

	return failure.Generic(DefaultMessage).WithCause(err)
}
