package eupago

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/savioruz/eupago/pkg/constant"
	"github.com/savioruz/eupago/pkg/eupago/dto"
	"github.com/savioruz/eupago/pkg/eupago/eupagotest"
	"github.com/savioruz/eupago/pkg/failure"
	log "github.com/savioruz/eupago/pkg/logger/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.uber.org/mock/gomock"
)

func boolPtr(b bool) *bool {
	return &b
}

func validRequest() dto.PayByLinkRequest {
	return dto.PayByLinkRequest{
		Payment: dto.Payment{
			SuccessURL:     "https://shop.example.com/success",
			Amount:         dto.Amount{Currency: constant.CurrencyEUR, Value: 10.5},
			Lang:           constant.LanguagePT,
			ExpirationDate: time.Date(2099, time.December, 31, 23, 59, 59, 0, time.UTC),
		},
		Products: []dto.Product{
			{Name: "T-shirt", Value: 10.5, Quantity: 1},
		},
		Customer: &dto.Customer{Name: "Ana", Email: "ana@example.com"},
	}
}

func newSandboxClient(t *testing.T, srv *eupagotest.Server, opts Options) *Client {
	t.Helper()

	if opts.APIKey == "" {
		opts.APIKey = eupagotest.DefaultAPIKey
	}

	c, err := New(opts, WithDoer(srv.Doer()), WithBaseURL(eupagotest.URL))
	require.NoError(t, err)

	return c
}

func startServer(t *testing.T, opts ...eupagotest.Option) *eupagotest.Server {
	t.Helper()

	srv := eupagotest.New(opts...)
	t.Cleanup(func() {
		_ = srv.Close()
	})

	return srv
}

func requireFailure(t *testing.T, err error, kind failure.Kind) *failure.Failure {
	t.Helper()

	f, ok := failure.As(err)
	require.True(t, ok, "expected *failure.Failure, got %v", err)
	require.Equal(t, kind, f.Kind, f.String())

	return f
}

func TestNew(t *testing.T) {
	t.Run("success: sandbox environment", func(t *testing.T) {
		c, err := New(Options{APIKey: "key", IsSandbox: boolPtr(true)})

		require.NoError(t, err)
		assert.Equal(t, constant.SandboxURL, c.BaseURL())
		assert.Equal(t, constant.DefaultTimeout, c.Timeout())
	})

	t.Run("success: production when sandbox is absent or false", func(t *testing.T) {
		for _, sandbox := range []*bool{nil, boolPtr(false)} {
			c, err := New(Options{APIKey: "key", IsSandbox: sandbox})

			require.NoError(t, err)
			assert.Equal(t, constant.ProductionURL, c.BaseURL())
		}
	})

	t.Run("success: custom timeout", func(t *testing.T) {
		c, err := New(Options{APIKey: "key", Timeout: 250 * time.Millisecond})

		require.NoError(t, err)
		assert.Equal(t, 250*time.Millisecond, c.Timeout())
	})

	t.Run("error: missing api key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockLogger := log.NewMockInterface(ctrl)

		mockLogger.EXPECT().Error(gomock.Any()).Times(1)

		c, err := New(Options{}, WithLogger(mockLogger))

		assert.Nil(t, c)

		f := requireFailure(t, err, failure.KindValidation)
		assert.Equal(t, "Error when parsing client options", f.Message)
		assert.Equal(t, []string{"apiKey"}, f.Keys())
		assert.Equal(t, []string{"apiKey is a required field"}, f.Values("apiKey"))
	})

	t.Run("error: negative timeout", func(t *testing.T) {
		_, err := New(Options{APIKey: "key", Timeout: -time.Second})

		f := requireFailure(t, err, failure.KindValidation)
		assert.Equal(t, []string{"timeout"}, f.Keys())
	})

	t.Run("error: nil interceptor in bundle", func(t *testing.T) {
		_, err := New(Options{
			APIKey: "key",
			Interceptors: &Interceptors{
				OnRequest: []RequestInterceptor{nil},
			},
		})

		f := requireFailure(t, err, failure.KindValidation)
		assert.Equal(t, []string{"interceptors.onRequest.0"}, f.Keys())
	})
}

func TestClient_AddInterceptors(t *testing.T) {
	c, err := New(Options{APIKey: "key"})
	require.NoError(t, err)

	t.Run("error: nil request interceptor", func(t *testing.T) {
		same, err := c.AddOnRequestInterceptor(nil)
		assert.Nil(t, same)

		f := requireFailure(t, err, failure.KindValidation)

		assert.Equal(t, "Error when parsing interceptor on request", f.Message)
		assert.Equal(t, []string{"root"}, f.Keys())
	})

	t.Run("error: nil response interceptor", func(t *testing.T) {
		same, err := c.AddOnResponseInterceptor(nil)
		assert.Nil(t, same)

		f := requireFailure(t, err, failure.KindValidation)

		assert.Equal(t, "Error when parsing interceptor on response", f.Message)
	})

	t.Run("error: nil response error interceptor", func(t *testing.T) {
		same, err := c.AddOnResponseErrorInterceptor(nil)
		assert.Nil(t, same)

		f := requireFailure(t, err, failure.KindValidation)

		assert.Equal(t, "Error when parsing interceptor on response error", f.Message)
	})

	t.Run("success: registration returns the client for chaining", func(t *testing.T) {
		same, err := c.AddOnRequestInterceptor(func(_ context.Context, r *Request) (*Request, error) { return r, nil })
		require.NoError(t, err)
		assert.Same(t, c, same)

		same, err = same.AddOnResponseInterceptor(func(_ context.Context, r *Response) (*Response, error) { return r, nil })
		require.NoError(t, err)
		assert.Same(t, c, same)

		same, err = same.AddOnResponseErrorInterceptor(func(context.Context, *Response, error) error { return nil })
		require.NoError(t, err)
		assert.Same(t, c, same)
	})
}

func TestClient_PayByLink(t *testing.T) {
	ctx := context.Background()

	t.Run("success: creates a link on the sandbox", func(t *testing.T) {
		srv := startServer(t)
		c := newSandboxClient(t, srv, Options{})

		res, err := c.PayByLink(ctx, validRequest())

		require.NoError(t, err)
		assert.Equal(t, constant.TransactionStatusSuccess, res.TransactionStatus)
		assert.Equal(t, constant.LinkStatusPending, res.Status)
		assert.NotEmpty(t, res.TransactionID)
		assert.NotEmpty(t, res.RedirectURL)

		requests := srv.Requests()
		require.Len(t, requests, 1)

		sent := requests[0]
		assert.Equal(t, fasthttp.MethodPost, sent.Method)
		assert.Equal(t, "/api/v1.02/paybylink/create", sent.Path)
		assert.Equal(t, "ApiKey "+eupagotest.DefaultAPIKey, sent.Header.Get(constant.HeaderAuthorization))
		assert.Equal(t, constant.MIMEApplicationJSON, sent.Header.Get(constant.HeaderContentType))

		var body map[string]any
		require.NoError(t, json.Unmarshal(sent.Body, &body))

		payment, ok := body["payment"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "2099-12-31 23:59:59", payment["expirationDate"])

		customer, ok := body["customer"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, false, customer["notify"])
	})

	t.Run("success: caller request is not modified", func(t *testing.T) {
		srv := startServer(t)
		c := newSandboxClient(t, srv, Options{})

		req := validRequest()

		_, err := c.PayByLink(ctx, req)

		require.NoError(t, err)
		assert.Nil(t, req.Customer.Notify)
	})

	t.Run("error: invalid request never reaches the network", func(t *testing.T) {
		srv := startServer(t)

		ctrl := gomock.NewController(t)
		mockLogger := log.NewMockInterface(ctrl)

		mockLogger.EXPECT().Error(gomock.Any()).Times(1)

		c, err := New(Options{APIKey: eupagotest.DefaultAPIKey}, WithDoer(srv.Doer()), WithBaseURL(eupagotest.URL), WithLogger(mockLogger))
		require.NoError(t, err)

		req := validRequest()
		req.Payment.Amount.Currency = "USD"

		_, err = c.PayByLink(ctx, req)

		f := requireFailure(t, err, failure.KindValidation)
		assert.Equal(t, "Error when parsing request payload for pay by link", f.Message)
		assert.Equal(t, []string{"currency must be one of [EUR]"}, f.Values("payment.amount.currency"))
		assert.Empty(t, srv.Requests())
	})

	t.Run("error: unknown api key is unauthorized", func(t *testing.T) {
		srv := startServer(t)
		c := newSandboxClient(t, srv, Options{APIKey: "wrong"})

		_, err := c.PayByLink(ctx, validRequest())

		f := requireFailure(t, err, failure.KindUnauthorized)
		assert.Equal(t, UnauthorizedMessage, f.Message)
	})

	t.Run("error: duplicated link is a business failure", func(t *testing.T) {
		srv := startServer(t)
		c := newSandboxClient(t, srv, Options{})

		_, err := c.PayByLink(ctx, validRequest())
		require.NoError(t, err)

		_, err = c.PayByLink(ctx, validRequest())

		f := requireFailure(t, err, failure.KindBusiness)
		assert.Equal(t, BusinessMessage, f.Message)
		assert.Equal(t, []string{"DUPLICATED_PAYMENT"}, f.Values("code"))
	})

	t.Run("error: bad request carries code and message", func(t *testing.T) {
		srv := startServer(t, eupagotest.Respond(fasthttp.StatusBadRequest,
			`{"transactionStatus":"Rejected","code":"INVALID_AMOUNT","text":"amount too low"}`))
		c := newSandboxClient(t, srv, Options{})

		_, err := c.PayByLink(ctx, validRequest())

		f := requireFailure(t, err, failure.KindBusiness)
		assert.Equal(t, map[string][]string{
			"code":    {"INVALID_AMOUNT"},
			"message": {"amount too low"},
		}, f.Data())
	})

	t.Run("error: malformed business error body", func(t *testing.T) {
		srv := startServer(t, eupagotest.Respond(fasthttp.StatusConflict, `{"text":"no code"}`))
		c := newSandboxClient(t, srv, Options{})

		_, err := c.PayByLink(ctx, validRequest())

		f := requireFailure(t, err, failure.KindValidation)
		assert.Equal(t, "Error when parsing business error response from EuPago", f.Message)
		assert.Equal(t, []string{"transactionStatus", "code"}, f.Keys())
	})

	t.Run("error: server error is generic", func(t *testing.T) {
		srv := startServer(t, eupagotest.Respond(fasthttp.StatusInternalServerError, `{}`))
		c := newSandboxClient(t, srv, Options{})

		_, err := c.PayByLink(ctx, validRequest())

		f := requireFailure(t, err, failure.KindGeneric)
		assert.Equal(t, DefaultMessage, f.Message)
		assert.False(t, f.HasData())
	})

	t.Run("error: non conforming success body", func(t *testing.T) {
		srv := startServer(t, eupagotest.Respond(fasthttp.StatusOK, `{"transactionStatus":"Success","redirectUrl":"not a url"}`))
		c := newSandboxClient(t, srv, Options{})

		_, err := c.PayByLink(ctx, validRequest())

		f := requireFailure(t, err, failure.KindValidation)
		assert.Equal(t, "Error when parsing response from EuPago", f.Message)
		assert.Equal(t, []string{"transactionID", "status", "redirectUrl"}, f.Keys())
	})

	t.Run("error: network failure is generic", func(t *testing.T) {
		c, err := New(Options{APIKey: "key"}, WithDoer(&fasthttp.Client{
			Dial: func(string) (net.Conn, error) {
				return nil, errors.New("connection refused")
			},
		}))
		require.NoError(t, err)

		_, err = c.PayByLink(ctx, validRequest())

		f := requireFailure(t, err, failure.KindGeneric)
		assert.Equal(t, DefaultMessage, f.Message)
	})
}

func TestClient_Interceptors(t *testing.T) {
	ctx := context.Background()

	t.Run("success: each interceptor runs once in registration order", func(t *testing.T) {
		srv := startServer(t)

		var order []string

		mark := func(name string) RequestInterceptor {
			return func(_ context.Context, r *Request) (*Request, error) {
				order = append(order, name)
				r.Header.Add("X-Trace", name)

				return r, nil
			}
		}

		c := newSandboxClient(t, srv, Options{
			Interceptors: &Interceptors{
				OnRequest: []RequestInterceptor{mark("bundle")},
				OnResponse: []ResponseInterceptor{func(_ context.Context, r *Response) (*Response, error) {
					order = append(order, "response")

					return r, nil
				}},
			},
		})

		_, err := c.AddOnRequestInterceptor(mark("added"))
		require.NoError(t, err)

		_, err = c.PayByLink(ctx, validRequest())

		require.NoError(t, err)
		assert.Equal(t, []string{"bundle", "added", "response"}, order)

		requests := srv.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, []string{"bundle", "added"}, requests[0].Header.Values("X-Trace"))
	})

	t.Run("success: response error interceptor sees the failed response", func(t *testing.T) {
		srv := startServer(t)
		c := newSandboxClient(t, srv, Options{APIKey: "wrong"})

		var statuses []int

		var observed []failure.Kind

		_, err := c.AddOnResponseErrorInterceptor(func(_ context.Context, r *Response, err error) error {
			statuses = append(statuses, r.StatusCode)
			observed = append(observed, failure.GetKind(err))

			return nil
		})
		require.NoError(t, err)

		_, err = c.PayByLink(ctx, validRequest())

		requireFailure(t, err, failure.KindUnauthorized)
		assert.Equal(t, []int{fasthttp.StatusUnauthorized}, statuses)
		assert.Equal(t, []failure.Kind{failure.KindUnauthorized}, observed)
	})

	t.Run("error: response error interceptor cannot replace classification", func(t *testing.T) {
		tests := []struct {
			name    string
			options []eupagotest.Option
			apiKey  string
			kind    failure.Kind
		}{
			{name: "unauthorized", apiKey: "wrong", kind: failure.KindUnauthorized},
			{
				name: "bad request",
				options: []eupagotest.Option{eupagotest.Respond(fasthttp.StatusBadRequest,
					`{"transactionStatus":"Rejected","code":"INVALID_AMOUNT","text":"amount too low"}`)},
				kind: failure.KindBusiness,
			},
			{
				name: "conflict",
				options: []eupagotest.Option{eupagotest.Respond(fasthttp.StatusConflict,
					`{"transactionStatus":"Rejected","code":"DUPLICATED_PAYMENT","text":"duplicated"}`)},
				kind: failure.KindBusiness,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				srv := startServer(t, tt.options...)
				c := newSandboxClient(t, srv, Options{APIKey: tt.apiKey})

				custom := errors.New("custom")
				calls := 0

				_, err := c.AddOnResponseErrorInterceptor(func(context.Context, *Response, error) error {
					calls++

					return custom
				})
				require.NoError(t, err)

				_, err = c.PayByLink(ctx, validRequest())

				requireFailure(t, err, tt.kind)
				assert.NotErrorIs(t, err, custom)
				assert.Equal(t, 1, calls)
			})
		}
	})

	t.Run("error: request interceptor failure aborts the call", func(t *testing.T) {
		srv := startServer(t)
		c := newSandboxClient(t, srv, Options{})

		_, err := c.AddOnRequestInterceptor(func(context.Context, *Request) (*Request, error) {
			return nil, errors.New("blocked")
		})
		require.NoError(t, err)

		_, err = c.PayByLink(ctx, validRequest())

		requireFailure(t, err, failure.KindGeneric)
		assert.Empty(t, srv.Requests())
	})
}
