package eupago

import (
	"time"

	"github.com/savioruz/eupago/pkg/constant"
	"github.com/savioruz/eupago/pkg/httpclient"
)

type (
	RequestInterceptor       = httpclient.RequestInterceptor
	ResponseInterceptor      = httpclient.ResponseInterceptor
	ResponseErrorInterceptor = httpclient.ResponseErrorInterceptor
	Request                  = httpclient.Request
	Response                 = httpclient.Response
)

// Interceptors groups hooks registered while the client is built.
type Interceptors struct {
	OnRequest       []RequestInterceptor       `json:"onRequest" validate:"omitempty,dive,required"`
	OnResponse      []ResponseInterceptor      `json:"onResponse" validate:"omitempty,dive,required"`
	OnResponseError []ResponseErrorInterceptor `json:"onResponseError" validate:"omitempty,dive,required"`
}

// Options configures a Client. A nil IsSandbox means production.
//
// Timeout bounds each request. A zero Timeout means constant.DefaultTimeout
// (5s), not an unlimited wait; negative values fail validation.
type Options struct {
	APIKey       string        `json:"apiKey" validate:"required"`
	IsSandbox    *bool         `json:"isSandbox"`
	Timeout      time.Duration `json:"timeout" validate:"gte=0"`
	Interceptors *Interceptors `json:"interceptors" validate:"omitempty"`
}

func (o *Options) ApplyDefaults() {
	if o.IsSandbox == nil {
		sandbox := false
		o.IsSandbox = &sandbox
	}

	if o.Timeout == 0 {
		o.Timeout = constant.DefaultTimeout
	}
}

func (o Options) Sandbox() bool {
	return o.IsSandbox != nil && *o.IsSandbox
}

func (o Options) baseURL() string {
	if o.Sandbox() {
		return constant.SandboxURL
	}

	return constant.ProductionURL
}
