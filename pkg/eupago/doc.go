// Package eupago is a client for the EuPago pay by link API.
//
// A Client is built from Options holding the API key, the environment and the
// per-request timeout:
//
//	client, err := eupago.New(eupago.Options{
//		APIKey:    os.Getenv("EUPAGO_API_KEY"),
//		IsSandbox: &sandbox,
//	})
//
//	res, err := client.PayByLink(ctx, dto.PayByLinkRequest{...})
//
// Every error returned by the package is a *failure.Failure. Its Kind tells
// the cases apart:
//
//   - failure.KindValidation: options, request or response did not match
//     their schema. Data is keyed by field path, for example
//     "payment.amount.currency".
//   - failure.KindBusiness: EuPago answered 400 or 409. Data holds "code" and
//     "message" from the response body.
//   - failure.KindUnauthorized: EuPago answered 401.
//   - failure.KindGeneric: anything else, including network errors and
//     timeouts.
//
// Request, response and response error interceptors may be passed in
// Options.Interceptors or added later, and the Add methods return the client
// so calls can be chained. Interceptors run in registration order. The
// built-in classification is the first response error link and always decides
// the failure; response error interceptors then observe it and cannot replace
// it.
//
// A Client is safe for concurrent use. The eupagotest package provides an
// in-process sandbox for tests.
package eupago
