// Package httputil provides the HTTP transport used by registry clients.
//
// # Overview
//
// [Client] issues JSON GET requests and reports every failure as a
// structured error from package errors:
//
//   - Transport failures: NETWORK_ERROR, or TIMEOUT for deadlines
//   - 404: NOT_FOUND
//   - 401 / 403: UNAUTHORIZED / FORBIDDEN
//   - 429: RATE_LIMITED, carrying the Retry-After delay
//   - Any other non-2xx: HTTP_STATUS
//   - Undecodable bodies: DECODE_ERROR
//
// Status-derived errors wrap a [StatusError] with the status code and the
// request URL (userinfo redacted).
//
// Usage:
//
//	client := httputil.NewClient(httputil.Options{
//	    Headers: map[string]string{"Accept": "application/json"},
//	})
//	var doc map[string]any
//	err := client.Get(ctx, "https://registry.npmjs.org/express", &doc)
//
// # Retries
//
// The client does not retry. Callers see exactly one outcome per request.
//
// # Rate Limiting
//
// Set [Options.RateLimit] to cap outbound requests per second. Requests
// block until a slot is free or the context ends.
//
// # Instrumentation
//
// Each request fires the hooks registered with
// observability.SetHTTPHooks, and logs URL, status and elapsed time at debug
// level when [Options.Logger] is set.
package httputil
