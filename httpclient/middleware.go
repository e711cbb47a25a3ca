package httpclient

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// APIKeyHeader is the header that the user API reads its access key from.
const APIKeyHeader = "x-api-key"

const requestIDHeader = "X-Request-Id"

// Logger is the logging interface used by the debug middleware.
type Logger interface {
	Printf(message string, args ...interface{})
}

// WithHeader sets a header on every request, unless the request already has a value for it.
// An empty value disables the middleware.
func WithHeader(name, value string) MiddlewareFunc {
	return func(next Responder) Responder {
		if value == "" {
			return next
		}
		return func(request *http.Request) (*http.Response, error) {
			if request.Header.Get(name) == "" {
				request = request.Clone(request.Context())
				request.Header.Set(name, value)
			}
			return next(request)
		}
	}
}

// WithAPIKey sends the access key that the user API expects.
func WithAPIKey(key string) MiddlewareFunc {
	return WithHeader(APIKeyHeader, key)
}

// WithUserAgent sets the User-Agent header to "app/version".
func WithUserAgent(app, version string) MiddlewareFunc {
	return WithHeader("User-Agent", app+"/"+version)
}

// WithDebugLogging tags each request with a request ID and logs the request line, the
// response status and the elapsed time.
func WithDebugLogging(logger Logger) MiddlewareFunc {
	return func(next Responder) Responder {
		if logger == nil {
			return next
		}
		return func(request *http.Request) (*http.Response, error) {
			requestID := request.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
				request = request.Clone(request.Context())
				request.Header.Set(requestIDHeader, requestID)
			}
			logger.Printf(">> [%s] %s %s", requestID, request.Method, request.URL)
			start := time.Now()
			resp, err := next(request)
			elapsed := time.Since(start).Round(time.Millisecond)
			if err != nil {
				logger.Printf("<< [%s] error after %s: %s", requestID, elapsed, err)
				return nil, err
			}
			logger.Printf("<< [%s] %s in %s", requestID, resp.Status, elapsed)
			return resp, nil
		}
	}
}
