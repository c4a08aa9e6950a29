package utils

const (
	// RequestIDKey is the gin context key holding the request id.
	RequestIDKey = "requestID"
	// RequestIDHeader is echoed back on every response.
	RequestIDHeader = "X-Request-ID"
)
