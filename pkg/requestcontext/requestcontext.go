// Package requestcontext provides typed accessors for request-scoped values.
// Middleware writes these once; handlers and services read them without
// knowing how they were extracted.
package requestcontext

import "context"

type contextKey int

const (
	requestIDKey contextKey = iota
	operatorIDKey
	clientIPKey
	userAgentKey
	deviceKey
	confirmedKey
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request ID, or "" when none was set.
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// WithOperatorID stores the authenticated staff operator's subject.
func WithOperatorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operatorIDKey, id)
}

// OperatorID returns the authenticated operator subject, or "" when the
// request was not authenticated.
func OperatorID(ctx context.Context) string {
	v, _ := ctx.Value(operatorIDKey).(string)
	return v
}

// WithClientMetadata stores the client IP and raw User-Agent string.
func WithClientMetadata(ctx context.Context, ip, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey, ip)
	return context.WithValue(ctx, userAgentKey, userAgent)
}

// ClientIP returns the client IP recorded by the metadata middleware.
func ClientIP(ctx context.Context) string {
	v, _ := ctx.Value(clientIPKey).(string)
	return v
}

// UserAgent returns the raw User-Agent header recorded by the metadata middleware.
func UserAgent(ctx context.Context) string {
	v, _ := ctx.Value(userAgentKey).(string)
	return v
}

// WithDevice stores the parsed device description ("Chrome 126 on Linux").
func WithDevice(ctx context.Context, device string) context.Context {
	return context.WithValue(ctx, deviceKey, device)
}

// Device returns the parsed device description, or "" when unknown.
func Device(ctx context.Context) string {
	v, _ := ctx.Value(deviceKey).(string)
	return v
}

// WithConfirmed marks the request as carrying an explicit operator confirmation.
func WithConfirmed(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, confirmedKey, confirmed)
}

// Confirmed reports whether the operator explicitly confirmed the action.
func Confirmed(ctx context.Context) bool {
	v, _ := ctx.Value(confirmedKey).(bool)
	return v
}
