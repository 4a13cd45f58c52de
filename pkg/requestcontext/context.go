// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them, services read them, and
// neither side needs net/http for it.
package requestcontext

import "context"

// Context key types (unexported for encapsulation).
type (
	requestIDKey struct{}
	userEmailKey struct{}
	userNameKey  struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyRequestID = requestIDKey{}
	ContextKeyUserEmail = userEmailKey{}
	ContextKeyUserName  = userNameKey{}
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

func RequestID(ctx context.Context) string {
	id, ok := ctx.Value(ContextKeyRequestID).(string)
	if !ok {
		return ""
	}
	return id
}

// WithUserEmail records the submitter email resolved by the identity
// middleware.
func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ContextKeyUserEmail, email)
}

func UserEmail(ctx context.Context) string {
	email, ok := ctx.Value(ContextKeyUserEmail).(string)
	if !ok {
		return ""
	}
	return email
}

func WithUserName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ContextKeyUserName, name)
}

func UserName(ctx context.Context) string {
	name, ok := ctx.Value(ContextKeyUserName).(string)
	if !ok {
		return ""
	}
	return name
}
