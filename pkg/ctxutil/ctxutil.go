package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	clientIDKey    ctxKey = "client_id"
	principalIDKey ctxKey = "principal_id"
	emailKey       ctxKey = "principal_email"
	requestIDKey   ctxKey = "request_id"
)

// WithClientID stores the resolved client ID in the context.
func WithClientID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, clientIDKey, id)
}

// ClientIDFromCtx extracts the client ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func ClientIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(clientIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithPrincipal stores the verified external principal in the context.
func WithPrincipal(ctx context.Context, id, email string) context.Context {
	ctx = context.WithValue(ctx, principalIDKey, id)
	return context.WithValue(ctx, emailKey, email)
}

// PrincipalFromCtx extracts the principal ID and email from the context.
// ok is false when no principal was stored or its ID is empty.
func PrincipalFromCtx(ctx context.Context) (id, email string, ok bool) {
	id, _ = ctx.Value(principalIDKey).(string)
	email, _ = ctx.Value(emailKey).(string)
	return id, email, id != ""
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
