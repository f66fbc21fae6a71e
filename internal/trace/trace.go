// Package trace carries a per-request correlation id through the
// middleware → handler → client chain via context, so independent log and
// metric records from different services can be tied to one client request.
package trace

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Header is the field the id is read from on ingress and written to on
// egress, on inbound responses and outbound dependency calls alike.
const Header = "X-Trace-ID"

type contextKey struct{}

// Ensure adopts a non-empty inbound header value verbatim, otherwise mints a
// fresh id. The result is fixed for the lifetime of the request.
func Ensure(inbound string) string {
	if inbound != "" {
		return inbound
	}
	return uuid.NewString()
}

// NewContext returns a copy of ctx bound to the given id.
func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request's id, or "" when ctx is not bound to one.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}

// Attr renders the context's id as a log attribute.
func Attr(ctx context.Context) slog.Attr {
	return slog.String("trace_id", FromContext(ctx))
}
