package middleware

import "context"

type contextKey string

const (
	ctxSubject contextKey = "subject"
	ctxState   contextKey = "request_state"
)

// requestState is shared by pointer down the chain so outer middleware can
// read what inner middleware learned once the handler returns.
type requestState struct {
	subject string
}

// ensureState returns ctx carrying a requestState, reusing one already present.
func ensureState(ctx context.Context) (context.Context, *requestState) {
	if st, ok := ctx.Value(ctxState).(*requestState); ok {
		return ctx, st
	}
	st := &requestState{}
	return context.WithValue(ctx, ctxState, st), st
}

// SubjectFromContext returns the authenticated token subject, if any.
func SubjectFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSubject).(string); ok {
		return v
	}
	return ""
}

// WithSubject injects the token subject into the context and records it on
// the request state for the logging and recovery middleware.
func WithSubject(ctx context.Context, subject string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if st, ok := ctx.Value(ctxState).(*requestState); ok {
		st.subject = subject
	}
	return context.WithValue(ctx, ctxSubject, subject)
}
