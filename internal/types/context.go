package types

import "context"

type contextKey string

const (
	// PageKey is the context key for the title of the page issuing a request.
	PageKey contextKey = "page"
)

// WithPage returns a new context carrying the requesting page title.
func WithPage(ctx context.Context, page string) context.Context {
	return context.WithValue(ctx, PageKey, page)
}

// PageFromContext returns the requesting page title from the context.
func PageFromContext(ctx context.Context) (string, bool) {
	page, ok := ctx.Value(PageKey).(string)
	return page, ok
}
