package innertube

import (
	"fmt"

	"github.com/famomatic/yttui/internal/types"
)

// HTTPStatusError indicates a non-200 backend response.
type HTTPStatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("innertube http status=%d %s %s", e.StatusCode, e.Method, e.URL)
}

func (e *HTTPStatusError) Unwrap() error { return types.ErrTransport }
