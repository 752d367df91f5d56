// Package decoder turns raw backend payloads into list items.
//
// There is one exported function per response shape. All of them return a
// Result; a payload either decodes completely or the call fails with a
// *ShapeError, so the caller never sees a partially filled page.
package decoder

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/famomatic/yttui/internal/types"
)

// Result is the normalized output of every decoder.
type Result struct {
	Items []types.Item
	// Continuation is nil when the backend reported no further items.
	Continuation *string
}

// ShapeError reports a payload that does not match the decoder's expected shape.
type ShapeError struct {
	Shape  string
	Reason string
	Err    error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s: %v", e.Shape, e.Reason, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", e.Shape, e.Reason)
}

func (e *ShapeError) Unwrap() []error {
	if e.Err != nil {
		return []error{types.ErrUnparseable, e.Err}
	}
	return []error{types.ErrUnparseable}
}

func shapeErr(shape, format string, args ...any) error {
	return &ShapeError{Shape: shape, Reason: fmt.Sprintf(format, args...)}
}

func decodeJSON(shape string, raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return &ShapeError{Shape: shape, Reason: "invalid json", Err: err}
	}
	return nil
}

// renderer is one element of a contents list: an object keyed by renderer name.
type renderer map[string]json.RawMessage

// keys returns the renderer names in a stable order.
func (r renderer) keys() []string {
	out := make([]string, 0, len(r))
	for k := range r {
		if k == "trackingParams" {
			continue
		}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
