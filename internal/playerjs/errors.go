package playerjs

import (
	"fmt"

	"github.com/famomatic/yttui/internal/types"
)

// AnchorError reports a text marker missing from the watch page or the player script.
// It means the extraction heuristics no longer match what the backend ships.
type AnchorError struct {
	What   string // e.g. "player path", "n function"
	Marker string
	Source string // "watch page" or "player script"
}

func (e *AnchorError) Error() string {
	return fmt.Sprintf("%s not found: marker %q missing from %s", e.What, e.Marker, e.Source)
}

func (e *AnchorError) Unwrap() error { return types.ErrAnchorNotFound }

// ScriptError reports a failed call into the script engine.
type ScriptError struct {
	Function string
	Err      error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script call %s failed: %v", e.Function, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }
