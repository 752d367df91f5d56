package decoder

import (
	"fmt"

	"github.com/famomatic/yttui/internal/innertube"
	"github.com/famomatic/yttui/internal/types"
)

// UnavailableError is returned for a player response without streamingData.
type UnavailableError struct {
	Status string
	Reason string
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("video unavailable (status=%s), it may be age restricted", e.Status)
	}
	return fmt.Sprintf("video unavailable (status=%s): %s", e.Status, e.Reason)
}

func (e *UnavailableError) Unwrap() error { return types.ErrUnavailable }

// Player decodes a player response. A response without streamingData is
// reported as *UnavailableError, which the client recovers from.
func Player(raw []byte) (*innertube.PlayerResponse, error) {
	var resp innertube.PlayerResponse
	if err := decodeJSON(ShapePlayer, raw, &resp); err != nil {
		return nil, err
	}
	if resp.StreamingData == nil {
		return nil, &UnavailableError{Status: resp.PlayabilityStatus.Status, Reason: resp.PlayabilityStatus.Reason}
	}
	return &resp, nil
}
