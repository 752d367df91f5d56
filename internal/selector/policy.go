package selector

import (
	"fmt"
	"strings"

	"github.com/famomatic/yttui/internal/types"
)

// Kind is the partition a policy applies to.
type Kind int

const (
	Video Kind = iota
	Audio
)

func (k Kind) String() string {
	if k == Audio {
		return "audio"
	}
	return "video"
}

// Direction says which end of a numeric property is preferred.
type Direction int

const (
	Highest Direction = iota
	Lowest
	ClosestTo
)

// Rank orders a numeric property. Target is used only with ClosestTo.
type Rank struct {
	Direction Direction
	Target    int
}

// Field is the format property a criterion looks at.
type Field int

const (
	FieldBitrate Field = iota
	FieldQuality
	FieldFormat
	FieldLanguage
)

// Criterion is one entry of a policy.
type Criterion struct {
	Field Field
	Rank  Rank   // bitrate, quality
	Value string // format (mime substring), language (track display name)
}

// Policy is evaluated in order; later criteria only break ties left by earlier ones.
type Policy []Criterion

// Candidate is the part of an adaptive format a policy can see.
type Candidate struct {
	Bitrate  int
	Height   int
	MimeType string
	Language string
}

// ExhaustedError is returned when a partition has no formats at all.
type ExhaustedError struct {
	Kind Kind
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no %s formats available", e.Kind)
}

func (e *ExhaustedError) Unwrap() error { return types.ErrNoCandidate }

// Compare returns a positive value when candidate is preferred over current,
// a negative value when current is preferred, and 0 on a tie.
func (c Criterion) Compare(current, candidate Candidate) int {
	switch c.Field {
	case FieldBitrate:
		return c.Rank.compare(current.Bitrate, candidate.Bitrate)
	case FieldQuality:
		return c.Rank.compare(current.Height, candidate.Height)
	case FieldFormat:
		return compareBool(strings.Contains(current.MimeType, c.Value), strings.Contains(candidate.MimeType, c.Value))
	case FieldLanguage:
		return compareBool(current.Language == c.Value, candidate.Language == c.Value)
	}
	return 0
}

func (r Rank) compare(current, candidate int) int {
	switch r.Direction {
	case Highest:
		return compareInt(candidate, current)
	case Lowest:
		return compareInt(current, candidate)
	case ClosestTo:
		return compareInt(distance(r.Target, current), distance(r.Target, candidate))
	}
	return 0
}

// Compare applies the criteria in priority order; the first non-tie decides.
func (p Policy) Compare(current, candidate Candidate) int {
	for _, c := range p {
		if v := c.Compare(current, candidate); v != 0 {
			return v
		}
	}
	return 0
}

// Select folds over candidates left to right and returns the index of the best one.
// A candidate replaces the current best only when strictly preferred, so the
// first of several equal candidates wins.
func Select(kind Kind, candidates []Candidate, p Policy) (int, error) {
	if len(candidates) == 0 {
		return -1, &ExhaustedError{Kind: kind}
	}
	best := 0
	for i := 1; i < len(candidates); i++ {
		if p.Compare(candidates[best], candidates[i]) > 0 {
			best = i
		}
	}
	return best, nil
}

func compareInt(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

func compareBool(current, candidate bool) int {
	switch {
	case candidate && !current:
		return 1
	case current && !candidate:
		return -1
	}
	return 0
}

func distance(target, v int) int {
	if v > target {
		return v - target
	}
	return target - v
}
