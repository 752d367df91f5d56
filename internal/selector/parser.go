package selector

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCriterion parses one criterion.
// Syntax: field:direction[:target]
//
//	quality:closest:720
//	bitrate:lowest
//	format:webm
//	language:English
func ParseCriterion(s string) (Criterion, error) {
	s = strings.TrimSpace(s)
	field, rest, ok := strings.Cut(s, ":")
	if !ok || rest == "" {
		return Criterion{}, fmt.Errorf("invalid criterion %q: want field:value", s)
	}

	switch strings.ToLower(field) {
	case "bitrate":
		r, err := parseRank(rest)
		if err != nil {
			return Criterion{}, fmt.Errorf("invalid criterion %q: %w", s, err)
		}
		return Criterion{Field: FieldBitrate, Rank: r}, nil
	case "quality", "height", "res":
		r, err := parseRank(rest)
		if err != nil {
			return Criterion{}, fmt.Errorf("invalid criterion %q: %w", s, err)
		}
		return Criterion{Field: FieldQuality, Rank: r}, nil
	case "format", "ext":
		return Criterion{Field: FieldFormat, Value: rest}, nil
	case "language", "lang":
		return Criterion{Field: FieldLanguage, Value: rest}, nil
	default:
		return Criterion{}, fmt.Errorf("unknown criterion field: %s", field)
	}
}

func parseRank(s string) (Rank, error) {
	dir, target, hasTarget := strings.Cut(strings.ToLower(s), ":")
	switch dir {
	case "highest", "best":
		return Rank{Direction: Highest}, nil
	case "lowest", "worst":
		return Rank{Direction: Lowest}, nil
	case "closest":
		if !hasTarget {
			return Rank{}, fmt.Errorf("closest needs a target")
		}
		n, err := strconv.Atoi(target)
		if err != nil {
			return Rank{}, fmt.Errorf("bad target %q", target)
		}
		return Rank{Direction: ClosestTo, Target: n}, nil
	}
	return Rank{}, fmt.Errorf("unknown direction %q", dir)
}

// ParsePolicy parses an ordered list of criteria for one partition.
// Quality is rejected for audio and language for video.
func ParsePolicy(kind Kind, specs []string) (Policy, error) {
	p := make(Policy, 0, len(specs))
	for _, s := range specs {
		c, err := ParseCriterion(s)
		if err != nil {
			return nil, err
		}
		if kind == Audio && c.Field == FieldQuality {
			return nil, fmt.Errorf("criterion %q does not apply to audio", s)
		}
		if kind == Video && c.Field == FieldLanguage {
			return nil, fmt.Errorf("criterion %q does not apply to video", s)
		}
		p = append(p, c)
	}
	return p, nil
}

// String renders the criterion back into parser syntax.
func (c Criterion) String() string {
	switch c.Field {
	case FieldBitrate:
		return "bitrate:" + c.Rank.String()
	case FieldQuality:
		return "quality:" + c.Rank.String()
	case FieldFormat:
		return "format:" + c.Value
	case FieldLanguage:
		return "language:" + c.Value
	}
	return "unknown"
}

func (r Rank) String() string {
	switch r.Direction {
	case Lowest:
		return "lowest"
	case ClosestTo:
		return "closest:" + strconv.Itoa(r.Target)
	}
	return "highest"
}

// Strings renders every criterion of p.
func (p Policy) Strings() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.String()
	}
	return out
}
