package domain

import (
	"errors"
	"fmt"
)

var ErrUnknownValue = errors.New("unknown value")

// Enum is satisfied by the closed string enumerations of this package.
type Enum interface {
	~string
	Valid() bool
}

// Parse converts raw input into an enumeration value, rejecting anything
// outside the closed set.
func Parse[T Enum](raw string) (T, error) {
	v := T(raw)
	if !v.Valid() {
		return v, fmt.Errorf("%w: %q", ErrUnknownValue, raw)
	}
	return v, nil
}

// ParseList parses every element of raw, skipping empty strings.
func ParseList[T Enum](raw []string) ([]T, error) {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		if r == "" {
			continue
		}
		v, err := Parse[T](r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s ChatSessionStatus) Valid() bool {
	return s == ChatSessionActive || s == ChatSessionClosed
}
