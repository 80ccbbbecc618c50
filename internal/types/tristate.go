// Package types provides type definitions for structured data used throughout the hirelens system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// TriState represents a condition that can be satisfied, violated, or
// undetermined. Filters and categorical features use it instead of a
// nullable boolean so that "we could not evaluate this" is distinct from
// "this check failed".
type TriState int

const (
	// TriUnknown means the condition could not be evaluated.
	TriUnknown TriState = iota
	// TriFalse means the condition was evaluated and does not hold.
	TriFalse
	// TriTrue means the condition was evaluated and holds.
	TriTrue
)

// Known reports whether the state carries an evaluated value.
func (t TriState) Known() bool {
	return t == TriTrue || t == TriFalse
}

// Bool returns the underlying boolean and whether it is defined.
func (t TriState) Bool() (value, ok bool) {
	switch t {
	case TriTrue:
		return true, true
	case TriFalse:
		return false, true
	default:
		return false, false
	}
}

// String returns "true", "false" or "unknown".
func (t TriState) String() string {
	switch t {
	case TriTrue:
		return "true"
	case TriFalse:
		return "false"
	default:
		return "unknown"
	}
}

// TriFromBool converts a plain boolean into a known TriState.
func TriFromBool(b bool) TriState {
	if b {
		return TriTrue
	}
	return TriFalse
}

// TriAll reduces a set of states with logical AND, ignoring unknowns.
// If every state is unknown the result is unknown.
func TriAll(states ...TriState) TriState {
	result := TriUnknown
	for _, s := range states {
		if !s.Known() {
			continue
		}
		if s == TriFalse {
			return TriFalse
		}
		result = TriTrue
	}
	return result
}

// MarshalJSON encodes the state as true, false or null.
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case TriTrue:
		return []byte("true"), nil
	case TriFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes true, false or null into the state.
func (t *TriState) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*t = TriTrue
	case "false":
		*t = TriFalse
	case "null":
		*t = TriUnknown
	default:
		return fmt.Errorf("invalid tri-state value: %s", data)
	}
	return nil
}
