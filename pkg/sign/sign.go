// Package sign defines the three-valued sign shared by interaction labels,
// gene states and the action propagated along a search path.
package sign

import "fmt"

// Sign is +1 (activating / up), -1 (inactivating / down) or 0.
// For a propagated action, 0 means the action is undefined.
type Sign int8

const (
	None     Sign = 0
	Positive Sign = 1
	Negative Sign = -1
)

// Parse converts a "+" or "-" token to a Sign.
func Parse(s string) (Sign, error) {
	switch s {
	case "+":
		return Positive, nil
	case "-":
		return Negative, nil
	default:
		return None, fmt.Errorf("invalid sign %q: expected \"+\" or \"-\"", s)
	}
}

// Negate flips Positive and Negative. None stays None.
func (s Sign) Negate() Sign {
	return -s
}

// Defined reports whether s is Positive or Negative.
func (s Sign) Defined() bool {
	return s == Positive || s == Negative
}

// Symbol returns "+" or "-", or "" for None.
func (s Sign) Symbol() string {
	switch s {
	case Positive:
		return "+"
	case Negative:
		return "-"
	default:
		return ""
	}
}

func (s Sign) String() string {
	switch s {
	case Positive:
		return "+1"
	case Negative:
		return "-1"
	default:
		return "0"
	}
}
