package gesture

import (
	"fmt"
	"strings"
)

// Class is a gesture label. The order of the constants fixes the network
// output order and the one-hot layout of stored samples.
type Class int

const (
	Alpha Class = iota
	Beta
	Gamma
	Epsilon
)

// Unknown is returned when no class is recognised.
const Unknown Class = -1

// Count is the number of gesture classes (K).
const Count = 4

var names = [Count]string{"ALPHA", "BETA", "GAMMA", "EPSILON"}

// All lists the classes in enumeration order.
func All() []Class {
	return []Class{Alpha, Beta, Gamma, Epsilon}
}

// Valid reports whether c is one of the enumerated classes.
func (c Class) Valid() bool {
	return c >= 0 && int(c) < Count
}

func (c Class) String() string {
	if !c.Valid() {
		return "Unknown"
	}
	return names[c]
}

// OneHot returns the target vector for c.
func (c Class) OneHot() []float64 {
	v := make([]float64, Count)
	if c.Valid() {
		v[c] = 1
	}
	return v
}

// Digits returns the one-hot vector as a digit string, e.g. "0100" for BETA.
func (c Class) Digits() string {
	var b strings.Builder
	for i := 0; i < Count; i++ {
		if Class(i) == c {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Parse resolves a label such as "BETA" (case-insensitive).
func Parse(label string) (Class, error) {
	for i, name := range names {
		if strings.EqualFold(label, name) {
			return Class(i), nil
		}
	}
	return Unknown, fmt.Errorf("gesture: unknown class %q", label)
}

// FromOneHot returns the class whose position holds the single 1 in target.
func FromOneHot(target []float64) (Class, error) {
	if len(target) != Count {
		return Unknown, fmt.Errorf("gesture: target has %d entries, want %d", len(target), Count)
	}
	found := Unknown
	for i, v := range target {
		switch v {
		case 0:
		case 1:
			if found != Unknown {
				return Unknown, fmt.Errorf("gesture: target %v is not one-hot", target)
			}
			found = Class(i)
		default:
			return Unknown, fmt.Errorf("gesture: target %v is not one-hot", target)
		}
	}
	if found == Unknown {
		return Unknown, fmt.Errorf("gesture: target %v is not one-hot", target)
	}
	return found, nil
}
