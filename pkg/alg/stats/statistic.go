package stats

import (
	"encoding/json"
	"math"
	"strconv"
)

// UndefinedText is the marker printed for a statistic that has no value,
// e.g. the mean of an empty stream or the skewness of a constant one.
const UndefinedText = "undefined"

// Statistic is a derived value that may be undefined.
// A defined Statistic may still hold NaN or ±Inf when the input was non-finite.
type Statistic struct {
	Value   float64
	Defined bool
}

// Defined wraps v as a defined statistic.
func Defined(v float64) Statistic {
	return Statistic{Value: v, Defined: true}
}

// Undefined returns the undefined statistic.
func Undefined() Statistic {
	return Statistic{}
}

// String formats the value in its shortest round-trip form, or [UndefinedText].
func (s Statistic) String() string {
	if !s.Defined {
		return UndefinedText
	}

	return strconv.FormatFloat(s.Value, 'g', -1, 64)
}

// MarshalJSON emits a defined finite value as a JSON number and an undefined
// one as null. NaN and ±Inf have no JSON number form and are emitted as the
// strings the text report prints.
func (s Statistic) MarshalJSON() ([]byte, error) {
	switch {
	case !s.Defined:
		return []byte("null"), nil
	case math.IsNaN(s.Value) || math.IsInf(s.Value, 0):
		return json.Marshal(s.String())
	default:
		return json.Marshal(s.Value)
	}
}

// MarshalYAML emits the value as a YAML float, which covers .nan and .inf,
// and an undefined statistic as null.
func (s Statistic) MarshalYAML() (any, error) {
	if !s.Defined {
		return nil, nil //nolint:nilnil // null is the YAML form of undefined.
	}

	return s.Value, nil
}
