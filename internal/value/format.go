package value

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// ErrNull is returned when a null value is formatted or converted.
var ErrNull = errors.New("null value")

// Format returns the canonical string form of a scalar.
// Integral floating point values are formatted without a fraction, so 1.0
// and 1 both become "1".
func Format(v any) (string, error) {
	if v == nil {
		return "", ErrNull
	}

	rv := reflect.ValueOf(v)

	switch KindOf(v) {
	default:
		return "", fmt.Errorf("cannot format %T as a scalar", v)
	case KindString:
		return rv.String(), nil
	case KindBool:
		return strconv.FormatBool(rv.Bool()), nil
	case KindInt:
		if rv.CanInt() {
			return strconv.FormatInt(rv.Int(), 10), nil
		}

		return strconv.FormatUint(rv.Uint(), 10), nil
	case KindFloat:
		return formatFloat(rv.Float(), rv.Type().Bits()), nil
	}
}

// MustFormat is like Format but returns the fmt %v form on failure.
func MustFormat(v any) string {
	s, err := Format(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	return s
}

func formatFloat(f float64, bits int) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}

	return strconv.FormatFloat(f, 'g', -1, bits)
}

// AsInt converts an integral number to int.
func AsInt(v any) (int, error) {
	if v == nil {
		return 0, ErrNull
	}

	rv := reflect.ValueOf(v)

	switch KindOf(v) {
	default:
		return 0, fmt.Errorf("%v (%T) is not a number", v, v)
	case KindInt:
		if rv.CanInt() {
			return int(rv.Int()), nil
		}

		return int(rv.Uint()), nil
	case KindFloat:
		f := rv.Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%v is not an integer", f)
		}

		return int(f), nil
	}
}

// AsFloat converts a number to float64.
func AsFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}

	rv := reflect.ValueOf(v)

	switch KindOf(v) {
	default:
		return 0, false
	case KindInt:
		if rv.CanInt() {
			return float64(rv.Int()), true
		}

		return float64(rv.Uint()), true
	case KindFloat:
		return rv.Float(), true
	}
}
