package fx

import "fmt"

// Options holds an operation's configuration as loose key/value pairs, the
// form they arrive in from JSON pipeline descriptions. Operation factories
// read them through the typed getters, which supply defaults for absent keys
// and reject values of the wrong type.
//
// Numeric values may be int, int64, float32 or float64; JSON decoding
// produces float64 and the getters normalize from there.
type Options map[string]any

// Int returns the integer value for key, or def if the key is absent.
// Fractional floats and non-numeric values fail with ErrInvalidConfiguration.
func (o Options) Int(key string, def int) (int, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%w: option %q must be an integer, got %v", ErrInvalidConfiguration, key, n)
		}
		return int(n), nil
	case float32:
		if n != float32(int(n)) {
			return 0, fmt.Errorf("%w: option %q must be an integer, got %v", ErrInvalidConfiguration, key, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: option %q must be an integer, got %T", ErrInvalidConfiguration, key, v)
	}
}

// Float returns the float value for key, or def if the key is absent.
func (o Options) Float(key string, def float64) (float64, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: option %q must be a number, got %T", ErrInvalidConfiguration, key, v)
	}
}

// String returns the string value for key, or def if the key is absent.
func (o Options) String(key, def string) (string, error) {
	v, ok := o[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: option %q must be a string, got %T", ErrInvalidConfiguration, key, v)
	}
	return s, nil
}
