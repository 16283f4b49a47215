package document

import "errors"

// ErrTooDeep is returned by CheckDepth for values nested beyond the limit.
var ErrTooDeep = errors.New("document nested too deeply")

// Depth returns the nesting depth of v. Scalars have depth 0, an empty map
// or sequence depth 1.
func Depth(v any) int {
	var deepest int
	switch t := v.(type) {
	case map[string]any:
		for _, c := range t {
			deepest = max(deepest, Depth(c))
		}
	case []any:
		for _, c := range t {
			deepest = max(deepest, Depth(c))
		}
	default:
		return 0
	}
	return deepest + 1
}

// CheckDepth fails with ErrTooDeep when v is nested more than limit levels.
// A limit of zero or less disables the check. Unlike Depth it stops
// descending as soon as the limit is crossed.
func CheckDepth(v any, limit int) error {
	if limit <= 0 {
		return nil
	}
	if exceeds(v, limit) {
		return ErrTooDeep
	}
	return nil
}

func exceeds(v any, remaining int) bool {
	switch t := v.(type) {
	case map[string]any:
		if remaining == 0 {
			return true
		}
		for _, c := range t {
			if exceeds(c, remaining-1) {
				return true
			}
		}
	case []any:
		if remaining == 0 {
			return true
		}
		for _, c := range t {
			if exceeds(c, remaining-1) {
				return true
			}
		}
	}
	return false
}
