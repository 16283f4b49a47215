package redact

import "reflect"

// walker holds the rules of one Censor call so that setters called from a
// policy function only affect later calls.
type walker struct {
	matcher   *Matcher
	redaction Redaction
	reduction Reduction
}

// Censor returns a censored deep copy of v.
//
// Maps and sequences are rebuilt; the values under secret keys are replaced
// by the redaction rule and every sequence goes through the reduction rule
// once its elements are censored. Any other v is redacted outright, whether
// or not it looks like a secret.
//
// Besides map[string]any and []any, any Go map, slice or array is treated as
// a container and rebuilt as map[string]any (string keys), map[any]any
// (other keys) or []any. Byte slices and arrays, structs and pointers are
// scalars.
func (r *Redactor) Censor(v any) (any, error) {
	w := walker{
		matcher:   r.matcher,
		redaction: r.redaction,
		reduction: r.reduction,
	}
	if !isContainer(v) {
		return w.redaction.Apply("", v)
	}
	return w.walk(v)
}

func (w *walker) walk(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		return w.walkMap(t)
	case []any:
		return w.walkSeq(t)
	case nil, string, bool, int, int64, float64:
		return v, nil
	}
	return w.walkReflect(v)
}

func (w *walker) walkMap(m map[string]any) (any, error) {
	if m == nil {
		return m, nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		c, err := w.entry(k, v)
		if err != nil {
			return nil, err
		}
		out[k] = c
	}
	return out, nil
}

// entry censors the value stored under key.
func (w *walker) entry(key string, v any) (any, error) {
	if w.matcher.Match(key) {
		return w.redaction.Apply(key, v)
	}
	return w.walk(v)
}

func (w *walker) walkSeq(s []any) (any, error) {
	var out []any
	if s != nil {
		out = make([]any, len(s))
	}
	for i, v := range s {
		c, err := w.walk(v)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return w.reduction.Apply(out)
}

// walkReflect handles typed maps, slices and arrays. Everything else is
// returned as is.
func (w *walker) walkReflect(v any) (any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return w.walkStringMap(rv)
		}
		return w.walkAnyMap(rv)
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v, nil
		}
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return w.walkSeq(nil)
		}
		s := make([]any, rv.Len())
		for i := range s {
			s[i] = rv.Index(i).Interface()
		}
		return w.walkSeq(s)
	default:
		return v, nil
	}
}

func (w *walker) walkStringMap(rv reflect.Value) (any, error) {
	if rv.IsNil() {
		return map[string]any(nil), nil
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		c, err := w.entry(k, iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		out[k] = c
	}
	return out, nil
}

// walkAnyMap rebuilds a map whose keys are not strings. Such keys never name
// a secret, so only the values are censored.
func (w *walker) walkAnyMap(rv reflect.Value) (any, error) {
	if rv.IsNil() {
		return map[any]any(nil), nil
	}
	out := make(map[any]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		c, err := w.walk(iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		out[iter.Key().Interface()] = c
	}
	return out, nil
}

// isContainer reports whether Censor descends into v.
func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	case nil, string, bool, int, int64, float64:
		return false
	}
	switch t := reflect.TypeOf(v); t.Kind() {
	case reflect.Map:
		return true
	case reflect.Slice, reflect.Array:
		return t.Elem().Kind() != reflect.Uint8
	default:
		return false
	}
}
