package redact

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ParseSecretSpec reads a secret from configuration. Text of the form
// /expr/flags becomes a pattern, with flags drawn from i, m and s; anything
// else is a literal key name.
func ParseSecretSpec(s string) (SecretSpec, error) {
	if len(s) < 2 || s[0] != '/' {
		return Literal(s), nil
	}
	end := strings.LastIndexByte(s, '/')
	if end == 0 {
		return Literal(s), nil
	}
	expr, flags := s[1:end], s[end+1:]
	if flags != "" {
		for _, f := range flags {
			if !strings.ContainsRune("ims", f) {
				return SecretSpec{}, errors.Wrapf(ErrInvalidSecretSpec, "%s: unknown flag %q", s, f)
			}
		}
		expr = "(?" + flags + ")" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return SecretSpec{}, errors.Wrapf(ErrInvalidSecretSpec, "%s: %v", s, err)
	}
	spec := Pattern(re)
	spec.source = s
	return spec, nil
}

// ParseSecrets parses each entry with ParseSecretSpec.
func ParseSecrets(list []string) ([]SecretSpec, error) {
	specs := make([]SecretSpec, 0, len(list))
	for _, s := range list {
		spec, err := ParseSecretSpec(s)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// FormatSecrets renders specs with SecretSpec.String.
func FormatSecrets(specs []SecretSpec) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.String()
	}
	return out
}

// ParseReduction reads a reduction rule from a configuration primitive.
//
//	nil, false, "", "false", "off", "none"  no reduction
//	true, "true", "all"                     summarize every sequence
//	n > 0 (int, float or numeric string)    truncate to n elements
//	0                                       no reduction
//	ReduceFunc                              custom
func ParseReduction(v any) (Reduction, error) {
	switch t := v.(type) {
	case nil:
		return NoReduction(), nil
	case Reduction:
		return t, t.validate()
	case bool:
		if t {
			return Summarize(), nil
		}
		return NoReduction(), nil
	case int:
		return threshold(int64(t))
	case int64:
		return threshold(t)
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) {
			return Reduction{}, errors.Wrapf(ErrInvalidReductionRule, "non-integer threshold %v", t)
		}
		return threshold(int64(t))
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "false", "off", "none":
			return NoReduction(), nil
		case "true", "all":
			return Summarize(), nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return Reduction{}, errors.Wrapf(ErrInvalidReductionRule, "%q", t)
		}
		return threshold(n)
	case ReduceFunc:
		return ReduceUsing(t), ReduceUsing(t).validate()
	case func([]any) (any, error):
		return ReduceUsing(t), ReduceUsing(t).validate()
	default:
		return Reduction{}, errors.Wrapf(ErrInvalidReductionRule, "unsupported type %T", v)
	}
}

func threshold(n int64) (Reduction, error) {
	switch {
	case n < 0:
		return Reduction{}, errors.Wrapf(ErrInvalidReductionRule, "negative threshold %d", n)
	case n == 0:
		return NoReduction(), nil
	case n > math.MaxInt32:
		return Reduction{}, errors.Wrapf(ErrInvalidReductionRule, "threshold %d too large", n)
	}
	return Truncate(int(n)), nil
}
