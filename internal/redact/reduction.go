package redact

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ReduceFunc replaces a whole sequence. It receives the already censored
// elements and must not modify them; its result is used verbatim.
type ReduceFunc func(seq []any) (any, error)

// ReductionKind tells how a Reduction treats sequences.
type ReductionKind uint8

const (
	reduceUnset ReductionKind = iota
	// ReduceNone keeps sequences as they are.
	ReduceNone
	// ReduceAll replaces every sequence with a summary marker.
	ReduceAll
	// ReduceThreshold keeps the first N elements of longer sequences and
	// appends a summary marker.
	ReduceThreshold
	// ReduceCustom hands sequences to a ReduceFunc.
	ReduceCustom
)

func (k ReductionKind) String() string {
	switch k {
	case ReduceNone:
		return "none"
	case ReduceAll:
		return "all"
	case ReduceThreshold:
		return "threshold"
	case ReduceCustom:
		return "custom"
	default:
		return "unset"
	}
}

// Reduction is the rule applied to every sequence after its elements have
// been censored. The zero Reduction is unset.
type Reduction struct {
	kind  ReductionKind
	limit int
	fn    ReduceFunc
}

// NoReduction leaves sequences alone.
func NoReduction() Reduction { return Reduction{kind: ReduceNone} }

// Summarize replaces each sequence with "[Object ARRAY[n]]".
func Summarize() Reduction { return Reduction{kind: ReduceAll} }

// Truncate keeps sequences of up to n elements. Longer ones keep their first
// n elements followed by "...[Object ARRAY[len]]".
func Truncate(n int) Reduction { return Reduction{kind: ReduceThreshold, limit: n} }

// ReduceUsing replaces each sequence with the result of fn.
func ReduceUsing(fn ReduceFunc) Reduction { return Reduction{kind: ReduceCustom, fn: fn} }

// Kind returns the kind of r.
func (r Reduction) Kind() ReductionKind { return r.kind }

// Limit returns the threshold of a Truncate rule.
func (r Reduction) Limit() int { return r.limit }

// IsZero reports whether r was never set.
func (r Reduction) IsZero() bool { return r.kind == reduceUnset }

// String renders r in the form accepted by ParseReduction. Custom rules have
// no textual form.
func (r Reduction) String() string {
	switch r.kind {
	case ReduceNone:
		return "false"
	case ReduceAll:
		return "true"
	case ReduceThreshold:
		return fmt.Sprint(r.limit)
	default:
		return r.kind.String()
	}
}

func (r Reduction) validate() error {
	switch r.kind {
	case ReduceNone, ReduceAll:
		return nil
	case ReduceThreshold:
		if r.limit < 0 {
			return errors.Wrapf(ErrInvalidReductionRule, "negative threshold %d", r.limit)
		}
		return nil
	case ReduceCustom:
		if r.fn == nil {
			return errors.Wrap(ErrInvalidReductionRule, "nil reduce func")
		}
		return nil
	default:
		return errors.Wrapf(ErrInvalidReductionRule, "kind %s", r.kind)
	}
}

// Apply reduces seq. Errors from a ReduceFunc are returned marked with
// ErrReductionPolicyFailure.
func (r Reduction) Apply(seq []any) (any, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	switch r.kind {
	case ReduceAll:
		return summary(len(seq)), nil
	case ReduceThreshold:
		if len(seq) <= r.limit {
			return seq, nil
		}
		out := make([]any, r.limit+1)
		copy(out, seq[:r.limit])
		out[r.limit] = "..." + summary(len(seq))
		return out, nil
	case ReduceCustom:
		out, err := r.fn(seq)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "reducing sequence of %d", len(seq)), ErrReductionPolicyFailure)
		}
		return out, nil
	default:
		return seq, nil
	}
}

func summary(n int) string {
	return fmt.Sprintf("[Object ARRAY[%d]]", n)
}
