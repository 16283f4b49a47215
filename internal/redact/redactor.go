package redact

// Options overrides the defaults for a new Redactor. A nil Secrets slice and
// zero rules are filled from Defaults; an empty non-nil Secrets slice means
// no key is secret.
type Options struct {
	Secrets      []SecretSpec
	Redact       Redaction
	ReduceArrays Reduction
}

// Redactor censors values according to its secrets, redaction rule and
// reduction rule.
//
// Censor and IsSecret may be called from several goroutines at once. The
// setters must not run concurrently with them.
type Redactor struct {
	matcher   *Matcher
	redaction Redaction
	reduction Reduction
}

// New returns a Redactor configured by opts, with omitted fields copied from
// the current defaults.
func New(opts Options) (*Redactor, error) {
	d := Defaults()
	if opts.Secrets == nil {
		opts.Secrets = d.Secrets
	}
	if opts.Redact.IsZero() {
		opts.Redact = d.Redact
	}
	if opts.ReduceArrays.IsZero() {
		opts.ReduceArrays = d.ReduceArrays
	}

	r := &Redactor{}
	if err := r.SetSecrets(opts.Secrets...); err != nil {
		return nil, err
	}
	if err := r.SetRedaction(opts.Redact); err != nil {
		return nil, err
	}
	if err := r.SetReduction(opts.ReduceArrays); err != nil {
		return nil, err
	}
	return r, nil
}

// NewWithMarker returns a Redactor that replaces secrets with marker and
// uses the defaults for everything else.
func NewWithMarker(marker string) (*Redactor, error) {
	return New(Options{Redact: RedactWith(marker)})
}

// Secrets returns the secret specs in use.
func (r *Redactor) Secrets() []SecretSpec {
	return r.matcher.Specs()
}

// SetSecrets replaces the secret specs.
func (r *Redactor) SetSecrets(specs ...SecretSpec) error {
	m, err := NewMatcher(specs...)
	if err != nil {
		return err
	}
	r.matcher = m
	return nil
}

// Redaction returns the redaction rule in use.
func (r *Redactor) Redaction() Redaction {
	return r.redaction
}

// SetRedaction replaces the redaction rule.
func (r *Redactor) SetRedaction(rule Redaction) error {
	if err := rule.validate(); err != nil {
		return err
	}
	r.redaction = rule
	return nil
}

// Reduction returns the reduction rule in use.
func (r *Redactor) Reduction() Reduction {
	return r.reduction
}

// SetReduction replaces the reduction rule.
func (r *Redactor) SetReduction(rule Reduction) error {
	if err := rule.validate(); err != nil {
		return err
	}
	r.reduction = rule
	return nil
}

// IsSecret reports whether key names a secret.
func (r *Redactor) IsSecret(key string) bool {
	return r.matcher.Match(key)
}
