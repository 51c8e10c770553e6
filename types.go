package formkit

// UnknownPolicy controls how unknown keys are handled.
type UnknownPolicy int

const (
	UnknownStrip       UnknownPolicy = iota // Drop unknown keys.
	UnknownStrict                           // Reject unknown keys with an error.
	UnknownPassthrough                      // Preserve unknown keys unvalidated.
)

func (p UnknownPolicy) String() string {
	switch p {
	case UnknownStrict:
		return "strict"
	case UnknownPassthrough:
		return "passthrough"
	default:
		return "strip"
	}
}

// ParseOpt bundles parsing options.
type ParseOpt struct {
	MaxBytes int64 // Reject inputs larger than this (0 disables the check).
	FailFast bool  // Stop at the first issue instead of collecting all of them.
}
