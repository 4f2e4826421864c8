package thet

import "github.com/carbocation/pfx"

// ValidationError reports that a proposed value failed one of its structural
// invariants. During sampling this is an expected, frequent outcome: the
// caller discards the candidate and proposes another, so constructing and
// rejecting must stay cheap. Only a malformed first-iteration state should be
// treated as fatal by callers.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return "invalid state: " + e.msg
}

// check pairs one structural invariant with the message reported when it is
// violated. Predicates are evaluated lazily so a list of checks can
// short-circuit without paying for checks past the first failure.
type check struct {
	ok  func() bool
	msg string
}

// firstViolation evaluates checks left-to-right and returns a ValidationError
// for the first one that fails, or nil if all hold.
func firstViolation(checks []check) error {
	for _, c := range checks {
		if !c.ok() {
			return pfx.Err(&ValidationError{msg: c.msg})
		}
	}
	return nil
}
