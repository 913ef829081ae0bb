package topology

import (
	"errors"
	"fmt"
)

// Reason categorizes a DeclarationError.
type Reason string

const (
	ReasonInvalid    Reason = "invalid"
	ReasonMissingRef Reason = "missing-reference"
	ReasonCycle      Reason = "cycle"
	ReasonScope      Reason = "scope"
	ReasonSecret     Reason = "literal-secret"
	ReasonBounds     Reason = "bounds"
)

// DeclarationError is returned for every structural problem in a topology.
// Entity names the declared record ("compute", "policy/data"); Reference
// names what it points at, when the problem is a reference.
type DeclarationError struct {
	Entity    string
	Reference string
	Reason    Reason
	Message   string
}

// Error implements the error interface.
func (e *DeclarationError) Error() string {
	if e.Reference != "" {
		return fmt.Sprintf("%s -> %s: %s", e.Entity, e.Reference, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Message)
}

// Is matches on Reason so errors.Is(err, &DeclarationError{Reason: ReasonCycle})
// works through joined errors.
func (e *DeclarationError) Is(target error) bool {
	t, ok := target.(*DeclarationError)
	if !ok {
		return false
	}
	return t.Reason == e.Reason && (t.Entity == "" || t.Entity == e.Entity)
}

func declErr(entity string, reason Reason, format string, args ...any) *DeclarationError {
	return &DeclarationError{Entity: entity, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func refErr(entity, ref string, reason Reason, format string, args ...any) *DeclarationError {
	return &DeclarationError{Entity: entity, Reference: ref, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// DeclarationErrors flattens an error returned by Validate or Resolve into
// its individual declaration errors.
func DeclarationErrors(err error) []*DeclarationError {
	var out []*DeclarationError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if j, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range j.Unwrap() {
				walk(inner)
			}
			return
		}
		var de *DeclarationError
		if errors.As(e, &de) {
			out = append(out, de)
		}
	}
	walk(err)
	return out
}

// HasReason reports whether err contains a declaration error with reason r.
func HasReason(err error, r Reason) bool {
	return errors.Is(err, &DeclarationError{Reason: r})
}
