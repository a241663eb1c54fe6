package event

import "fmt"

// ValidationError reports a rejected submission. It is raised before any
// I/O happens and is safe to show to the user verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks a prepared event against the completed-submission
// contract: non-empty archetypes and principle, impact in range.
func Validate(ev FailureEvent) error {
	if ev.SourceTask == "" {
		return &ValidationError{Field: "sourceTask", Reason: "must not be empty"}
	}
	if len(ev.Archetypes) == 0 {
		return &ValidationError{Field: "archetypes", Reason: "at least one archetype is required"}
	}
	if ev.Principle == "" {
		return &ValidationError{Field: "principle", Reason: "a completed log needs its lesson (Ariadne's Thread)"}
	}
	if ev.Impact < 1 || ev.Impact > 5 {
		return &ValidationError{Field: "impact", Reason: "must be between 1 and 5"}
	}
	if !ev.FailureType.Valid() {
		return &ValidationError{Field: "failureType", Reason: fmt.Sprintf("unknown type %q", ev.FailureType)}
	}
	return nil
}

// ValidatePending checks a deferred submission, which only requires the
// triggering activity to be named.
func ValidatePending(p PendingEvent) error {
	if p.SourceTask == "" {
		return &ValidationError{Field: "sourceTask", Reason: "must not be empty"}
	}
	return nil
}
