package explorer

import "fmt"

// EmptyFieldSetError reports a match-score request for an entity with no
// fields. A similarity score is undefined in that case; the caller decides
// whether to skip the entity or abort.
type EmptyFieldSetError struct{}

func (e *EmptyFieldSetError) Error() string {
	return "concrete field set cannot be empty"
}

// InvalidFieldError reports a validity check on an ill-formed field
// identity, such as an empty local name or a name carrying whitespace or
// a namespace separator.
type InvalidFieldError struct {
	Field string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("malformed field identity %q", e.Field)
}
