package ontology

import "fmt"

// UndefinedTypeError reports a type lookup that found nothing. The message
// distinguishes a miss in the global namespace from a miss in a named one.
type UndefinedTypeError struct {
	Namespace string
	TypeName  string
}

func (e *UndefinedTypeError) Error() string {
	if e.Namespace == "" {
		return fmt.Sprintf("%s is not defined in the global namespace", e.TypeName)
	}
	return fmt.Sprintf("%s is not defined in namespace %s", e.TypeName, e.Namespace)
}

// InheritanceNotExpandedError reports a query against a type whose
// inherited fields have not been flattened. This is a precondition
// violation, not a data error: the caller skipped the build step that
// expands inheritance, and answering from a partial field set would be
// silently wrong.
type InheritanceNotExpandedError struct {
	TypeKey string
}

func (e *InheritanceNotExpandedError) Error() string {
	return fmt.Sprintf("inherited fields of %s have not been expanded; build the universe through ontology.Builder before querying", e.TypeKey)
}
