// Package explorer implements the ontology query engine: field-list
// retrieval with inheritance already resolved, single-field validity
// checks, and ranking of every canonical entity type against an observed
// field set. All operations are pure reads over an immutable
// ontology.Universe snapshot; the engine performs no I/O and keeps no
// mutable state.
package explorer

import (
	"sort"

	"ontoscout/internal/ontology"
)

// DefaultMatchThreshold is the score above which a match counts as a
// best fit.
const DefaultMatchThreshold = -0.5

// Index is the narrow view of an ontology backend the engine depends on.
// ontology.Universe implements it; so can any other snapshot source.
type Index interface {
	// ResolveType returns the type at (namespace, typeName), or an
	// *ontology.UndefinedTypeError.
	ResolveType(namespace, typeName string) (*ontology.EntityType, error)

	// AllMatchableTypes enumerates every non-abstract, field-bearing
	// type, optionally filtered by a general-type tag (empty = all).
	AllMatchableTypes(generalType string) []*ontology.EntityType

	// IsFieldDefined reports whether a field exists in the ontology.
	IsFieldDefined(field ontology.FieldIdentity) bool
}

// Explorer answers queries against one ontology snapshot. The match
// threshold is fixed at construction; an Explorer is immutable and safe
// for concurrent use as long as its snapshot is.
type Explorer struct {
	index     Index
	threshold float64
}

// Option configures an Explorer at construction.
type Option func(*Explorer)

// WithMatchThreshold overrides the best-fit score threshold.
func WithMatchThreshold(threshold float64) Option {
	return func(x *Explorer) { x.threshold = threshold }
}

// New returns an Explorer bound to the given index.
func New(index Index, opts ...Option) *Explorer {
	x := &Explorer{index: index, threshold: DefaultMatchThreshold}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// MatchThreshold returns the best-fit score threshold in effect.
func (x *Explorer) MatchThreshold() float64 { return x.threshold }

// FieldsOf returns the full field list of a type, inherited fields
// included, ordered ascending by (namespace, name) so repeated calls are
// deterministic. With requiredOnly, optional fields are dropped.
//
// Fails with *ontology.UndefinedTypeError when the type does not exist
// and *ontology.InheritanceNotExpandedError when the type was not
// produced by a Builder.
func (x *Explorer) FieldsOf(namespace, typeName string, requiredOnly bool) ([]ontology.FieldDefinition, error) {
	et, err := x.index.ResolveType(namespace, typeName)
	if err != nil {
		return nil, err
	}
	if !et.FieldsExpanded() {
		return nil, &ontology.InheritanceNotExpandedError{TypeKey: et.Key()}
	}

	fields := make([]ontology.FieldDefinition, 0, len(et.AllFields()))
	for _, f := range et.AllFields() {
		if requiredOnly && f.Optional {
			continue
		}
		fields = append(fields, f)
	}
	ontology.SortFieldDefinitions(fields)
	return fields, nil
}

// IsValid reports whether a single field is defined in the ontology,
// either under its declared namespace or globally. An ill-formed
// identity fails with *InvalidFieldError.
func (x *Explorer) IsValid(field ontology.FieldIdentity) (bool, error) {
	if !field.IsWellFormed() {
		return false, &InvalidFieldError{Field: field.String()}
	}
	return x.index.IsFieldDefined(field), nil
}

// RankTypes scores every matchable type against the observed field set
// and returns the matches ordered best-first (highest score first, type
// key as tie-break). generalType optionally narrows the candidates to
// types with that ancestor tag. With bestFitOnly, only matches scoring
// strictly above the configured threshold are returned.
//
// Fails with *EmptyFieldSetError when fields is empty, and with
// *ontology.InheritanceNotExpandedError when a candidate has not been
// flattened, since scoring a partial field set would be silently wrong.
func (x *Explorer) RankTypes(fields []ontology.FieldIdentity, generalType string, bestFitOnly bool) ([]Match, error) {
	if len(fields) == 0 {
		return nil, &EmptyFieldSetError{}
	}

	concrete := make(map[ontology.FieldIdentity]struct{}, len(fields))
	for _, f := range fields {
		concrete[f] = struct{}{}
	}

	candidates := x.index.AllMatchableTypes(generalType)
	matches := make([]Match, 0, len(candidates))
	for _, et := range candidates {
		if !et.FieldsExpanded() {
			return nil, &ontology.InheritanceNotExpandedError{TypeKey: et.Key()}
		}
		score, err := matchScore(concrete, et.AllFields())
		if err != nil {
			return nil, err
		}
		matches = append(matches, newMatch(fields, et, score))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].entityType.Key() < matches[j].entityType.Key()
	})

	if bestFitOnly {
		best := matches[:0:0]
		for _, m := range matches {
			if m.score > x.threshold {
				best = append(best, m)
			}
		}
		return best, nil
	}
	return matches, nil
}
