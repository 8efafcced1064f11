package ontology

import "strings"

// EntityType is a canonical, namespace-scoped definition of an entity kind
// as a set of required and optional fields. Types may inherit fields from
// parent types; a type is only queryable once those inherited fields have
// been flattened into its own field map. The Builder is the only producer
// of expanded types, so any EntityType obtained from a built Universe is
// safe to query.
type EntityType struct {
	namespace   string
	name        string
	description string
	isAbstract  bool
	parents     []string
	fields      map[string]FieldDefinition
	expanded    bool
}

// NewEntityType constructs an unexpanded entity type carrying only its own
// directly declared fields. Queries against it fail until inherited fields
// have been flattened; that is deliberate, since matching against a partial
// field set would silently produce wrong scores.
func NewEntityType(namespace, name string, isAbstract bool, fields []FieldDefinition) *EntityType {
	et := &EntityType{
		namespace:  namespace,
		name:       name,
		isAbstract: isAbstract,
		fields:     make(map[string]FieldDefinition, len(fields)),
	}
	for _, f := range fields {
		et.fields[f.Key()] = f
	}
	return et
}

// Namespace returns the namespace the type is defined in.
func (et *EntityType) Namespace() string { return et.namespace }

// Name returns the type's name within its namespace.
func (et *EntityType) Name() string { return et.name }

// Key returns "namespace/name", or just the name for global types.
func (et *EntityType) Key() string {
	if et.namespace == "" {
		return et.name
	}
	return et.namespace + "/" + et.name
}

// Description returns the human-readable description, if any.
func (et *EntityType) Description() string { return et.description }

// IsAbstract reports whether the type exists only to be inherited from.
// Abstract types are never matchable targets.
func (et *EntityType) IsAbstract() bool { return et.isAbstract }

// ParentNames returns the unqualified names of all ancestor types,
// including transitive ones. These double as coarse general-type tags
// for filtering match candidates.
func (et *EntityType) ParentNames() []string {
	out := make([]string, len(et.parents))
	copy(out, et.parents)
	return out
}

// HasParent reports whether tag appears among the type's ancestor names,
// compared case-insensitively.
func (et *EntityType) HasParent(tag string) bool {
	for _, p := range et.parents {
		if strings.EqualFold(p, tag) {
			return true
		}
	}
	return false
}

// AllFields returns the type's field map keyed by qualified field key.
// For an expanded type this includes every inherited field. The returned
// map is shared and must not be modified.
func (et *EntityType) AllFields() map[string]FieldDefinition {
	return et.fields
}

// FieldsExpanded reports whether inherited fields have been flattened into
// the field map. Only the Builder produces expanded types.
func (et *EntityType) FieldsExpanded() bool { return et.expanded }
