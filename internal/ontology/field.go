// Package ontology provides the in-memory model of the building-metadata
// ontology: namespaced fields, entity types composed of required and optional
// fields, and the immutable Universe snapshot the query engine reads from.
// A Universe is assembled once through a Builder, which validates field
// references and flattens inherited fields before publishing the snapshot.
package ontology

import (
	"sort"
	"strings"
)

// FieldIdentity identifies a field by its namespace and local name.
// An empty namespace means the global namespace. FieldIdentity is a
// comparable value type and is used directly as a map key when sets of
// fields are intersected.
type FieldIdentity struct {
	Namespace string
	Name      string
}

// String renders the identity as "namespace/name", or just "name" for
// global fields.
func (f FieldIdentity) String() string {
	if f.Namespace == "" {
		return f.Name
	}
	return f.Namespace + "/" + f.Name
}

// Less orders identities lexicographically by (namespace, name).
func (f FieldIdentity) Less(other FieldIdentity) bool {
	if f.Namespace != other.Namespace {
		return f.Namespace < other.Namespace
	}
	return f.Name < other.Name
}

// IsWellFormed reports whether the identity can name a real field:
// a non-empty local name, with neither part carrying whitespace or the
// namespace separator.
func (f FieldIdentity) IsWellFormed() bool {
	if strings.TrimSpace(f.Name) == "" {
		return false
	}
	for _, part := range []string{f.Namespace, f.Name} {
		if strings.ContainsAny(part, "/ \t\n\r") {
			return false
		}
	}
	return true
}

// FieldDefinition is a field as it appears inside an entity type: the
// identity plus per-type qualifiers. Optional marks fields an entity may
// omit; Increment is the numeric or alphabetic suffix distinguishing
// repeated instances of the same base field (e.g. two discharge air
// temperature sensors).
type FieldDefinition struct {
	FieldIdentity
	Optional  bool
	Increment string
}

// Standardize projects the definition down to its identity, discarding
// optionality and increment. Many definitions standardize to the same
// identity, which is what makes set comparison across types meaningful.
func (d FieldDefinition) Standardize() FieldIdentity {
	return d.FieldIdentity
}

// Key returns the qualified field key used inside an entity type's field
// map. Repeated fields differ only by increment, so the increment is part
// of the key.
func (d FieldDefinition) Key() string {
	if d.Increment == "" {
		return d.FieldIdentity.String()
	}
	return d.FieldIdentity.String() + "_" + d.Increment
}

// SortFieldDefinitions orders definitions ascending by (namespace, name),
// with the increment as a tie-break so repeated fields have a stable
// order.
func SortFieldDefinitions(defs []FieldDefinition) {
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].FieldIdentity != defs[j].FieldIdentity {
			return defs[i].FieldIdentity.Less(defs[j].FieldIdentity)
		}
		return defs[i].Increment < defs[j].Increment
	})
}
