package ontology

import "sort"

// Universe is the immutable ontology snapshot: every namespace with its
// entity types, plus the registry of defined fields. It is constructed
// once by a Builder and never mutated afterwards, so concurrent readers
// need no locking; replacing a snapshot is the publisher's problem and
// must be atomic (see loader.Watcher).
type Universe struct {
	namespaces map[string]*Namespace
	fields     map[FieldIdentity]struct{}
}

// Namespace groups the entity types defined under one namespace name.
type Namespace struct {
	name  string
	types map[string]*EntityType
}

// Name returns the namespace name; empty for the global namespace.
func (n *Namespace) Name() string { return n.name }

// Types returns the namespace's types keyed by type name. The returned
// map is shared and must not be modified.
func (n *Namespace) Types() map[string]*EntityType { return n.types }

// Namespaces returns every namespace in the universe, ordered by name for
// deterministic iteration.
func (u *Universe) Namespaces() []*Namespace {
	out := make([]*Namespace, 0, len(u.namespaces))
	for _, ns := range u.namespaces {
		out = append(out, ns)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// ResolveType looks up a type by namespace and name. The returned error is
// an *UndefinedTypeError when no such type exists.
func (u *Universe) ResolveType(namespace, typeName string) (*EntityType, error) {
	if ns, ok := u.namespaces[namespace]; ok {
		if et, ok := ns.types[typeName]; ok {
			return et, nil
		}
	}
	return nil, &UndefinedTypeError{Namespace: namespace, TypeName: typeName}
}

// AllMatchableTypes returns every type an untyped entity could match:
// abstract types and types with no fields at all are excluded. When
// generalType is non-empty, only types carrying it among their ancestor
// names (case-insensitively) are returned. Output order is deterministic:
// namespaces by name, then types by name.
func (u *Universe) AllMatchableTypes(generalType string) []*EntityType {
	var out []*EntityType
	for _, ns := range u.Namespaces() {
		names := make([]string, 0, len(ns.types))
		for name := range ns.types {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			et := ns.types[name]
			if et.isAbstract || len(et.fields) == 0 {
				continue
			}
			if generalType != "" && !et.HasParent(generalType) {
				continue
			}
			out = append(out, et)
		}
	}
	return out
}

// IsFieldDefined reports whether the field exists in the registry. A field
// queried under a named namespace also matches when it is registered in
// the global namespace, since global fields are usable everywhere.
func (u *Universe) IsFieldDefined(field FieldIdentity) bool {
	if _, ok := u.fields[field]; ok {
		return true
	}
	if field.Namespace != "" {
		_, ok := u.fields[FieldIdentity{Name: field.Name}]
		return ok
	}
	return false
}
