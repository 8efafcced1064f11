package ontology

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// TypeDecl is a raw entity type declaration as it appears in an ontology
// source file, before field references are resolved and inheritance is
// flattened. Uses lists required field literals, OptUses optional ones;
// literals may carry a trailing _<digits> increment. Implements lists
// parent types, either bare names (same namespace, then global) or
// qualified "NAMESPACE/NAME" references.
type TypeDecl struct {
	Namespace   string
	Name        string
	Description string
	IsAbstract  bool
	Implements  []string
	Uses        []string
	OptUses     []string
}

func (d TypeDecl) key() string {
	if d.Namespace == "" {
		return d.Name
	}
	return d.Namespace + "/" + d.Name
}

// Builder accumulates field and type declarations and assembles them into
// an immutable Universe. Build validates every field reference, resolves
// parent types, rejects inheritance cycles, and flattens inherited fields,
// so every type in the resulting Universe is queryable. This is the only
// way to obtain expanded types.
type Builder struct {
	fields map[FieldIdentity]struct{}
	decls  map[string]map[string]TypeDecl
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		fields: make(map[FieldIdentity]struct{}),
		decls:  make(map[string]map[string]TypeDecl),
	}
}

// AddField registers a field in the given namespace (empty for global).
func (b *Builder) AddField(field FieldIdentity) error {
	if !field.IsWellFormed() {
		return fmt.Errorf("malformed field name %q", field.String())
	}
	if _, ok := b.fields[field]; ok {
		return fmt.Errorf("field %s declared twice", field.String())
	}
	b.fields[field] = struct{}{}
	return nil
}

// AddType registers a raw type declaration.
func (b *Builder) AddType(decl TypeDecl) error {
	if strings.TrimSpace(decl.Name) == "" {
		return errors.New("type declaration with empty name")
	}
	ns, ok := b.decls[decl.Namespace]
	if !ok {
		ns = make(map[string]TypeDecl)
		b.decls[decl.Namespace] = ns
	}
	if _, ok := ns[decl.Name]; ok {
		return fmt.Errorf("type %s declared twice", decl.key())
	}
	ns[decl.Name] = decl
	return nil
}

// Build validates all declarations and returns the immutable Universe.
// All findings are reported at once via errors.Join rather than stopping
// at the first problem.
func (b *Builder) Build() (*Universe, error) {
	e := &expansion{
		builder:  b,
		done:     make(map[string]*EntityType),
		visiting: make(map[string]bool),
	}

	var findings []error
	u := &Universe{
		namespaces: make(map[string]*Namespace),
		fields:     make(map[FieldIdentity]struct{}, len(b.fields)),
	}
	for f := range b.fields {
		u.fields[f] = struct{}{}
	}

	for _, nsName := range b.namespaceNames() {
		ns := &Namespace{name: nsName, types: make(map[string]*EntityType)}
		for _, typeName := range b.typeNames(nsName) {
			et, err := e.expand(b.decls[nsName][typeName])
			if err != nil {
				findings = append(findings, err)
				continue
			}
			ns.types[typeName] = et
		}
		u.namespaces[nsName] = ns
	}

	if len(findings) > 0 {
		return nil, errors.Join(findings...)
	}
	return u, nil
}

func (b *Builder) namespaceNames() []string {
	names := make([]string, 0, len(b.decls))
	for name := range b.decls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *Builder) typeNames(namespace string) []string {
	names := make([]string, 0, len(b.decls[namespace]))
	for name := range b.decls[namespace] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveFieldRef turns a field literal from a type declaration into a
// FieldDefinition. The literal is first tried verbatim, then with one
// trailing _<digits> group split off as the increment. Lookup prefers the
// declaring namespace and falls back to the global namespace.
func (b *Builder) resolveFieldRef(namespace, literal string, optional bool) (FieldDefinition, error) {
	try := func(name string) (FieldIdentity, bool) {
		if namespace != "" {
			if _, ok := b.fields[FieldIdentity{Namespace: namespace, Name: name}]; ok {
				return FieldIdentity{Namespace: namespace, Name: name}, true
			}
		}
		if _, ok := b.fields[FieldIdentity{Name: name}]; ok {
			return FieldIdentity{Name: name}, true
		}
		return FieldIdentity{}, false
	}

	if id, ok := try(literal); ok {
		return FieldDefinition{FieldIdentity: id, Optional: optional}, nil
	}
	if base, increment, ok := splitIncrement(literal); ok {
		if id, found := try(base); found {
			return FieldDefinition{FieldIdentity: id, Optional: optional, Increment: increment}, nil
		}
	}
	return FieldDefinition{}, fmt.Errorf("field %q is not defined", literal)
}

// splitIncrement splits a trailing _<digits> group off a field literal.
func splitIncrement(literal string) (base, increment string, ok bool) {
	i := strings.LastIndex(literal, "_")
	if i <= 0 || i == len(literal)-1 {
		return "", "", false
	}
	suffix := literal[i+1:]
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return "", "", false
		}
	}
	return literal[:i], suffix, true
}

// expansion carries the memoized state of one Build pass.
type expansion struct {
	builder  *Builder
	done     map[string]*EntityType
	visiting map[string]bool
}

// expand resolves one declaration into an expanded EntityType, recursively
// expanding parents first. Fields declared directly on a type override
// inherited entries under the same qualified key.
func (e *expansion) expand(decl TypeDecl) (*EntityType, error) {
	key := decl.key()
	if et, ok := e.done[key]; ok {
		return et, nil
	}
	if e.visiting[key] {
		return nil, fmt.Errorf("type %s: inheritance cycle detected", key)
	}
	e.visiting[key] = true
	defer delete(e.visiting, key)

	fields := make(map[string]FieldDefinition)
	parentSet := make(map[string]struct{})

	for _, ref := range decl.Implements {
		parent, err := e.resolveParent(decl.Namespace, ref)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", key, err)
		}
		expanded, err := e.expand(parent)
		if err != nil {
			return nil, err
		}
		for k, f := range expanded.fields {
			fields[k] = f
		}
		parentSet[expanded.name] = struct{}{}
		for _, p := range expanded.parents {
			parentSet[p] = struct{}{}
		}
	}

	for _, group := range []struct {
		literals []string
		optional bool
	}{
		{decl.Uses, false},
		{decl.OptUses, true},
	} {
		for _, literal := range group.literals {
			f, err := e.builder.resolveFieldRef(decl.Namespace, literal, group.optional)
			if err != nil {
				return nil, fmt.Errorf("type %s: %w", key, err)
			}
			fields[f.Key()] = f
		}
	}

	parents := make([]string, 0, len(parentSet))
	for p := range parentSet {
		parents = append(parents, p)
	}
	sort.Strings(parents)

	et := &EntityType{
		namespace:   decl.Namespace,
		name:        decl.Name,
		description: decl.Description,
		isAbstract:  decl.IsAbstract,
		parents:     parents,
		fields:      fields,
		expanded:    true,
	}
	e.done[key] = et
	return et, nil
}

// resolveParent finds the declaration a parent reference points at.
// Qualified "NS/NAME" references resolve exactly; bare names try the
// child's namespace first, then the global namespace.
func (e *expansion) resolveParent(namespace, ref string) (TypeDecl, error) {
	if ns, name, ok := strings.Cut(ref, "/"); ok {
		if decl, found := e.builder.decls[ns][name]; found {
			return decl, nil
		}
		return TypeDecl{}, fmt.Errorf("parent type %q is not defined", ref)
	}
	if decl, found := e.builder.decls[namespace][ref]; found {
		return decl, nil
	}
	if decl, found := e.builder.decls[""][ref]; found {
		return decl, nil
	}
	return TypeDecl{}, fmt.Errorf("parent type %q is not defined", ref)
}
