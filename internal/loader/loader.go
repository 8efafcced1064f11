// Package loader reads an ontology corpus from disk and builds the
// immutable Universe snapshot the explorer engine queries. The corpus is
// a directory tree: field and type documents directly under the root
// belong to the global namespace, and each subdirectory is a namespace of
// its own, holding a fields.yaml and a types.yaml.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"ontoscout/internal/ontology"
)

const (
	fieldsFile = "fields.yaml"
	typesFile  = "types.yaml"
)

// fieldsDoc is the on-disk shape of a namespace's field declarations.
type fieldsDoc struct {
	Literals []string `yaml:"literals"`
}

// typeDoc is the on-disk shape of one entity type declaration.
type typeDoc struct {
	Description string   `yaml:"description"`
	IsAbstract  bool     `yaml:"is_abstract"`
	Implements  []string `yaml:"implements"`
	Uses        []string `yaml:"uses"`
	OptUses     []string `yaml:"opt_uses"`
}

// parsedNamespace holds one namespace's declarations after parsing,
// before they are fed to the builder.
type parsedNamespace struct {
	name   string
	fields []string
	types  map[string]typeDoc
}

// Load reads the ontology corpus rooted at dir and returns the built
// Universe. Namespace directories are parsed concurrently; all builder
// findings are reported together.
func Load(dir string) (*ontology.Universe, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading ontology dir: %w", err)
	}

	namespaces := []string{""}
	for _, entry := range entries {
		if entry.IsDir() {
			namespaces = append(namespaces, entry.Name())
		}
	}

	parsed := make([]*parsedNamespace, len(namespaces))
	var g errgroup.Group
	for i, name := range namespaces {
		g.Go(func() error {
			ns, err := parseNamespace(filepath.Join(dir, name), name)
			if err != nil {
				return err
			}
			parsed[i] = ns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := ontology.NewBuilder()
	for _, ns := range parsed {
		if err := feedBuilder(b, ns); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// parseNamespace reads one namespace directory. Missing documents are
// fine; a namespace may declare only fields or only types.
func parseNamespace(dir, name string) (*parsedNamespace, error) {
	ns := &parsedNamespace{name: name}

	var fields fieldsDoc
	if err := readYAML(filepath.Join(dir, fieldsFile), &fields); err != nil {
		return nil, err
	}
	ns.fields = fields.Literals

	if err := readYAML(filepath.Join(dir, typesFile), &ns.types); err != nil {
		return nil, err
	}
	return ns, nil
}

// readYAML parses one optional document, attaching the file path to any
// failure. A missing file leaves out untouched.
func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// feedBuilder registers one parsed namespace with the builder. Types are
// fed in sorted order so findings are reported stably.
func feedBuilder(b *ontology.Builder, ns *parsedNamespace) error {
	for _, literal := range ns.fields {
		field := ontology.FieldIdentity{Namespace: ns.name, Name: literal}
		if err := b.AddField(field); err != nil {
			return fmt.Errorf("namespace %q: %w", ns.name, err)
		}
	}

	names := make([]string, 0, len(ns.types))
	for name := range ns.types {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		doc := ns.types[name]
		err := b.AddType(ontology.TypeDecl{
			Namespace:   ns.name,
			Name:        name,
			Description: doc.Description,
			IsAbstract:  doc.IsAbstract,
			Implements:  doc.Implements,
			Uses:        doc.Uses,
			OptUses:     doc.OptUses,
		})
		if err != nil {
			return fmt.Errorf("namespace %q: %w", ns.name, err)
		}
	}
	return nil
}
