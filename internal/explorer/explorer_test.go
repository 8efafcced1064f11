package explorer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ontoscout/internal/ontology"
)

func buildTestUniverse(t *testing.T) *ontology.Universe {
	t.Helper()
	b := ontology.NewBuilder()
	for _, name := range []string{"temperature", "occupancy", "humidity", "setpoint"} {
		require.NoError(t, b.AddField(ontology.FieldIdentity{Name: name}))
	}
	require.NoError(t, b.AddField(ontology.FieldIdentity{Namespace: "HVAC", Name: "flowrate"}))

	require.NoError(t, b.AddType(ontology.TypeDecl{
		Namespace:  "FACILITIES",
		Name:       "ZONE",
		IsAbstract: true,
		Uses:       []string{"occupancy"},
	}))
	require.NoError(t, b.AddType(ontology.TypeDecl{
		Namespace:  "FACILITIES",
		Name:       "ROOM",
		Implements: []string{"ZONE"},
		Uses:       []string{"temperature"},
		OptUses:    []string{"humidity"},
	}))
	require.NoError(t, b.AddType(ontology.TypeDecl{
		Namespace: "FACILITIES",
		Name:      "LOBBY",
		OptUses:   []string{"temperature", "humidity"},
	}))
	require.NoError(t, b.AddType(ontology.TypeDecl{
		Namespace: "HVAC",
		Name:      "FAN",
		Uses:      []string{"flowrate", "setpoint"},
	}))

	u, err := b.Build()
	require.NoError(t, err)
	return u
}

func TestFieldsOfOrderingAndDeterminism(t *testing.T) {
	x := New(buildTestUniverse(t))

	first, err := x.FieldsOf("FACILITIES", "ROOM", false)
	require.NoError(t, err)
	second, err := x.FieldsOf("FACILITIES", "ROOM", false)
	require.NoError(t, err)

	var names []string
	for _, f := range first {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"humidity", "occupancy", "temperature"}, names,
		"ascending (namespace, name) order, inherited occupancy included")
	assert.Empty(t, cmp.Diff(first, second), "identical calls return identical output")
}

func TestFieldsOfRequiredOnlyIsSubset(t *testing.T) {
	x := New(buildTestUniverse(t))

	all, err := x.FieldsOf("FACILITIES", "ROOM", false)
	require.NoError(t, err)
	required, err := x.FieldsOf("FACILITIES", "ROOM", true)
	require.NoError(t, err)

	var want []ontology.FieldDefinition
	for _, f := range all {
		if !f.Optional {
			want = append(want, f)
		}
	}
	assert.Empty(t, cmp.Diff(want, required))
}

func TestFieldsOfUndefinedType(t *testing.T) {
	x := New(buildTestUniverse(t))

	_, err := x.FieldsOf("FACILITIES", "CLOSET", false)
	var undefined *ontology.UndefinedTypeError
	require.ErrorAs(t, err, &undefined)
}

func TestFieldsOfUnexpandedType(t *testing.T) {
	u := buildTestUniverse(t)
	raw := ontology.NewEntityType("FACILITIES", "ROOM", false, []ontology.FieldDefinition{
		{FieldIdentity: ontology.FieldIdentity{Name: "temperature"}},
	})
	x := New(&stubIndex{Index: u, resolved: raw})

	_, err := x.FieldsOf("FACILITIES", "ROOM", false)
	var notExpanded *ontology.InheritanceNotExpandedError
	require.ErrorAs(t, err, &notExpanded)
}

// stubIndex overrides resolution and enumeration to inject hand-built
// types that never went through the Builder.
type stubIndex struct {
	Index
	resolved   *ontology.EntityType
	enumerated []*ontology.EntityType
}

func (s *stubIndex) ResolveType(namespace, typeName string) (*ontology.EntityType, error) {
	if s.resolved != nil {
		return s.resolved, nil
	}
	return s.Index.ResolveType(namespace, typeName)
}

func (s *stubIndex) AllMatchableTypes(generalType string) []*ontology.EntityType {
	if s.enumerated != nil {
		return s.enumerated
	}
	return s.Index.AllMatchableTypes(generalType)
}

func TestRankTypesBestFirst(t *testing.T) {
	x := New(buildTestUniverse(t))

	matches, err := x.RankTypes([]ontology.FieldIdentity{
		{Name: "temperature"},
		{Name: "occupancy"},
	}, "", false)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "FACILITIES/ROOM", matches[0].Type().Key())
	assert.Equal(t, 1.0, matches[0].Score())
	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i].Score(), matches[i-1].Score(),
			"matches are ordered highest score first")
	}
}

func TestRankTypesGeneralTypeFilter(t *testing.T) {
	x := New(buildTestUniverse(t))

	matches, err := x.RankTypes([]ontology.FieldIdentity{{Name: "temperature"}}, "zone", false)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "ROOM", matches[0].Type().Name())
}

func TestRankTypesBestFitIsThresholdedSubset(t *testing.T) {
	x := New(buildTestUniverse(t))
	observed := []ontology.FieldIdentity{{Name: "pressure"}, {Name: "temperature"}}

	all, err := x.RankTypes(observed, "", false)
	require.NoError(t, err)
	best, err := x.RankTypes(observed, "", true)
	require.NoError(t, err)

	assert.Less(t, len(best), len(all))
	for _, m := range best {
		assert.Greater(t, m.Score(), x.MatchThreshold())
	}
}

func TestRankTypesCustomThreshold(t *testing.T) {
	x := New(buildTestUniverse(t), WithMatchThreshold(0.9))

	best, err := x.RankTypes([]ontology.FieldIdentity{
		{Name: "temperature"},
		{Name: "occupancy"},
	}, "", true)
	require.NoError(t, err)
	require.Len(t, best, 1, "only the perfect match clears a 0.9 threshold")
	assert.Equal(t, "FACILITIES/ROOM", best[0].Type().Key())
}

func TestRankTypesEmptyFieldSet(t *testing.T) {
	x := New(buildTestUniverse(t))

	_, err := x.RankTypes(nil, "", false)
	var empty *EmptyFieldSetError
	require.ErrorAs(t, err, &empty)
}

func TestRankTypesRejectsUnexpandedCandidate(t *testing.T) {
	u := buildTestUniverse(t)
	raw := ontology.NewEntityType("FACILITIES", "ROOM", false, []ontology.FieldDefinition{
		{FieldIdentity: ontology.FieldIdentity{Name: "temperature"}},
	})
	x := New(&stubIndex{Index: u, enumerated: []*ontology.EntityType{raw}})

	_, err := x.RankTypes([]ontology.FieldIdentity{{Name: "temperature"}}, "", false)
	var notExpanded *ontology.InheritanceNotExpandedError
	require.ErrorAs(t, err, &notExpanded)
}

func TestRankTypesDeduplicatesObservedFields(t *testing.T) {
	x := New(buildTestUniverse(t))

	matches, err := x.RankTypes([]ontology.FieldIdentity{
		{Name: "temperature"},
		{Name: "temperature"},
		{Name: "occupancy"},
	}, "", false)
	require.NoError(t, err)
	assert.Equal(t, 1.0, matches[0].Score(), "duplicate observations count once")
}

func TestMatchIsImmutable(t *testing.T) {
	x := New(buildTestUniverse(t))
	observed := []ontology.FieldIdentity{{Name: "temperature"}, {Name: "occupancy"}}

	matches, err := x.RankTypes(observed, "", false)
	require.NoError(t, err)

	observed[0].Name = "mutated"
	fields := matches[0].Fields()
	assert.Equal(t, "temperature", fields[0].Name)

	fields[1].Name = "mutated"
	assert.Equal(t, "occupancy", matches[0].Fields()[1].Name)
}

func TestIsValid(t *testing.T) {
	x := New(buildTestUniverse(t))

	ok, err := x.IsValid(ontology.FieldIdentity{Name: "temperature"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = x.IsValid(ontology.FieldIdentity{Namespace: "HVAC", Name: "flowrate"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = x.IsValid(ontology.FieldIdentity{Namespace: "FACILITIES", Name: "flowrate"})
	require.NoError(t, err)
	assert.False(t, ok, "field registered in HVAC is not valid elsewhere")

	ok, err = x.IsValid(ontology.FieldIdentity{Namespace: "HVAC", Name: "temperature"})
	require.NoError(t, err)
	assert.True(t, ok, "globally registered field is valid in any namespace")
}

func TestIsValidMalformedField(t *testing.T) {
	x := New(buildTestUniverse(t))

	for _, field := range []ontology.FieldIdentity{
		{},
		{Name: "  "},
		{Name: "bad name"},
		{Namespace: "A/B", Name: "temperature"},
	} {
		_, err := x.IsValid(field)
		var invalid *InvalidFieldError
		require.ErrorAs(t, err, &invalid, "field %q", field.String())
	}
}
