package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b := NewBuilder()
	for _, name := range []string{"temperature", "occupancy", "humidity", "setpoint"} {
		require.NoError(t, b.AddField(FieldIdentity{Name: name}))
	}
	require.NoError(t, b.AddField(FieldIdentity{Namespace: "HVAC", Name: "flowrate"}))
	return b
}

func TestBuilderFlattensInheritedFields(t *testing.T) {
	b := newTestBuilder(t)
	require.NoError(t, b.AddType(TypeDecl{
		Namespace:  "FACILITIES",
		Name:       "ZONE",
		IsAbstract: true,
		Uses:       []string{"occupancy"},
	}))
	require.NoError(t, b.AddType(TypeDecl{
		Namespace:  "FACILITIES",
		Name:       "ROOM",
		Implements: []string{"ZONE"},
		Uses:       []string{"temperature"},
		OptUses:    []string{"humidity"},
	}))

	u, err := b.Build()
	require.NoError(t, err)

	room, err := u.ResolveType("FACILITIES", "ROOM")
	require.NoError(t, err)
	assert.True(t, room.FieldsExpanded())
	assert.True(t, room.HasParent("zone"), "parent tags match case-insensitively")

	fields := room.AllFields()
	require.Len(t, fields, 3)
	assert.False(t, fields["occupancy"].Optional, "inherited required field")
	assert.False(t, fields["temperature"].Optional)
	assert.True(t, fields["humidity"].Optional)
}

func TestBuilderChildOverridesInheritedOptionality(t *testing.T) {
	b := newTestBuilder(t)
	require.NoError(t, b.AddType(TypeDecl{
		Namespace:  "FACILITIES",
		Name:       "ZONE",
		IsAbstract: true,
		OptUses:    []string{"occupancy"},
	}))
	require.NoError(t, b.AddType(TypeDecl{
		Namespace:  "FACILITIES",
		Name:       "ROOM",
		Implements: []string{"ZONE"},
		Uses:       []string{"occupancy"},
	}))

	u, err := b.Build()
	require.NoError(t, err)

	room, err := u.ResolveType("FACILITIES", "ROOM")
	require.NoError(t, err)
	assert.False(t, room.AllFields()["occupancy"].Optional)
}

func TestBuilderResolvesIncrementedFieldRefs(t *testing.T) {
	b := newTestBuilder(t)
	require.NoError(t, b.AddType(TypeDecl{
		Namespace: "HVAC",
		Name:      "FAN",
		Uses:      []string{"temperature_1", "temperature_2", "flowrate"},
	}))

	u, err := b.Build()
	require.NoError(t, err)

	fan, err := u.ResolveType("HVAC", "FAN")
	require.NoError(t, err)

	fields := fan.AllFields()
	require.Len(t, fields, 3)
	assert.Equal(t, "1", fields["temperature_1"].Increment)
	assert.Equal(t, "2", fields["temperature_2"].Increment)
	assert.Equal(t, FieldIdentity{Name: "temperature"}, fields["temperature_1"].Standardize())
	assert.Equal(t, fields["temperature_1"].Standardize(), fields["temperature_2"].Standardize(),
		"increments standardize to the same identity")
	assert.Equal(t, "HVAC", fields["HVAC/flowrate"].Namespace, "namespaced field resolves locally")
}

func TestBuilderRejectsUnknownFieldAndParent(t *testing.T) {
	b := newTestBuilder(t)
	require.NoError(t, b.AddType(TypeDecl{
		Namespace: "FACILITIES",
		Name:      "ROOM",
		Uses:      []string{"barometric_pressure"},
	}))
	require.NoError(t, b.AddType(TypeDecl{
		Namespace:  "FACILITIES",
		Name:       "LOBBY",
		Implements: []string{"ATRIUM"},
	}))

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "barometric_pressure" is not defined`)
	assert.Contains(t, err.Error(), `parent type "ATRIUM" is not defined`)
}

func TestBuilderRejectsInheritanceCycle(t *testing.T) {
	b := newTestBuilder(t)
	require.NoError(t, b.AddType(TypeDecl{Namespace: "X", Name: "A", Implements: []string{"B"}}))
	require.NoError(t, b.AddType(TypeDecl{Namespace: "X", Name: "B", Implements: []string{"A"}}))

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inheritance cycle")
}

func TestBuilderRejectsDuplicates(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddField(FieldIdentity{Name: "temperature"}))
	assert.Error(t, b.AddField(FieldIdentity{Name: "temperature"}))
	assert.Error(t, b.AddField(FieldIdentity{Name: "bad name"}))

	require.NoError(t, b.AddType(TypeDecl{Namespace: "X", Name: "A"}))
	assert.Error(t, b.AddType(TypeDecl{Namespace: "X", Name: "A"}))
	assert.Error(t, b.AddType(TypeDecl{Namespace: "X"}))
}
