package explorer

import "ontoscout/internal/ontology"

// Match ties one observed field set to one canonical type with the
// computed similarity score. Matches are immutable once created.
type Match struct {
	fields     []ontology.FieldIdentity
	entityType *ontology.EntityType
	score      float64
}

func newMatch(fields []ontology.FieldIdentity, entityType *ontology.EntityType, score float64) Match {
	copied := make([]ontology.FieldIdentity, len(fields))
	copy(copied, fields)
	return Match{fields: copied, entityType: entityType, score: score}
}

// Fields returns a copy of the observed field set the match was computed
// for.
func (m Match) Fields() []ontology.FieldIdentity {
	out := make([]ontology.FieldIdentity, len(m.fields))
	copy(out, m.fields)
	return out
}

// Type returns the canonical type that was scored.
func (m Match) Type() *ontology.EntityType { return m.entityType }

// Score returns the similarity score in [-1, 1].
func (m Match) Score() float64 { return m.score }
