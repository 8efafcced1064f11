package explorer

import "ontoscout/internal/ontology"

// matchScore computes the similarity between an observed field set and a
// canonical type's field map as the average of two f-score-like terms.
//
// The first term measures overlap across all canonical fields regardless
// of optionality: correct matches minus extraneous observed fields,
// normalized by the observed set size. The second term repeats the
// measure restricted to required fields, normalized by the required
// count, which weights types whose mandatory fields are well satisfied
// above types that merely share optional fields. The average keeps the
// result in [-1, 1], so scores are comparable across types of different
// sizes. Types with no required fields use only the first term.
//
// Fields are compared by standardized identity only; optionality and
// increment never affect membership.
func matchScore(concrete map[ontology.FieldIdentity]struct{}, canonical map[string]ontology.FieldDefinition) (float64, error) {
	if len(concrete) == 0 {
		return 0, &EmptyFieldSetError{}
	}

	standard := make(map[ontology.FieldIdentity]struct{}, len(canonical))
	required := make(map[ontology.FieldIdentity]struct{})
	for _, f := range canonical {
		standard[f.Standardize()] = struct{}{}
		if !f.Optional {
			required[f.Standardize()] = struct{}{}
		}
	}

	var ma, mr, e int
	for f := range concrete {
		_, inAll := standard[f]
		if inAll {
			ma++
		} else {
			e++
		}
		if _, inRequired := required[f]; inRequired {
			mr++
		}
	}
	var a int
	for f := range required {
		if _, ok := concrete[f]; !ok {
			a++
		}
	}

	c := len(concrete)
	tr := len(required)

	allTerm := float64(ma-e) / float64(c)
	if tr == 0 {
		return allTerm / 2, nil
	}
	requiredTerm := float64(mr-a) / float64(tr)
	return (allTerm + requiredTerm) / 2, nil
}
