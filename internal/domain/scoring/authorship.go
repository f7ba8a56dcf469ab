package scoring

// Author is a co-author, co-investigator or co-supervisor of a joint work.
type Author struct {
	Name       string `json:"name"`
	AuthorType string `json:"author_type"`
}

// Share fractions of a joint work.
const (
	leadShareOfTwo   = 0.6
	otherShareOfTwo  = 0.4
	leadShareOfMany  = 0.4
	otherShareOfMany = 0.6
	leadPool         = 0.6
	otherPool        = 0.4
)

type rolePredicate func(authorType string) bool

func oneOf(roles ...string) rolePredicate {
	return func(authorType string) bool {
		t := normalize(authorType)
		for _, r := range roles {
			if t == r {
				return true
			}
		}
		return false
	}
}

// splitPooled returns the caller's share of base for a publication.
//
// Lead authors share 60% and the others 40%. When a lead author's share
// would be below an other author's share, every author gets an equal part.
// With only one group present the split is per capita.
func splitPooled(base float64, self string, others []Author, isLead rolePredicate) float64 {
	if len(others) == 0 {
		return base
	}
	nLead, nOther := 0, 0
	count := func(t string) {
		if isLead(t) {
			nLead++
		} else {
			nOther++
		}
	}
	count(self)
	for _, a := range others {
		count(a.AuthorType)
	}
	nTotal := float64(nLead + nOther)
	if nLead == 0 || nOther == 0 {
		return base / nTotal
	}

	leadPoint := base * leadPool / float64(nLead)
	otherPoint := base * otherPool / float64(nOther)
	if leadPoint < otherPoint {
		return base / nTotal
	}
	if isLead(self) {
		return leadPoint
	}
	return otherPoint
}

// splitByRole returns the caller's share of base for a book, project or
// guided degree.
//
// Two authors split 60/40 by role. With more than two, the lead role shares
// 40% among the caller and the lead co-authors and everyone else shares 60%.
func splitByRole(base float64, self string, others []Author, isLead rolePredicate) float64 {
	if len(others) == 0 {
		return base
	}
	selfLead := isLead(self)
	if len(others) == 1 {
		if selfLead {
			return base * leadShareOfTwo
		}
		return base * otherShareOfTwo
	}

	lead, other := 0, 0
	for _, a := range others {
		if isLead(a.AuthorType) {
			lead++
		} else {
			other++
		}
	}
	if selfLead {
		return base * leadShareOfMany / float64(lead+1)
	}
	return base * otherShareOfMany / float64(other+1)
}
