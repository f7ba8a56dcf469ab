package scoring

import "strings"

const (
	phdOngoingMinMonths = 6
	nonPhDPoints        = 5
)

var supervisorLead = oneOf("chief supervisor")

// GuidedDegree is one item-17 entry: a research degree the faculty member
// supervised.
type GuidedDegree struct {
	StudentName    string   `json:"student_name,omitempty"`
	Degree         string   `json:"degree"`
	Status         string   `json:"status"`
	MonthsOngoing  Number   `json:"months_ongoing"`
	UserAuthorType string   `json:"user_author_type"`
	OtherAuthors   []Author `json:"other_authors"`
}

// GuidedDegreeBase is the undivided score of a guided degree. A PhD that is
// ongoing for six months or less, or has an unknown status, is undetermined.
func GuidedDegreeBase(g GuidedDegree) Outcome {
	if !isPhD(g.Degree) {
		return Scored(nonPhDPoints)
	}
	switch status := normalize(g.Status); {
	case status == "awarded":
		return Scored(10)
	case status == "thesis submitted":
		return Scored(7)
	case status == "ongoing" && g.MonthsOngoing.Float() > phdOngoingMinMonths:
		return Scored(3)
	case status == "ongoing":
		return Undetermined("phd ongoing for six months or less")
	default:
		return Undetermined("unknown phd status " + g.Status)
	}
}

// ScoreGuidedDegree returns the caller's share of a guided degree.
func ScoreGuidedDegree(g GuidedDegree) Outcome {
	base := GuidedDegreeBase(g)
	v, ok := base.Value()
	if !ok {
		return base
	}
	return Scored(splitByRole(v, g.UserAuthorType, g.OtherAuthors, supervisorLead))
}

// ScoreGuidedDegrees scores item 17.
func ScoreGuidedDegrees(degrees []GuidedDegree) Result {
	res := Result{Entries: make([]Outcome, 0, len(degrees))}
	for _, g := range degrees {
		res.Entries = append(res.Entries, ScoreGuidedDegree(g))
	}
	res.Score = sumEntries(res.Entries)
	return res
}

// isPhD matches "PhD", "Ph.D.", "ph d" and similar spellings.
func isPhD(degree string) bool {
	d := strings.NewReplacer(".", "", " ", "").Replace(normalize(degree))
	return d == "phd"
}
