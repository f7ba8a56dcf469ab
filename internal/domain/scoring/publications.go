package scoring

import (
	"math"
	"strings"
)

const indexedBonus = 5

var publicationBase = map[string]float64{
	"IJ": 15,
	"NJ": 10,
	"IC": 10,
	"NC": 8,
	"LC": 6,
	"PN": 4,
	"OA": 2,
}

var publicationLead = oneOf(
	"first/principal author",
	"corresponding author/supervisor/mentor",
)

// Publication is one item-14 entry.
type Publication struct {
	Title          string   `json:"title,omitempty"`
	PubType        string   `json:"pub_type"`
	ISBNISSN       string   `json:"isbn_issn"`
	Indexed        Flag     `json:"indexed"`
	ImpactFactor   Number   `json:"impact_factor"`
	UserAuthorType string   `json:"user_author_type"`
	OtherAuthors   []Author `json:"other_authors"`
}

// PublicationBase is the undivided score of a publication: the type score,
// the indexing bonus and the impact factor bonus.
func PublicationBase(p Publication) float64 {
	pubType := strings.ToUpper(strings.TrimSpace(p.PubType))
	base := publicationBase[pubType]
	if pubType == "OJ" {
		switch strings.ToUpper(strings.TrimSpace(p.ISBNISSN)) {
		case "ISBN", "ISSN":
			base = 7
		default:
			base = 3
		}
	}
	if p.Indexed.Bool() {
		base += indexedBonus
	}
	return base + impactBonus(p.ImpactFactor.Float())
}

// impactBonus tiers the impact factor after truncating it to an integer.
func impactBonus(factor float64) float64 {
	switch f := math.Trunc(factor); {
	case f > 5:
		return 25
	case f > 2:
		return 15
	case f >= 1:
		return 10
	default:
		return 0
	}
}

// ScorePublication returns the caller's share of a publication.
func ScorePublication(p Publication) float64 {
	return splitPooled(PublicationBase(p), p.UserAuthorType, p.OtherAuthors, publicationLead)
}

// ScorePublications scores item 14 as the sum of every entry's share.
func ScorePublications(pubs []Publication) Result {
	res := Result{Entries: make([]Outcome, 0, len(pubs))}
	for _, p := range pubs {
		res.Entries = append(res.Entries, Scored(ScorePublication(p)))
	}
	res.Score = sumEntries(res.Entries)
	return res
}
