package scoring

import (
	"math"
	"strings"
)

const (
	activitiesCeiling = 60
	activityCeiling   = 20
	// Sub-section E carries its own ceilings.
	extensionCeiling      = 10
	extensionEntryCeiling = 3
)

// Activity is one item-13 entry. Each sub-section reads its own field:
// A played_lead_role, B role, C position_type, D nature, E points.
type Activity struct {
	PlayedLeadRole Flag   `json:"played_lead_role"`
	Role           string `json:"role"`
	PositionType   string `json:"position_type"`
	Nature         string `json:"nature"`
	Points         Number `json:"points"`
}

var leadPositions = []string{
	"director",
	"dean",
	"hod",
	"time table incharge",
	"incharge training & placement",
	"chairman of institution level committee",
	"other similar level position",
}

// ScoreActivityGroup scores the entries of one item-13 sub-section (A to E).
func ScoreActivityGroup(letter string, entries []Activity) (float64, error) {
	var total float64
	switch letter {
	case "A":
		for _, a := range entries {
			if a.PlayedLeadRole.Bool() {
				total += 10
			} else {
				total += 5
			}
		}
		return Cap(total, activityCeiling), nil

	case "B":
		for _, a := range entries {
			switch normalize(a.Role) {
			case "incharge", "chairman", "incharge/chairman":
				total += 5
			case "member":
				total += 3
			}
		}
		return Cap(total, activityCeiling), nil

	case "C":
		for _, a := range entries {
			pos := normalize(a.PositionType)
			switch {
			case isLeadPosition(pos):
				total += 10
			case pos == "member" || pos == "individual responsibility":
				total += 5
			}
		}
		return Cap(total, activityCeiling), nil

	case "D":
		for _, a := range entries {
			switch normalize(a.Nature) {
			case "outside":
				total += 10
			case "within":
				total += 5
			}
		}
		return Cap(total, activityCeiling), nil

	case "E":
		for _, a := range entries {
			p := math.Trunc(a.Points.Float())
			total += max(0, min(p, extensionEntryCeiling))
		}
		return Cap(total, extensionCeiling), nil

	default:
		return 0, invalidf("item 13 sub-section %q", letter)
	}
}

func isLeadPosition(pos string) bool {
	for _, lp := range leadPositions {
		if strings.Contains(pos, lp) {
			return true
		}
	}
	return false
}

// ScoreActivities scores item 13. Parts holds the capped score of each
// sub-section; the total is capped at 60.
func ScoreActivities(groups map[string][]Activity) (Result, error) {
	res := Result{Parts: make(map[string]float64, len(groups))}
	var total float64
	for _, letter := range sortedKeys(groups) {
		score, err := ScoreActivityGroup(letter, groups[letter])
		if err != nil {
			return Result{}, err
		}
		res.Parts[letter] = score
		total += score
	}
	res.Score = Cap(total, activitiesCeiling)
	return res, nil
}
