package scoring

import "math"

const (
	selfAwardCeiling    = 30
	nationalAwardPoints = 30
	intlAwardPoints     = 50
)

// Award is one item-19 entry. Points is only read for self-reported awards.
type Award struct {
	Title  string `json:"title,omitempty"`
	Points Number `json:"points"`
}

// ScoreAwardGroup scores one item-19 award type.
func ScoreAwardGroup(kind string, awards []Award) (float64, error) {
	switch kind {
	case "self":
		var sum float64
		for _, a := range awards {
			sum += math.Trunc(a.Points.Float())
		}
		return Cap(max(sum, 0), selfAwardCeiling), nil
	case "national":
		return float64(len(awards) * nationalAwardPoints), nil
	case "international":
		return float64(len(awards) * intlAwardPoints), nil
	default:
		return 0, invalidf("award type %q", kind)
	}
}

// ScoreAwards scores item 19. Parts holds each award type's score; the
// total is not capped.
func ScoreAwards(groups map[string][]Award) (Result, error) {
	res := Result{Parts: make(map[string]float64, len(groups))}
	for _, kind := range sortedKeys(groups) {
		score, err := ScoreAwardGroup(kind, groups[kind])
		if err != nil {
			return Result{}, err
		}
		res.Parts[kind] = score
		res.Score += score
	}
	return res, nil
}
