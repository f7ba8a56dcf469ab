package scoring

// Position is one item-18 entry.
type Position struct {
	PositionType string `json:"position_type"`
	Name         string `json:"name,omitempty"`
}

// ScorePosition awards 10 for a chairmanship and 5 otherwise.
func ScorePosition(p Position) float64 {
	if normalize(p.PositionType) == "chairmanship" {
		return 10
	}
	return 5
}

// ScorePositions scores item 18. The total is not capped.
func ScorePositions(positions []Position) Result {
	res := Result{Entries: make([]Outcome, 0, len(positions))}
	for _, p := range positions {
		res.Entries = append(res.Entries, Scored(ScorePosition(p)))
	}
	res.Score = sumEntries(res.Entries)
	return res
}
