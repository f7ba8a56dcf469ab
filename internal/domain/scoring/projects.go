package scoring

const consultancyFactor = 0.5

var investigatorLead = oneOf("chief/co investigator")

// Project is one item-16 entry. AmountSanctioned is in lakhs.
type Project struct {
	Title            string   `json:"title,omitempty"`
	IsHSS            Flag     `json:"is_hss"`
	AmountSanctioned Number   `json:"amount_sanctioned"`
	IsConsultancy    Flag     `json:"is_consultancy"`
	UserAuthorType   string   `json:"user_author_type"`
	OtherAuthors     []Author `json:"other_authors"`
}

// ProjectBase is the undivided score of a project. Humanities, social
// science and management projects use lower amount tiers.
func ProjectBase(p Project) float64 {
	amount := p.AmountSanctioned.Float()
	var base float64
	if p.IsHSS.Bool() {
		switch {
		case amount >= 3:
			base = 20
		case amount >= 1:
			base = 15
		case amount >= 0.25:
			base = 10
		}
	} else {
		switch {
		case amount >= 10:
			base = 20
		case amount >= 4:
			base = 15
		case amount >= 0.5:
			base = 10
		}
	}
	if p.IsConsultancy.Bool() {
		base *= consultancyFactor
	}
	return base
}

// ScoreProject returns the caller's share of a project.
func ScoreProject(p Project) float64 {
	return splitByRole(ProjectBase(p), p.UserAuthorType, p.OtherAuthors, investigatorLead)
}

// ScoreProjects scores item 16.
func ScoreProjects(projects []Project) Result {
	res := Result{Entries: make([]Outcome, 0, len(projects))}
	for _, p := range projects {
		res.Entries = append(res.Entries, Scored(ScoreProject(p)))
	}
	res.Score = sumEntries(res.Entries)
	return res
}
