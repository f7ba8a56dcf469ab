package service

import (
	"encoding/json"
	"fmt"

	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/model"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/scoring"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/types"
)

// Result is the outcome of evaluating one section payload.
type Result = types.ScoreResult

// evaluator scores the raw payload of one section.
type evaluator func(payload json.RawMessage) (scoring.Result, error)

// evaluators maps every form section to its calculator.
var evaluators = map[model.Section]evaluator{
	model.SectionGeneral:         passthrough,
	model.SectionEvents:          decoded(scoring.ScoreEvents),
	model.SectionTeachingLoad:    decoded(infallible(scoring.ScoreTeachingLoad)),
	model.SectionProjectGuidance: decoded(infallible(scoring.ScoreProjectGuidance)),
	model.SectionActivities:      decoded(scoring.ScoreActivities),
	model.SectionPublications:    decoded(infallible(scoring.ScorePublications)),
	model.SectionBooks:           decoded(infallible(scoring.ScoreBooks)),
	model.SectionProjects:        decoded(infallible(scoring.ScoreProjects)),
	model.SectionGuidedDegrees:   decoded(infallible(scoring.ScoreGuidedDegrees)),
	model.SectionPositions:       decoded(infallible(scoring.ScorePositions)),
	model.SectionAwards:          decoded(scoring.ScoreAwards),
}

// Evaluate scores a section payload without storing it. It is a pure
// function of its arguments.
func Evaluate(section model.Section, payload json.RawMessage) (Result, error) {
	eval, ok := evaluators[section]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", model.ErrUnknownSection, section)
	}
	if len(payload) > 0 && !json.Valid(payload) {
		return Result{}, fmt.Errorf("%w: payload is not valid JSON", ErrInvalidInput)
	}
	res, err := eval(payload)
	if err != nil {
		return Result{}, err
	}
	return toResult(res), nil
}

func passthrough(json.RawMessage) (scoring.Result, error) {
	return scoring.Result{}, nil
}

func decoded[T any](score func(T) (scoring.Result, error)) evaluator {
	return func(payload json.RawMessage) (scoring.Result, error) {
		v, err := scoring.Decode[T](payload)
		if err != nil {
			return scoring.Result{}, err
		}
		return score(v)
	}
}

func infallible[T any](score func(T) scoring.Result) func(T) (scoring.Result, error) {
	return func(v T) (scoring.Result, error) {
		return score(v), nil
	}
}

func toResult(r scoring.Result) Result {
	out := Result{Score: r.Score, Undetermined: r.Undetermined()}
	if len(r.Entries) == 0 && len(r.Parts) == 0 {
		return out
	}
	b := &model.Breakdown{}
	if len(r.Entries) > 0 {
		b.Entries = make([]model.EntryScore, len(r.Entries))
		for i, e := range r.Entries {
			b.Entries[i] = model.EntryScore{Score: e.Points(), Undetermined: e.Reason()}
		}
	}
	if len(r.Parts) > 0 {
		b.Parts = make(map[string]float64, len(r.Parts))
		for k, v := range r.Parts {
			b.Parts[k] = v
		}
	}
	out.Breakdown = b
	return out
}
