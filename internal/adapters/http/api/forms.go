package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/tashifkhan/faculty-appraisal-system/internal/adapters/mq/queue"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/model"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/types"
)

const (
	messageFormIngested = "Form ingested successfully"
	messageFormPartial  = "Form ingested with errors"
)

// FormDependencies accepts section jobs for the worker pool.
type FormDependencies interface {
	Enqueue(ctx context.Context, j queue.Job) bool
}

// FormsHandler handles whole-form submissions. Each section becomes one
// job; the handler waits for all of them and reports per-section results.
type FormsHandler struct {
	deps FormDependencies
}

// NewFormsHandler creates a new forms handler.
func NewFormsHandler(deps FormDependencies) *FormsHandler {
	return &FormsHandler{deps: deps}
}

type sectionDone struct {
	key string
	res types.ScoreResult
	err error
}

// HandleSubmitForm handles POST /api/v1/forms requests.
func (h *FormsHandler) HandleSubmitForm(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_form"
	var req types.FormRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	switch {
	case strings.TrimSpace(req.UserID) == "":
		writeError(w, http.StatusBadRequest, "invalid_input", WrapKind(op, ErrBadRequest, errors.New("missing user_id")))
		return
	case len(req.Sections) == 0:
		writeError(w, http.StatusBadRequest, "invalid_input", WrapKind(op, ErrBadRequest, errors.New("no sections submitted")))
		return
	}
	if err := authorize(r.Context(), req.UserID); err != nil {
		writeError(w, http.StatusForbidden, "forbidden", Wrap(op, err))
		return
	}

	sections := make(map[string]model.Section, len(req.Sections))
	for key := range req.Sections {
		sec, err := model.ParseSection(key)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown_section", WrapKind(op, ErrBadRequest, err))
			return
		}
		sections[key] = sec
	}

	// Buffered so late callbacks never block a worker after we return.
	done := make(chan sectionDone, len(sections))
	results := make(map[string]types.SectionOutcome, len(sections))
	pending := 0
	for key, sec := range sections {
		key := key
		job := queue.Job{
			Submission: model.Submission{
				UserID:   req.UserID,
				Section:  sec,
				Semester: req.Semester,
				Payload:  req.Sections[key],
			},
			Done: func(res types.ScoreResult, err error) {
				done <- sectionDone{key: key, res: res, err: err}
			},
		}
		if !h.deps.Enqueue(r.Context(), job) {
			results[key] = failedOutcome("backpressure", NewKind(op, ErrBackpressure))
			continue
		}
		pending++
	}

	for ; pending > 0; pending-- {
		select {
		case d := <-done:
			if d.err != nil {
				_, code := classify(d.err)
				results[d.key] = failedOutcome(code, Wrap(op, d.err))
				continue
			}
			res := d.res
			results[d.key] = types.SectionOutcome{Result: &res}
		case <-r.Context().Done():
			writeError(w, http.StatusServiceUnavailable, "timeout", WrapKind(op, ErrInternal, r.Context().Err()))
			return
		}
	}

	status, msg := http.StatusOK, messageFormIngested
	for _, o := range results {
		if o.Error != nil {
			status, msg = http.StatusMultiStatus, messageFormPartial
			break
		}
	}
	writeJSON(w, status, types.FormResponse{Message: msg, Results: results})
}

func failedOutcome(code string, err error) types.SectionOutcome {
	return types.SectionOutcome{Error: &types.ErrorResponse{Code: code, Message: err.Error()}}
}
