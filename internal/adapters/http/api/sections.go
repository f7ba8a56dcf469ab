package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	repository "github.com/tashifkhan/faculty-appraisal-system/internal/adapters/repository"
	service "github.com/tashifkhan/faculty-appraisal-system/internal/app"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/model"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/types"
)

// maxBodyBytes caps a submission body.
const maxBodyBytes = 4 << 20

const (
	messageIngested = "Data ingested successfully"
	messageFetched  = "Data fetched successfully"
)

// SectionsHandler handles section submissions and reads.
type SectionsHandler struct {
	deps Dependencies
}

// NewSectionsHandler creates a new sections handler.
func NewSectionsHandler(deps Dependencies) *SectionsHandler {
	return &SectionsHandler{deps: deps}
}

// HandleSubmitSection handles POST /api/v1/sections/{section} requests.
func (h *SectionsHandler) HandleSubmitSection(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_section"
	section, err := model.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_section", WrapKind(op, ErrBadRequest, err))
		return
	}

	var req types.SubmitRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := authorize(r.Context(), req.UserID); err != nil {
		writeError(w, http.StatusForbidden, "forbidden", Wrap(op, err))
		return
	}

	res, err := h.deps.IngestSection(r.Context(), section, req.UserID, req.Data, service.WithSemester(req.Semester))
	if err != nil {
		h.writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.SubmitResponse{Message: messageIngested, Result: res})
}

// HandleGetSection handles GET /api/v1/sections?user_id=&section= requests.
func (h *SectionsHandler) HandleGetSection(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_section"
	q := r.URL.Query()
	userID := strings.TrimSpace(q.Get("user_id"))
	key := strings.TrimSpace(q.Get("section"))
	switch {
	case userID == "":
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing user_id")))
		return
	case key == "":
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing section")))
		return
	}
	if err := authorize(r.Context(), userID); err != nil {
		writeError(w, http.StatusForbidden, "forbidden", Wrap(op, err))
		return
	}

	rec, err := h.deps.GetBySection(r.Context(), userID, key)
	if err != nil {
		h.writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.SectionResponse{Message: messageFetched, Result: rec})
}

func (h *SectionsHandler) writeServiceError(w http.ResponseWriter, op string, err error) {
	status, code := classify(err)
	switch status {
	case http.StatusBadRequest:
		writeError(w, status, code, WrapKind(op, ErrBadRequest, err))
	case http.StatusNotFound:
		writeError(w, status, code, WrapKind(op, ErrNotFound, err))
	default:
		writeError(w, status, code, WrapKind(op, ErrInternal, err))
	}
}

// classify maps a service error to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case service.IsInputError(err):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
