// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/types"
)

// BulkDependencies defines the interface for applying approved operations.
type BulkDependencies interface {
	ApplyChangeSet(ctx context.Context, records []model.ChangeRecord) []ApplyResult
}

// BulkHandler handles approved change-set submissions.
type BulkHandler struct {
	deps BulkDependencies
}

// NewBulkHandler creates a new bulk handler.
func NewBulkHandler(deps BulkDependencies) *BulkHandler {
	return &BulkHandler{deps: deps}
}

// HandleBulk handles POST /user/bulk requests. The body is the reviewed
// change-set as an ordered array of operations; the response carries one
// result per operation in the same order.
func (h *BulkHandler) HandleBulk(w http.ResponseWriter, r *http.Request) {
	const op = "api.bulk"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var body []types.ChangeRecord
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("empty operation list")))
		return
	}

	records := make([]model.ChangeRecord, 0, len(body))
	for _, rec := range body {
		records = append(records, model.ChangeRecord{
			Action:   model.Action(rec.Action),
			UserData: rec.UserData.ToEmployee(),
		})
	}

	results := h.deps.ApplyChangeSet(r.Context(), records)
	writeJSON(w, http.StatusOK, results)
}
