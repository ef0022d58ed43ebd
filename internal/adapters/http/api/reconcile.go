// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/adapters/repository"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/app"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/decode"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/match"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/normalize"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/types"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/validate"
)

// multipartMemoryLimit bounds what ParseMultipartForm keeps in memory;
// larger uploads spill to temp files before the service's own size gate.
const multipartMemoryLimit = 32 << 20

// ReconcileDependencies defines the interface for file reconciliation.
type ReconcileDependencies interface {
	ProcessFile(ctx context.Context, up Upload) (model.ChangeSet, error)
}

// ReconcileHandler handles roster file uploads.
type ReconcileHandler struct {
	deps ReconcileDependencies
}

// NewReconcileHandler creates a new reconcile handler.
func NewReconcileHandler(deps ReconcileDependencies) *ReconcileHandler {
	return &ReconcileHandler{deps: deps}
}

// HandleReconcile handles POST /company/{id}/reconcile requests. The
// roster file arrives as the multipart form field "file"; the response
// is the proposed change-set for administrator review. Nothing is
// written to the store here.
func (h *ReconcileHandler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	const op = "api.reconcile"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	companyID, err := companyIDFromPath(r.URL.Path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	changeSet, err := h.deps.ProcessFile(r.Context(), Upload{
		Filename:  header.Filename,
		Content:   content,
		CompanyID: companyID,
	})
	if err != nil {
		status, code := reconcileStatus(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, types.FromChangeSet(changeSet))
}

// reconcileStatus maps a pipeline failure to an HTTP status and error code.
func reconcileStatus(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrCompanyNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, app.ErrFileSizeExceeded):
		return http.StatusRequestEntityTooLarge, "file_size_exceeded"
	case errors.Is(err, decode.ErrUnsupportedFileType):
		return http.StatusBadRequest, "unsupported_file_type"
	case errors.Is(err, decode.ErrFileFormat):
		return http.StatusBadRequest, "file_format_error"
	case errors.Is(err, validate.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, normalize.ErrTransform):
		return http.StatusBadRequest, "transform_error"
	case errors.Is(err, match.ErrDuplicateData):
		return http.StatusConflict, "duplicate_data"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
