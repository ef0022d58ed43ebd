package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
	"github.com/CRRRAW-Holdings/magic-pill-admin/pkg/logger"
	"github.com/CRRRAW-Holdings/magic-pill-admin/pkg/metrics"
)

// ApplyResult reports the outcome of one approved operation.
type ApplyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ApplyChangeSet applies an administrator-approved change-set to the
// store, one result per operation in order. Unlike reconciliation,
// apply is per-operation best-effort: the review UI already approved
// each record individually, so one bad record does not void the rest.
func (s *Service) ApplyChangeSet(ctx context.Context, records []model.ChangeRecord) []ApplyResult {
	results := make([]ApplyResult, 0, len(records))
	for _, rec := range records {
		if err := s.applyOne(ctx, rec); err != nil {
			results = append(results, ApplyResult{Success: false, Message: err.Error()})
			continue
		}
		metrics.RecordBulkOperation(string(rec.Action))
		results = append(results, ApplyResult{
			Success: true,
			Message: fmt.Sprintf("employee %s successful", rec.Action),
		})
	}
	s.logger.Info(ctx, "change-set applied", logger.Int("operations", len(records)))
	return results
}

func (s *Service) applyOne(ctx context.Context, rec model.ChangeRecord) error {
	switch rec.Action {
	case model.ActionAdd:
		if rec.UserData.DocumentID != "" {
			return errors.New("add operation must not carry a document id")
		}
		_, err := s.store.AddEmployee(ctx, rec.UserData)
		return err
	case model.ActionUpdate:
		if rec.UserData.DocumentID == "" {
			return errors.New("update operation requires a document id")
		}
		_, err := s.store.UpdateEmployee(ctx, rec.UserData)
		return err
	case model.ActionToggle:
		if rec.UserData.DocumentID == "" {
			return errors.New("toggle operation requires a document id")
		}
		_, err := s.store.ToggleEmployee(ctx, rec.UserData.DocumentID)
		return err
	default:
		return fmt.Errorf("unknown action %q", rec.Action)
	}
}
