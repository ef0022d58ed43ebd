// Package app provides the reconciliation service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/adapters/repository"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/classify"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/decode"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/match"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/model"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/normalize"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/validate"
	"github.com/CRRRAW-Holdings/magic-pill-admin/pkg/logger"
	"github.com/CRRRAW-Holdings/magic-pill-admin/pkg/metrics"
)

const (
	bytesPerMB             = 1 << 20
	defaultUploadQueueSize = 4
)

// Upload describes one administrator-uploaded roster file.
type Upload struct {
	Filename  string
	Content   []byte
	CompanyID int
}

// Service runs the reconciliation pipeline and fronts the employee store.
type Service struct {
	store      repository.Store
	validator  *validate.Validator
	matcher    *match.Matcher
	classifier *classify.Classifier

	maxFileBytes      int64
	disableOnOmission bool
	progress          decode.ProgressFunc

	// uploadSlots bounds concurrent reconciliation runs.
	uploadSlots chan struct{}

	logger logger.Logger
}

// New constructs a Service around the given store with default configuration.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:        store,
		validator:    validate.New(),
		matcher:      match.New(),
		classifier:   classify.New(),
		maxFileBytes: 25 * bytesPerMB,
		uploadSlots:  make(chan struct{}, defaultUploadQueueSize),
		logger:       logger.Named("engine"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessFile runs one uploaded file through the full pipeline:
// decode -> validate -> normalize -> match -> classify -> assemble.
//
// The run is synchronous and all-or-nothing: the first failing stage
// aborts the batch and no partial change-set is ever returned. The
// existing-employee snapshot is read once up front and never mutated.
func (s *Service) ProcessFile(ctx context.Context, up Upload) (model.ChangeSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("waiting for an upload slot: %w", err)
	}
	select {
	case s.uploadSlots <- struct{}{}:
		defer func() { <-s.uploadSlots }()
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for an upload slot: %w", ctx.Err())
	}

	start := time.Now()

	changeSet, err := s.processFile(ctx, up)
	if err != nil {
		metrics.RecordFileProcessed("failed")
		metrics.RecordBatchFailure(errorKind(err))
		s.logger.Warn(ctx, "batch rejected",
			logger.String("file", up.Filename),
			logger.Int("company_id", up.CompanyID),
			logger.Error(err))
		return nil, err
	}

	metrics.RecordFileProcessed("ok")
	metrics.RecordReconcileLatency(float64(time.Since(start).Milliseconds()))
	for _, rec := range changeSet {
		metrics.RecordChangeRecord(string(rec.Action))
	}
	s.logger.Info(ctx, "batch reconciled",
		logger.String("file", up.Filename),
		logger.Int("company_id", up.CompanyID),
		logger.Int("changes", len(changeSet)))
	return changeSet, nil
}

func (s *Service) processFile(ctx context.Context, up Upload) (model.ChangeSet, error) {
	// Size and extension gates run before any content is read.
	if int64(len(up.Content)) > s.maxFileBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d MB ceiling",
			ErrFileSizeExceeded, len(up.Content), s.maxFileBytes/bytesPerMB)
	}
	format, err := decode.DetectFormat(up.Filename)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetCompany(ctx, up.CompanyID); err != nil {
		return nil, err
	}

	decoder := decode.New(decode.WithProgress(s.progress))
	rows, err := decoder.Decode(ctx, format, up.Content)
	if err != nil {
		return nil, err
	}
	metrics.RecordRowsDecoded(len(rows))

	if err := s.validator.Validate(rows); err != nil {
		return nil, err
	}

	normalizer := normalize.New(up.CompanyID, normalize.WithPlans(s.store.ListPlans(ctx)))
	candidates := make([]model.Candidate, 0, len(rows))
	for _, row := range rows {
		c, err := normalizer.Normalize(row)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	snapshot := s.store.ListEmployees(ctx, up.CompanyID)

	var changeSet model.ChangeSet
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		matched, err := s.matcher.Match(c, snapshot)
		if err != nil {
			return nil, err
		}
		if len(matched) == 0 {
			changeSet = append(changeSet, s.classifier.Add(c))
			continue
		}
		seen[matched[0].DocumentID] = true
		if rec, emit := s.classifier.Classify(matched[0], c); emit {
			changeSet = append(changeSet, rec)
		}
	}

	if s.disableOnOmission {
		changeSet = append(changeSet, s.omissionToggles(snapshot, seen)...)
	}

	return changeSet, nil
}

// omissionToggles emits a disable toggle for every active employee the
// file never mentioned. Behind a flag, off by default: the stock
// behavior reacts only to rows actually present in the file.
func (s *Service) omissionToggles(snapshot []model.Employee, seen map[string]bool) model.ChangeSet {
	var out model.ChangeSet
	for _, e := range snapshot {
		if e.IsActive && !seen[e.DocumentID] {
			disabled := e
			disabled.IsActive = false
			out = append(out, model.ChangeRecord{
				Action:   model.ActionToggle,
				UserData: disabled,
			})
		}
	}
	return out
}

// errorKind maps a pipeline failure to a stable metrics label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrFileSizeExceeded):
		return "file_size_exceeded"
	case errors.Is(err, decode.ErrUnsupportedFileType):
		return "unsupported_file_type"
	case errors.Is(err, decode.ErrFileFormat):
		return "file_format"
	case errors.Is(err, validate.ErrValidation):
		return "validation"
	case errors.Is(err, normalize.ErrTransform):
		return "transform"
	case errors.Is(err, match.ErrDuplicateData):
		return "duplicate_data"
	case errors.Is(err, repository.ErrCompanyNotFound):
		return "company_not_found"
	default:
		return "internal"
	}
}
