package app

import (
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/decode"
	"github.com/CRRRAW-Holdings/magic-pill-admin/internal/domain/match"
	"github.com/CRRRAW-Holdings/magic-pill-admin/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithMaxFileSizeMB caps the size of an uploaded roster file.
func WithMaxFileSizeMB(mb int) Option {
	return func(s *Service) {
		if mb > 0 {
			s.maxFileBytes = int64(mb) * bytesPerMB
		}
	}
}

// WithMatchPolicy overrides the identity-matching policy.
func WithMatchPolicy(p match.Policy) Option {
	return func(s *Service) {
		if p != nil {
			s.matcher = match.New(match.WithPolicy(p))
		}
	}
}

// WithUploadQueueSize bounds the number of uploads reconciled at once.
func WithUploadQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.uploadSlots = make(chan struct{}, n)
		}
	}
}

// WithDisableOnOmission emits a disable toggle for active employees
// absent from the uploaded file. Off by default.
func WithDisableOnOmission(enabled bool) Option {
	return func(s *Service) {
		s.disableOnOmission = enabled
	}
}

// WithProgress sets a callback receiving file-read progress.
func WithProgress(fn decode.ProgressFunc) Option {
	return func(s *Service) {
		s.progress = fn
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
