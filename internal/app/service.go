// Package service provides the ingestion orchestrator that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	repository "github.com/tashifkhan/faculty-appraisal-system/internal/adapters/repository"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/model"
	"github.com/tashifkhan/faculty-appraisal-system/pkg/logger"
	"github.com/tashifkhan/faculty-appraisal-system/pkg/metrics"
)

// Service scores section submissions and stores them per faculty member.
// It holds no mutable state of its own; concurrent calls for the same user
// and section race at the store, where the last write wins.
type Service struct {
	store  repository.Store
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service around store. The global logger is used unless
// WithLogger is given.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// IngestOption carries section-specific arguments of IngestSection.
type IngestOption func(*ingestOptions)

type ingestOptions struct {
	semester string
}

// WithSemester sets the semester of a 12.1 submission, e.g. "odd" or "even".
func WithSemester(semester string) IngestOption {
	return func(o *ingestOptions) {
		o.semester = strings.TrimSpace(semester)
	}
}

// IngestSection scores payload, stores it under the section key of userID's
// document and returns the score with its breakdown. Other sections of the
// document are left untouched.
func (s *Service) IngestSection(ctx context.Context, section model.Section, userID string, payload json.RawMessage, opts ...IngestOption) (Result, error) {
	var o ingestOptions
	for _, opt := range opts {
		opt(&o)
	}
	log := s.logger.With(logger.String("section", section.String()), logger.String("user_id", userID))

	if strings.TrimSpace(userID) == "" {
		return s.rejectInput(ctx, log, section, ErrMissingUserID)
	}
	if section.PerSemester() && o.semester == "" {
		return s.rejectInput(ctx, log, section, ErrMissingSemester)
	}

	start := time.Now()
	res, err := Evaluate(section, payload)
	metrics.RecordScoringLatency(section.String(), float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		return s.rejectInput(ctx, log, section, err)
	}

	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	record, err := json.Marshal(model.SectionRecord{
		Data:      payload,
		Score:     res.Score,
		Breakdown: res.Breakdown,
	})
	if err != nil {
		return s.rejectInput(ctx, log, section, fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}

	key := section.Key(o.semester)
	if err := s.store.UpsertFields(ctx, userID, map[string]json.RawMessage{key: record}); err != nil {
		log.Error(ctx, "failed to store section", logger.String("key", key), logger.Error(err))
		metrics.RecordIngestion(section.String(), metrics.OutcomeStorageError)
		return Result{}, err
	}

	metrics.RecordIngestion(section.String(), metrics.OutcomeOK)
	metrics.RecordSectionScore(section.String(), res.Score)
	metrics.RecordUndetermined(section.String(), len(res.Undetermined))
	if len(res.Undetermined) > 0 {
		log.Warn(ctx, "section has undetermined entries", logger.Any("entries", res.Undetermined))
	}
	log.Debug(ctx, "section ingested", logger.String("key", key), logger.Float64("score", res.Score))
	return res, nil
}

func (s *Service) rejectInput(ctx context.Context, log logger.Logger, section model.Section, err error) (Result, error) {
	log.Warn(ctx, "rejected section submission", logger.Error(err))
	metrics.RecordIngestion(section.String(), metrics.OutcomeInvalidInput)
	return Result{}, err
}

// GetBySection returns the record stored under key for userID. key is a
// storage key such as "11" or "12.1_odd". Returns repository.ErrNotFound if
// the user or the section is absent.
func (s *Service) GetBySection(ctx context.Context, userID, key string) (model.SectionRecord, error) {
	log := s.logger.With(logger.String("section", key), logger.String("user_id", userID))

	if strings.TrimSpace(userID) == "" {
		log.Warn(ctx, "rejected section read", logger.Error(ErrMissingUserID))
		return model.SectionRecord{}, ErrMissingUserID
	}
	if _, _, err := model.ParseKey(key); err != nil {
		log.Warn(ctx, "rejected section read", logger.Error(err))
		return model.SectionRecord{}, err
	}
	key = strings.TrimSpace(key)

	doc, err := s.store.ReadOne(ctx, userID, key)
	if errors.Is(err, repository.ErrNotFound) {
		log.Debug(ctx, "no document for user")
		return model.SectionRecord{}, err
	}
	if err != nil {
		log.Error(ctx, "failed to read section", logger.Error(err))
		return model.SectionRecord{}, err
	}

	rec, ok, err := doc.Section(key)
	if err != nil {
		log.Error(ctx, "failed to decode stored section", logger.Error(err))
		return model.SectionRecord{}, err
	}
	if !ok {
		log.Debug(ctx, "section not submitted")
		return model.SectionRecord{}, fmt.Errorf("%w: section %s", repository.ErrNotFound, key)
	}
	return rec, nil
}
