// Package service orchestrates the inspection workflow: validation, the
// duplicate check against the recent window, persistence, and the audit
// trail. Handlers stay thin and domain packages stay free of each other.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"donorcheck/internal/auditlog"
	"donorcheck/internal/inspection/auditdiff"
	"donorcheck/internal/inspection/dedupe"
	"donorcheck/internal/inspection/models"
	"donorcheck/internal/inspection/store"
	"donorcheck/internal/inspection/validate"
	"donorcheck/pkg/requestcontext"
)

// RecentCache is the optional read-through cache over the duplicate window.
type RecentCache interface {
	Get(ctx context.Context, filter store.RecentFilter) ([]models.InspectionRecord, bool)
	Put(ctx context.Context, filter store.RecentFilter, records []models.InspectionRecord)
	Invalidate(ctx context.Context, filter store.RecentFilter)
}

// Metrics receives operation counters. Implemented by platform metrics.
type Metrics interface {
	IncSubmission()
	IncDuplicateRejected()
	IncEdit()
	IncValidationFailure()
}

// DuplicateError reports a submission rejected because an identical record
// already exists in the recent window. Existing is the prior record.
type DuplicateError struct {
	Existing models.InspectionRecord
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate of record %s submitted at %s by %s",
		e.Existing.ID, e.Existing.SubmissionTime.Format(time.RFC3339), e.Existing.UserEmail)
}

type Service struct {
	store       store.Store
	audit       auditlog.Store
	cache       RecentCache
	metrics     Metrics
	logger      *slog.Logger
	now         func() time.Time
	windowLimit int
}

func NewService(st store.Store, audit auditlog.Store, cache RecentCache, metrics Metrics, logger *slog.Logger, windowLimit int) *Service {
	if windowLimit <= 0 {
		windowLimit = store.DefaultRecentLimit
	}
	if cache == nil {
		cache = noopCache{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		store:       st,
		audit:       audit,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
		windowLimit: windowLimit,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Submit validates the candidate, rejects it when an identical record exists
// in the recent window, and persists it otherwise. The window is read before
// the insert, so two identical concurrent submissions can both land; the
// check is a guard against accidental re-submits, not a uniqueness
// constraint.
func (s *Service) Submit(ctx context.Context, candidate models.Candidate) (models.InspectionRecord, error) {
	record, verrs := validate.Record(candidate)
	if len(verrs) > 0 {
		s.metrics.IncValidationFailure()
		return models.InspectionRecord{}, verrs
	}

	filter := store.RecentFilter{
		FormDate:      record.FormDate,
		InspectorName: record.InspectorName,
		Limit:         s.windowLimit,
	}
	recent, err := s.recentWindow(ctx, filter)
	if err != nil {
		return models.InspectionRecord{}, err
	}

	if dedupe.IsDuplicate(record, recent) {
		existing := record
		for _, prior := range recent {
			if dedupe.Equal(record, prior) {
				existing = prior
				break
			}
		}
		s.metrics.IncDuplicateRejected()
		s.appendEvent(ctx, auditlog.Event{
			Actor:    s.actor(ctx, record),
			Action:   auditlog.ActionDuplicateRejected,
			RecordID: existing.ID,
			Detail:   "identical submission within recent window",
		})
		return models.InspectionRecord{}, &DuplicateError{Existing: existing}
	}

	inserted, err := s.store.Insert(ctx, record)
	if err != nil {
		return models.InspectionRecord{}, err
	}
	s.cache.Invalidate(ctx, filter)
	s.metrics.IncSubmission()
	s.appendEvent(ctx, auditlog.Event{
		Actor:    s.actor(ctx, inserted),
		Action:   auditlog.ActionSubmitted,
		RecordID: inserted.ID,
	})
	s.logger.InfoContext(ctx, "inspection record submitted",
		"record_id", inserted.ID,
		"inspector", inserted.InspectorName,
		"form_date", inserted.FormDate.Format(models.DateFormat),
	)
	return inserted, nil
}

// Edit replaces a record's editable fields and stamps the audit trail. The
// editor and a non-empty reason are mandatory; the submitter email and the
// store-assigned fields carry over from the original.
func (s *Service) Edit(ctx context.Context, id string, candidate models.Candidate, editor, reason string) (auditdiff.Result, error) {
	original, err := s.store.FetchByID(ctx, id)
	if err != nil {
		return auditdiff.Result{}, err
	}

	edited, verrs := validate.Record(candidate)
	if len(verrs) > 0 {
		s.metrics.IncValidationFailure()
		return auditdiff.Result{}, verrs
	}
	edited.UserEmail = original.UserEmail

	result, err := auditdiff.Diff(original, edited, editor, reason, s.now().UTC())
	if err != nil {
		s.metrics.IncValidationFailure()
		return auditdiff.Result{}, err
	}

	if err := s.store.Update(ctx, id, result.UpdatedRecord); err != nil {
		return auditdiff.Result{}, err
	}
	s.invalidateWindows(ctx, original, result.UpdatedRecord)
	s.metrics.IncEdit()
	s.appendEvent(ctx, auditlog.Event{
		Actor:    editor,
		Action:   auditlog.ActionEdited,
		RecordID: id,
		Detail:   fmt.Sprintf("%d field(s) changed: %s", len(result.Changes), reason),
	})
	s.logger.InfoContext(ctx, "inspection record edited",
		"record_id", id,
		"editor", editor,
		"changes", len(result.Changes),
	)
	return result, nil
}

// Get fetches a single record by id.
func (s *Service) Get(ctx context.Context, id string) (models.InspectionRecord, error) {
	return s.store.FetchByID(ctx, id)
}

// List returns every record, newest first.
func (s *Service) List(ctx context.Context) ([]models.InspectionRecord, error) {
	return s.store.ListAll(ctx)
}

// ListRecent returns the duplicate window for a date and inspector. Only the
// service-sized window goes through the cache; caller-chosen limits read the
// store directly so they can never displace the window Submit dedupes
// against.
func (s *Service) ListRecent(ctx context.Context, filter store.RecentFilter) ([]models.InspectionRecord, error) {
	if filter.Limit <= 0 {
		filter.Limit = s.windowLimit
	}
	if filter.Limit != s.windowLimit {
		return s.store.QueryRecent(ctx, filter)
	}
	return s.recentWindow(ctx, filter)
}

// Events returns the audit trail for one record, newest first.
func (s *Service) Events(ctx context.Context, recordID string) ([]auditlog.Event, error) {
	if _, err := s.store.FetchByID(ctx, recordID); err != nil {
		return nil, err
	}
	return s.audit.ListByRecord(ctx, recordID)
}

// RecentEvents returns the latest audit events across all records, newest
// first.
func (s *Service) RecentEvents(ctx context.Context, limit int) ([]auditlog.Event, error) {
	return s.audit.ListRecent(ctx, limit)
}

func (s *Service) recentWindow(ctx context.Context, filter store.RecentFilter) ([]models.InspectionRecord, error) {
	if records, ok := s.cache.Get(ctx, filter); ok {
		return records, nil
	}
	records, err := s.store.QueryRecent(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.cache.Put(ctx, filter, records)
	return records, nil
}

func (s *Service) invalidateWindows(ctx context.Context, before, after models.InspectionRecord) {
	s.cache.Invalidate(ctx, store.RecentFilter{FormDate: before.FormDate, InspectorName: before.InspectorName, Limit: s.windowLimit})
	if !after.FormDate.Equal(before.FormDate) || after.InspectorName != before.InspectorName {
		s.cache.Invalidate(ctx, store.RecentFilter{FormDate: after.FormDate, InspectorName: after.InspectorName, Limit: s.windowLimit})
	}
}

func (s *Service) actor(ctx context.Context, record models.InspectionRecord) string {
	if email := requestcontext.UserEmail(ctx); email != "" {
		return email
	}
	return record.UserEmail
}

type noopCache struct{}

func (noopCache) Get(context.Context, store.RecentFilter) ([]models.InspectionRecord, bool) {
	return nil, false
}
func (noopCache) Put(context.Context, store.RecentFilter, []models.InspectionRecord) {}
func (noopCache) Invalidate(context.Context, store.RecentFilter)                     {}

type noopMetrics struct{}

func (noopMetrics) IncSubmission()        {}
func (noopMetrics) IncDuplicateRejected() {}
func (noopMetrics) IncEdit()              {}
func (noopMetrics) IncValidationFailure() {}

// appendEvent logs and continues on failure: the audit trail must never
// block the primary write path.
func (s *Service) appendEvent(ctx context.Context, event auditlog.Event) {
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.audit.Append(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit event append failed",
			"action", string(event.Action),
			"record_id", event.RecordID,
			"error", err,
		)
	}
}
