package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"expenses/internal/amqp"
	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/query"
	"expenses/internal/selection"
	"expenses/internal/storage"
	"expenses/internal/summary"
)

// EventPublisher receives an event after every committed mutation.
type EventPublisher interface {
	PublishEvent(ctx context.Context, ev *amqp.LedgerEvent) error
}

// LedgerService orchestrates ledger operations across the store, the query
// engine and the optional event publisher.
type LedgerService struct {
	store     storage.Store
	query     *query.Engine
	publisher EventPublisher
	logger    *log.Logger
}

// NewLedgerService wires a service around store. publisher may be nil, in
// which case no events are sent.
func NewLedgerService(store storage.Store, publisher EventPublisher, logger *log.Logger) *LedgerService {
	if logger == nil {
		logger = log.Discard()
	}
	return &LedgerService{
		store:     store,
		query:     query.NewEngine(store),
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentLedger),
	}
}

// CreateExpense saves e and returns its new id.
func (s *LedgerService) CreateExpense(ctx context.Context, e core.Expense) (core.ID, error) {
	id, err := s.store.Append(ctx, e)
	if err != nil {
		return "", fmt.Errorf("save expense: %w", err)
	}
	s.publish(ctx, amqp.NewLedgerEvent(amqp.EventCreated, string(id), e.Owner))
	return id, nil
}

// Recent returns up to n of the owner's latest expenses, newest first.
func (s *LedgerService) Recent(ctx context.Context, owner string, n int) ([]core.Expense, error) {
	return s.query.RecentN(ctx, owner, n)
}

// ListRange returns the owner's expenses within r in date order. Row i of
// the result is ordinal i+1 for EditByOrdinal and DeleteByOrdinal.
func (s *LedgerService) ListRange(ctx context.Context, owner string, r core.DateRange) ([]core.Expense, error) {
	return s.query.FilterByDateRange(ctx, owner, r)
}

// EditByOrdinal changes one field of the expense at ordinal in view. view is
// the listing the caller showed; the ordinal is resolved against it and not
// against the current table.
func (s *LedgerService) EditByOrdinal(ctx context.Context, owner string, view []core.Expense, ordinal int, field core.Field, value string) (core.Expense, error) {
	id, err := selection.ResolveOrdinal(view, ordinal)
	if err != nil {
		return core.Expense{}, err
	}
	return s.EditByID(ctx, owner, id, field, value)
}

// EditByID changes one field of the owner's expense id.
func (s *LedgerService) EditByID(ctx context.Context, owner string, id core.ID, field core.Field, value string) (core.Expense, error) {
	if _, err := s.owned(ctx, owner, id); err != nil {
		return core.Expense{}, err
	}
	updated, err := s.store.UpdateField(ctx, id, field, value)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	ev := amqp.NewLedgerEvent(amqp.EventUpdated, string(id), owner)
	ev.Field = field.String()
	s.publish(ctx, ev)
	return updated, nil
}

// DeleteByOrdinal removes the expense at ordinal in view and returns it.
func (s *LedgerService) DeleteByOrdinal(ctx context.Context, owner string, view []core.Expense, ordinal int) (core.Expense, error) {
	id, err := selection.ResolveOrdinal(view, ordinal)
	if err != nil {
		return core.Expense{}, err
	}
	return s.DeleteByID(ctx, owner, id)
}

// DeleteByID removes the owner's expense id and returns it.
func (s *LedgerService) DeleteByID(ctx context.Context, owner string, id core.ID) (core.Expense, error) {
	e, err := s.owned(ctx, owner, id)
	if err != nil {
		return core.Expense{}, err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return core.Expense{}, fmt.Errorf("delete expense: %w", err)
	}
	s.publish(ctx, amqp.NewLedgerEvent(amqp.EventDeleted, string(id), owner))
	return e, nil
}

// MonthSummary summarizes the current or previous calendar month relative
// to today.
func (s *LedgerService) MonthSummary(ctx context.Context, owner string, which query.Month, today core.Date) (summary.Report, error) {
	r, err := query.MonthRange(which, today)
	if err != nil {
		return summary.Report{}, err
	}
	return s.RangeSummary(ctx, owner, r)
}

// RangeSummary summarizes the owner's expenses within r.
func (s *LedgerService) RangeSummary(ctx context.Context, owner string, r core.DateRange) (summary.Report, error) {
	records, err := s.query.FilterByDateRange(ctx, owner, r)
	if err != nil {
		return summary.Report{}, err
	}
	rep := summary.BuildReport(r, records)
	s.logger.DebugContext(ctx, "Summary built",
		log.FieldOperation, log.OpSummary,
		log.FieldOwner, owner,
		log.FieldRange, r.String(),
		log.FieldCount, len(records))
	return rep, nil
}

// owned fetches id and reports NotFound when it belongs to someone else.
func (s *LedgerService) owned(ctx context.Context, owner string, id core.ID) (core.Expense, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}
	if e.Owner != owner {
		return core.Expense{}, core.NotFound(id)
	}
	return e, nil
}

// publish sends ev if a publisher is configured. The mutation is already
// committed, so failures are only logged.
func (s *LedgerService) publish(ctx context.Context, ev *amqp.LedgerEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(ctx, ev); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish ledger event",
			append(log.NewFields().
				WithOperation(log.OpPublish).
				WithError(err).
				WithErrorType(log.ErrorTypeNetwork).
				ToSlice(), "event", ev.Type, log.FieldID, ev.ID)...)
	}
}

// Close closes the store and, if it can be closed, the publisher.
func (s *LedgerService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if c, ok := s.publisher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %w", errors.Join(errs...))
	}
	return nil
}
