package series

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/events-platform-backend/internal/model"
)

// Delete removes the series. DeleteModeCascade takes every linked event with
// it; DeleteModeDetach keeps them as standalone records. Either way the
// whole operation is one transaction.
func (s *Service) Delete(ctx context.Context, slug string, mode model.DeleteMode) error {
	if _, err := s.Get(ctx, slug); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Drop the template reference first so linked events can be removed or
	// detached without a dangling link.
	if err := s.seriesRepository.SetTemplateEvent(ctx, tx, slug, nil); err != nil {
		return fmt.Errorf("seriesRepository.SetTemplateEvent: %w", err)
	}

	switch mode {
	case model.DeleteModeCascade:
		if err := s.eventsRepository.DeleteEventsBySeries(ctx, tx, slug); err != nil {
			return fmt.Errorf("eventsRepository.DeleteEventsBySeries: %w", err)
		}
	case model.DeleteModeDetach:
		if err := s.eventsRepository.DetachEventsFromSeries(ctx, tx, slug); err != nil {
			return fmt.Errorf("eventsRepository.DetachEventsFromSeries: %w", err)
		}
	default:
		return fmt.Errorf("unknown delete mode: %v", mode)
	}

	if err := s.seriesRepository.DeleteSeries(ctx, tx, slug); err != nil {
		return fmt.Errorf("seriesRepository.DeleteSeries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	s.logger.Infow("deleted series", "series", slug, "mode", mode)

	return nil
}
