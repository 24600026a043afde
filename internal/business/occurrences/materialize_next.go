package occurrences

import (
	"context"

	"github.com/SergeyKozhin/events-platform-backend/internal/config"
	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/timeutil"
)

// MaterializeNext materializes the nearest upcoming occurrence that is still
// virtual. A nil result means every near-term occurrence already has a
// record.
func (s *Service) MaterializeNext(ctx context.Context, seriesSlug string) (*model.Event, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	list, err := s.GetUpcoming(ctx, seriesSlug, config.MaterializeBatchLimit(), false)
	if err != nil {
		return nil, err
	}

	series, loc, err := s.resolveSeries(ctx, seriesSlug)
	if err != nil {
		return nil, err
	}

	for _, occ := range list.Occurrences {
		if occ.Materialized {
			continue
		}
		return s.materializeAt(ctx, series, loc, occ.Date)
	}

	return nil, nil
}

// MaterializeNextN materializes up to n upcoming virtual occurrences,
// sequentially. A failure on one date is logged and skipped; it never aborts
// the rest of the batch, and occurrences materialized before a mid-batch
// cancellation stay materialized.
func (s *Service) MaterializeNextN(ctx context.Context, seriesSlug string, n int) ([]*model.Event, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if n <= 0 {
		return nil, nil
	}

	// Fetch twice the batch size: some of the nearest dates may already be
	// materialized.
	list, err := s.GetUpcoming(ctx, seriesSlug, 2*n, false)
	if err != nil {
		return nil, err
	}

	series, loc, err := s.resolveSeries(ctx, seriesSlug)
	if err != nil {
		return nil, err
	}

	var res []*model.Event
	for _, occ := range list.Occurrences {
		if occ.Materialized {
			continue
		}
		if len(res) == n {
			break
		}
		if ctx.Err() != nil {
			return res, timeoutErr(ctx.Err())
		}

		event, err := s.materializeAt(ctx, series, loc, occ.Date)
		if err != nil {
			s.logger.Errorw("failed to materialize occurrence, skipping",
				"series", seriesSlug,
				"date", timeutil.Format(occ.Date, loc, "2006-01-02"),
				"err", err)
			continue
		}
		res = append(res, event)
	}

	return res, nil
}
