package series

import (
	"context"
	"fmt"

	"github.com/SergeyKozhin/events-platform-backend/internal/model"
	"github.com/SergeyKozhin/events-platform-backend/internal/pkg/timeutil"
)

// Update applies the set fields of info to the series. A changed rule is
// re-validated before anything is written; ownership is never touched.
func (s *Service) Update(ctx context.Context, slug string, info *model.SeriesUpdate) (*model.Series, error) {
	series, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}

	if info.Rule != nil {
		if err := validateRule(*info.Rule); err != nil {
			return nil, err
		}
		series.Rule = *info.Rule
	}
	if info.Timezone != nil {
		if _, err := timeutil.LoadLocation(*info.Timezone); err != nil {
			return nil, err
		}
		series.Timezone = *info.Timezone
	}
	if info.Name != nil {
		series.Name = *info.Name
	}
	if info.Description != nil {
		series.Description = *info.Description
	}
	if info.Overrides != nil {
		series.Overrides = info.Overrides
	}

	if err := s.seriesRepository.UpdateSeries(ctx, s.db, series); err != nil {
		return nil, fmt.Errorf("seriesRepository.UpdateSeries: %w", err)
	}

	return series, nil
}
