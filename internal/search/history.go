package search

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/pibary/internal/config"
	"git.home.luguber.info/inful/pibary/internal/eventstore"
	"git.home.luguber.info/inful/pibary/internal/logfields"
	"git.home.luguber.info/inful/pibary/internal/retry"
)

// OpenHistory opens the SQLite history store described by cfg and rebuilds
// its projection, retrying while another process holds the database lock.
// It returns nil when history is disabled.
func OpenHistory(ctx context.Context, cfg config.HistoryConfig) (*EventEmitter, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	var (
		store      *eventstore.SQLiteStore
		projection *eventstore.SearchHistoryProjection
		attempts   int
	)
	open := func() error {
		attempts++
		s, err := eventstore.NewSQLiteStore(cfg.Path)
		if err != nil {
			return err
		}
		p := eventstore.NewSearchHistoryProjection(s, cfg.MaxEntries)
		if err := p.Rebuild(ctx); err != nil {
			_ = s.Close()
			return err
		}
		store, projection = s, p
		return nil
	}
	busy := func(err error) bool {
		if eventstore.IsBusy(err) {
			slog.Debug("History database busy, retrying",
				logfields.Path(cfg.Path),
				logfields.Error(err))
			return true
		}
		return false
	}
	if err := retry.FromConfig(cfg.Retry).Do(ctx, busy, open); err != nil {
		return nil, err
	}

	slog.Debug("Search history loaded",
		logfields.Path(cfg.Path),
		logfields.Count(len(projection.GetHistory(0))),
		slog.Int("attempts", attempts))
	return NewEventEmitter(store, projection), nil
}
