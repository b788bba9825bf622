package content

import (
	"context"

	"github.com/rs/zerolog"

	"sulu/internal/adapters/sqlstore"
	"sulu/internal/config"
)

// Open connects the configured store and builds a manager on top of it.
// The returned close function releases the store.
func Open(ctx context.Context, cfg config.Config, log zerolog.Logger) (*Manager, func() error, error) {
	store, err := sqlstore.Open(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().Str("driver", cfg.Driver).Msg("store opened")

	m, err := New(store, nil, cfg, log)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return m, store.Close, nil
}
