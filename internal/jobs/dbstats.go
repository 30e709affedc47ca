package jobs

import (
	"context"
	"time"

	"github.com/Spok95/peerrank/internal/ctxutil"
	"github.com/Spok95/peerrank/internal/db"
	"github.com/Spok95/peerrank/internal/metrics"
)

// DBStats — пульс БД и размер леджера в гейдж.
func DBStats(store *db.Store) Job {
	return func(ctx context.Context) error {
		ctx, cancel := ctxutil.WithDBTimeout(ctx)
		defer cancel()

		t0 := time.Now()
		if err := store.Ping(ctx); err != nil {
			return err
		}
		metrics.ObserveDBPing(time.Since(t0))

		n, err := store.LedgerSize(ctx)
		if err != nil {
			return err
		}
		metrics.LedgerSize.Set(float64(n))
		return nil
	}
}
