package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunPruner calls PruneExpired every interval until ctx is done.
func RunPruner(ctx context.Context, s Store, interval time.Duration, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	if interval <= 0 {
		interval = DefaultPruneInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.PruneExpired(ctx)
			if err != nil {
				log.Warn("session prune failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Debug("pruned sessions", zap.Int("count", n))
			}
		}
	}
}
