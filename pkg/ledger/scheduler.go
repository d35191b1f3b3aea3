package ledger

import (
	"context"
	"time"
)

// RunCatchUpEvery runs CatchUp every interval until the context is done.
func (l *Ledger) RunCatchUpEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.log.Info().Dur("interval", interval).Msg("periodic catch-up started")

	for {
		select {
		case <-ticker.C:
			report, err := l.CatchUp(ctx, l.Today())
			if err != nil {
				l.log.Error().Err(err).Int("emitted", len(report.Emitted)).Msg("periodic catch-up failed")
			}
		case <-ctx.Done():
			l.log.Info().Msg("periodic catch-up stopped")
			return
		}
	}
}
