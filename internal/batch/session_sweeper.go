package batch

import (
	"context"
	"log/slog"
	"time"

	"loan-origination/internal/conversation"
)

// SessionSweeper drops sessions whose inactivity TTL elapsed. It runs on the
// cron schedule configured under session.sweepSchedule.
type SessionSweeper struct {
	store  conversation.Store
	logger *slog.Logger
}

func NewSessionSweeper(store conversation.Store, logger *slog.Logger) *SessionSweeper {
	if store == nil || logger == nil {
		panic("SessionSweeper dependencies cannot be nil")
	}
	return &SessionSweeper{
		store:  store,
		logger: logger.With("job", "SessionSweep"),
	}
}

func (j *SessionSweeper) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.DebugContext(ctx, "Starting session sweep.")

	purged, err := j.store.PurgeExpired(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Session sweep failed.", slog.Any("error", err))
		return err
	}

	if purged > 0 {
		j.logger.InfoContext(ctx, "Expired sessions purged.",
			slog.Int("purged", purged),
			slog.Duration("duration", time.Since(startTime)),
		)
	}
	return nil
}
