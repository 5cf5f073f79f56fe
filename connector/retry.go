package connector

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// retryConnect calls connectFn until it succeeds, MaxRetries retries are used
// up, or ctx is done. The delay grows by Backoff after every failure and is
// capped at MaxDelay.
func retryConnect(ctx context.Context, cfg *RetryConfig, logger *zap.Logger, connectFn func(context.Context) error) error {
	delay := cfg.BaseDelay
	if delay == 0 {
		delay = time.Second // default
	}
	backoff := cfg.Backoff
	if backoff < 1 {
		backoff = 2
	}

	var err error
	for attempt := 0; ; attempt++ {
		if err = connectFn(ctx); err == nil {
			return nil
		}
		if attempt >= cfg.MaxRetries {
			return err
		}

		logger.Warn("connect failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay = time.Duration(float64(delay) * backoff)
			if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
		}
	}
}
