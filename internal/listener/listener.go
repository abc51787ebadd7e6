package listener

import (
	"context"
	"time"

	"go.uber.org/zap"

	"picklist/internal"
)

// Syncer runs one full order sync.
type Syncer interface {
	Sync(ctx context.Context) (internal.SyncRun, error)
}

type Service struct {
	syncer   Syncer
	interval time.Duration
	logger   *zap.Logger
}

func NewService(syncer Syncer, intervalSec int, logger *zap.Logger) *Service {
	if intervalSec <= 0 {
		intervalSec = 900
	}
	return &Service{syncer: syncer, interval: time.Duration(intervalSec) * time.Second, logger: logger}
}

// Run syncs immediately and then once per interval until ctx is done. A
// failed cycle is logged and the loop carries on.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("sync listener started", zap.Duration("interval", s.interval))
	for {
		if err := s.runCycle(ctx); err != nil {
			s.logger.Error("sync cycle failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			s.logger.Info("sync listener stopped")
			return nil
		case <-time.After(s.interval):
		}
	}
}

func (s *Service) runCycle(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}
	run, err := s.syncer.Sync(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("sync cycle done",
		zap.String("trace_id", run.TraceID),
		zap.Int("orders", run.Orders),
		zap.Int("items", run.Items),
	)
	return nil
}
