package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"picklist/internal"
	"picklist/internal/config"
	"picklist/internal/pipeline"
	"picklist/internal/storage"
)

// OrderSource is the part of the shipping platform a sync needs.
type OrderSource interface {
	RefreshStore(ctx context.Context, storeID int) error
	ListOrders(ctx context.Context, storeID int, status string) ([]internal.RawOrder, error)
}

type SyncService struct {
	db      *storage.DB
	source  OrderSource
	catalog config.Catalog
	cfg     config.Config
	logger  *zap.Logger
	now     func() time.Time
}

func NewSyncService(db *storage.DB, source OrderSource, catalog config.Catalog, cfg config.Config, logger *zap.Logger) *SyncService {
	return &SyncService{
		db:      db,
		source:  source,
		catalog: catalog,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

type fetchJob struct {
	store   int
	storeID int
	status  string
}

// Sync refreshes every storefront, pulls its open orders and replaces the
// stored snapshot. Nothing is written unless every refresh and fetch
// succeeded.
func (s *SyncService) Sync(ctx context.Context) (internal.SyncRun, error) {
	started := s.now()
	run := internal.SyncRun{TraceID: uuid.NewString(), Stores: len(s.catalog.Stores)}
	logger := s.logger.With(zap.String("trace_id", run.TraceID))
	logger.Info("sync started", zap.Int("stores", run.Stores))

	if err := s.refreshAll(ctx); err != nil {
		logger.Error("store refresh failed", zap.Error(err))
		return run, err
	}

	if err := sleep(ctx, time.Duration(s.cfg.ShippingRefreshWaitMs)*time.Millisecond); err != nil {
		return run, err
	}

	perStore, err := s.fetchAll(ctx)
	if err != nil {
		logger.Error("order fetch failed", zap.Error(err))
		return run, err
	}

	ingester := pipeline.NewIngester(s.catalog.Revisions, logger)
	records := make([]internal.OrderRecord, 0)
	for i, store := range s.catalog.Stores {
		result := ingester.ParseOrders(store, perStore[i])
		records = append(records, result.Orders...)
		run.Orders += len(result.Orders)
		run.Items += result.Items
		run.Rejected += result.Rejected
		logger.Info("store ingested",
			zap.String("store", store.Name),
			zap.Int("orders", len(result.Orders)),
			zap.Int("items", result.Items),
			zap.Int("rejected", result.Rejected),
		)
	}
	run.Mismatch = ingester.Mismatched()

	if err := s.db.ReplaceOrders(records); err != nil {
		return run, fmt.Errorf("replace orders: %w", err)
	}

	finished := s.now()
	if err := s.db.SetLastSync(finished); err != nil {
		return run, fmt.Errorf("record last sync: %w", err)
	}

	run.ElapsedMs = finished.Sub(started).Milliseconds()
	if err := s.db.InsertSyncRun(run); err != nil {
		logger.Warn("sync run not recorded", zap.Error(err))
	}

	logger.Info("sync finished",
		zap.Int("orders", run.Orders),
		zap.Int("items", run.Items),
		zap.Int("rejected", run.Rejected),
		zap.Int("mismatched", run.Mismatch),
		zap.Int64("elapsed_ms", run.ElapsedMs),
	)
	return run, nil
}

func (s *SyncService) refreshAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for _, store := range s.catalog.Stores {
		for _, id := range store.StoreIDs {
			name, storeID := store.Name, id
			g.Go(func() error {
				if err := s.source.RefreshStore(gctx, storeID); err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				return nil
			})
		}
	}
	return g.Wait()
}

// fetchAll returns raw orders per store, indexed like the catalog. Within a
// store, orders keep the order of its store IDs and statuses.
func (s *SyncService) fetchAll(ctx context.Context) ([][]internal.RawOrder, error) {
	jobs := make([]fetchJob, 0)
	for i, store := range s.catalog.Stores {
		for _, id := range store.StoreIDs {
			for _, status := range store.Statuses {
				jobs = append(jobs, fetchJob{store: i, storeID: id, status: status})
			}
		}
	}

	results := make([][]internal.RawOrder, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			raws, err := s.source.ListOrders(gctx, job.storeID, job.status)
			if err != nil {
				return fmt.Errorf("%s store %d %s: %w", s.catalog.Stores[job.store].Name, job.storeID, job.status, err)
			}
			results[i] = raws
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	perStore := make([][]internal.RawOrder, len(s.catalog.Stores))
	for i, job := range jobs {
		perStore[job.store] = append(perStore[job.store], results[i]...)
	}
	return perStore, nil
}

func (s *SyncService) concurrency() int {
	if s.cfg.SyncFetchConcurrency <= 0 {
		return 1
	}
	return s.cfg.SyncFetchConcurrency
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
