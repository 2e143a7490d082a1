package index

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/semdex/internal/domain"
)

// BulkResult summarizes a bulk indexing run.
type BulkResult struct {
	Indexed int
	Failed  int
}

// BulkIndex indexes records concurrently on an ants worker pool.
// Embedding is the expensive step, so records are fanned out and each
// worker runs the normal IndexContent path. Per-record failures are
// logged and counted, they do not abort the run. progress (may be nil)
// is called once per completed record.
func (s *Service) BulkIndex(
	ctx context.Context, records []domain.ContentRecord, workers int, progress func(),
) (BulkResult, error) {
	if len(records) == 0 {
		return BulkResult{}, nil
	}

	if workers < 1 {
		workers = runtime.NumCPU() / 2
		if workers < 1 {
			workers = 1
		}
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return BulkResult{}, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var indexed, failed atomic.Int64

	for i := range records {
		rec := &records[i]
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if progress != nil {
					progress()
				}
			}()

			if ctx.Err() != nil {
				failed.Add(1)
				return
			}
			if err := s.IndexContent(ctx, rec); err != nil {
				s.logger.Warn("Bulk index record failed",
					zap.String("id", rec.ID),
					zap.Error(err),
				)
				failed.Add(1)
				return
			}
			indexed.Add(1)
		})
		if submitErr != nil {
			wg.Done()
			failed.Add(1)
		}
	}

	wg.Wait()

	return BulkResult{
		Indexed: int(indexed.Load()),
		Failed:  int(failed.Load()),
	}, nil
}
