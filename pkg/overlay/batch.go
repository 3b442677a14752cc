package overlay

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/fathomline/stgeo/pkg/geom"
)

// BufferResult is one element of BufferBatch's output: the buffered
// geometry, or an error if that input could not be buffered (e.g. a
// geometry kind Buffer rejects).
type BufferResult struct {
	Geom geom.Geometry
	Err  error
}

// BufferBatch buffers every geometry in geoms concurrently by distance d,
// preserving input order in the result slice. Grounded on the teacher's
// worker-pool shape (pkg/v1/parallel.go's LoadCellsParallel), adapted
// from "load N chart files in parallel" to "buffer N geometries in
// parallel" — each unit of work is independent and CPU-bound, the same
// shape that made parallel chart loading worthwhile there.
//
// workers <= 0 means runtime.NumCPU(). ctx cancellation stops dispatch of
// not-yet-started work; in-flight buffers still complete and are
// reported normally, undispatched entries get a context.Canceled error.
func BufferBatch(ctx context.Context, geoms []geom.Geometry, d float64, params BufferParams, workers int) []BufferResult {
	out := make([]BufferResult, len(geoms))
	if len(geoms) == 0 {
		return out
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(geoms) {
		workers = len(geoms)
	}

	jobs := make(chan int, len(geoms))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					out[i] = BufferResult{Err: fmt.Errorf("buffer batch entry %d: %w", i, ctx.Err())}
					continue
				default:
				}
				g, err := Buffer(geoms[i], d, params)
				out[i] = BufferResult{Geom: g, Err: err}
			}
		}()
	}
	for i := range geoms {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}
