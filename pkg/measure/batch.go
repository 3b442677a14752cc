package measure

import (
	"context"
	"runtime"
	"sync"

	"github.com/fathomline/stgeo/pkg/geom"
)

// AreaBatch computes Area(g) for every geometry in geoms concurrently,
// returning results in the same order as the input. Grounded on the
// teacher's worker-pool shape (pkg/v1/parallel.go's LoadCellsParallel):
// a fixed number of workers pull indices off a jobs channel rather than
// one goroutine per input element.
//
// workers <= 0 means runtime.NumCPU(). ctx is checked once per dispatched
// job; a cancellation leaves any not-yet-computed entries at 0.0.
func AreaBatch(ctx context.Context, geoms []geom.Geometry, workers int) []float64 {
	out := make([]float64, len(geoms))
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
					return
				default:
				}
				out[i] = Area(geoms[i])
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
