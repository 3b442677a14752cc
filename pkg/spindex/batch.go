package spindex

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/fathomline/stgeo/pkg/geom"
)

// BuildOptions controls BuildBatch's parallel construction behavior,
// mirroring the teacher's LoadOptions (parallel chart loading) adapted
// from "one goroutine per chart file" to "one goroutine per geometry
// entry being inserted".
type BuildOptions struct {
	// Workers is the number of concurrent builder goroutines. 0 means
	// runtime.NumCPU().
	Workers int

	// SkipErrors continues past individual entries whose geometry is
	// rejected (a nil geometry), collecting the errors
	// instead of aborting the whole build.
	SkipErrors bool

	// Progress, if set, is called after each entry is processed.
	Progress func(done, total int)

	// ErrorLog, if set, receives one line per skipped entry.
	ErrorLog io.Writer
}

// DefaultBuildOptions returns BuildOptions with sensible defaults:
// NumCPU workers, skip-and-collect error handling.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}

// BuildBatch constructs a new Index from entries using a bounded worker
// pool, for loading an entire imported table's worth of geometry at once
// rather than one Insert call at a time. Each entry is checked and its
// Bounds() computed on the worker pool; once every entry has been
// checked, the single-threaded rtreego tree is populated from the
// calling goroutine in input order, since rtreego.Rtree is not safe for
// concurrent Insert.
//
// ctx is checked between inserts so a caller can cancel a long build
// early; a cancellation is appended as the last error in the returned
// slice, after any skipped-entry errors, with no further entries
// inserted.
func BuildBatch(ctx context.Context, entries []Entry, opts BuildOptions) (*Index, []error) {
	idx := New()
	if len(entries) == 0 {
		return idx, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(entries) {
		workers = len(entries)
	}

	type boundsResult struct {
		index int
		rect  entryRect
		err   error
	}

	jobs := make(chan int, len(entries))
	results := make(chan boundsResult, len(entries))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rect, err := computeEntryRect(entries[i])
				results <- boundsResult{index: i, rect: rect, err: err}
			}
		}()
	}
	for i := range entries {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]*boundsResult, len(entries))
	var errs []error
	done := 0
	for r := range results {
		r := r
		ordered[r.index] = &r
		done++
		if opts.Progress != nil {
			opts.Progress(done, len(entries))
		}
		if r.err != nil {
			err := fmt.Errorf("entry %v: %w", entries[r.index].Key, r.err)
			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "spindex: skipping entry: %v\n", err)
			}
			if !opts.SkipErrors {
				return idx, []error{err}
			}
			errs = append(errs, err)
		}
	}

	for i, r := range ordered {
		if r == nil || r.err != nil {
			continue
		}
		select {
		case <-ctx.Done():
			errs = append(errs, ctx.Err())
			return idx, errs
		default:
		}
		e := entries[i]
		idx.entries[e.Key] = e
		idx.rtree.Insert(e)
	}

	return idx, errs
}

type entryRect struct{}

// computeEntryRect forces Entry.Bounds (and transitively geom.Geometry's
// Bounds walk) to run on a worker goroutine; the rtree insert itself
// still happens serially in BuildBatch.
func computeEntryRect(e Entry) (entryRect, error) {
	if e.Geom == nil {
		return entryRect{}, &geom.InvalidArgument{Op: "spindex.BuildBatch", Reason: "nil geometry"}
	}
	_ = e.Bounds()
	return entryRect{}, nil
}
