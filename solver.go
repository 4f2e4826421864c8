package thet

import (
	"context"
	"fmt"
	"runtime"

	"github.com/carbocation/pfx"
	"golang.org/x/sync/errgroup"
)

// BrentQuery describes one scalar equation to solve: find x in [Min, Max]
// with f(Index, x) = 0, starting from the initial guess X0.
type BrentQuery struct {
	Index         int
	Min           float64
	Max           float64
	X0            float64
	AbsTol        float64
	RelTol        float64
	MaxIterations int
}

// BrentSummary is the result of one solved query.
type BrentSummary struct {
	X             float64
	FunctionValue float64
	Iterations    int
	Status        BrentStatus
}

// BatchBrentSolver solves a batch of independent scalar root-finding
// problems against one shared objective, fanning the queries out to a
// bounded worker pool and joining before returning. It is used for
// embarrassingly-parallel nuisance-parameter fits elsewhere in the pipeline
// and never touches the sampler's state types.
//
// Queries are added from a single goroutine; Solve may be called once all
// queries are queued.
type BatchBrentSolver struct {
	f          func(index int, x float64) float64
	numWorkers int
	queries    []BrentQuery
}

// NewBatchBrentSolver returns a solver over the objective f using up to
// numWorkers concurrent workers. If numWorkers is not positive, one worker
// per CPU is used.
func NewBatchBrentSolver(f func(index int, x float64) float64, numWorkers int) *BatchBrentSolver {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &BatchBrentSolver{
		f:          f,
		numWorkers: numWorkers,
	}
}

// Add queues the equation at index for solution on [min, max] from the
// initial guess x0.
func (s *BatchBrentSolver) Add(index int, min, max, x0 float64, absTol, relTol float64, maxIterations int) {
	s.queries = append(s.queries, BrentQuery{
		Index:         index,
		Min:           min,
		Max:           max,
		X0:            x0,
		AbsTol:        absTol,
		RelTol:        relTol,
		MaxIterations: maxIterations,
	})
}

// NumQueries returns the number of queued equations.
func (s *BatchBrentSolver) NumQueries() int {
	return len(s.queries)
}

// Solve runs every queued query and waits for all of them before returning
// the per-index summaries. The queries are partitioned into contiguous
// blocks, one worker per block, so workers never contend on shared state.
// Solve returns early with the context's error if ctx is canceled.
func (s *BatchBrentSolver) Solve(ctx context.Context) (map[int]BrentSummary, error) {
	if len(s.queries) == 0 {
		return map[int]BrentSummary{}, nil
	}
	for _, q := range s.queries {
		if q.Min >= q.Max {
			return nil, pfx.Err(&ValidationError{msg: fmt.Sprintf("query %d: bracket min must be less than max", q.Index)})
		}
	}

	// Workers write to disjoint ranges of summaries, one block each.
	summaries := make([]BrentSummary, len(s.queries))
	g, ctx := errgroup.WithContext(ctx)

	for _, block := range partitionIndexBlocks(len(s.queries), s.numWorkers) {
		block := block
		g.Go(func() error {
			for i := block.BegIndex(); i < block.EndIndex(); i++ {
				if err := ctx.Err(); err != nil {
					return pfx.Err(err)
				}
				q := s.queries[i]
				x, fx, iterations, status := brentRoot(func(x float64) float64 {
					return s.f(q.Index, x)
				}, q.Min, q.Max, q.X0, q.AbsTol, q.RelTol, q.MaxIterations)
				summaries[i] = BrentSummary{
					X:             x,
					FunctionValue: fx,
					Iterations:    iterations,
					Status:        status,
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byIndex := make(map[int]BrentSummary, len(s.queries))
	for i, q := range s.queries {
		byIndex[q.Index] = summaries[i]
	}
	return byIndex, nil
}
