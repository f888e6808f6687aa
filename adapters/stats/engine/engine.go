package engine

import (
	"runtime"

	"gocorrnet/internal"
)

// Options tunes the pairwise sweep. The zero value is usable.
type Options struct {
	// Workers bounds concurrent pair computation; 0 means one per CPU.
	Workers int
	// MaxPairs rejects matrices with more feature pairs; 0 means unlimited.
	MaxPairs int
	// ChunkSize is the number of pairs one worker computes per task; 0 picks
	// a size from the pair count and worker count.
	ChunkSize int
}

// StatsEngine computes pairwise correlation tables
type StatsEngine struct {
	opts   Options
	logger *internal.Logger
}

// NewStatsEngine creates a new statistical engine. A nil logger uses
// internal.DefaultLogger.
func NewStatsEngine(opts Options, logger *internal.Logger) *StatsEngine {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &StatsEngine{
		opts:   opts,
		logger: logger.With("correlate"),
	}
}

func (e *StatsEngine) workers() int {
	if e.opts.Workers > 0 {
		return e.opts.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (e *StatsEngine) chunkSize(pairs, workers int) int {
	if e.opts.ChunkSize > 0 {
		return e.opts.ChunkSize
	}
	// a few chunks per worker keeps the pool busy when pair costs vary
	size := pairs / (workers * 4)
	if size < 64 {
		size = 64
	}
	return size
}
