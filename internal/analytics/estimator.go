package analytics

import (
	"math/rand"
	"sync"
	"time"
)

// TrendEstimator supplies the presentation-variance values mixed into the
// derived metrics: the detection time-series jitter and the narrative
// growth percentages. The default implementation is randomized, matching
// the original dashboard's visual smoothing; swapping in a real computation
// (or a fixed estimator in tests) does not touch the aggregation pipeline.
type TrendEstimator interface {
	// Jitter returns a non-negative value in [0, n).
	Jitter(n int) int
	// GrowthPct returns a narrative growth percentage in [5, 30).
	GrowthPct() int
}

type randomEstimator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomEstimator returns the default randomized estimator.
func NewRandomEstimator() TrendEstimator {
	return &randomEstimator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (e *randomEstimator) Jitter(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}

func (e *randomEstimator) GrowthPct() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(25) + 5
}
