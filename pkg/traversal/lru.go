package traversal

import (
	"context"
	"fmt"
	"time"

	"github.com/flyteorg/flytestdlib/promutils"
	"github.com/prometheus/client_golang/prometheus"

	lru "github.com/hashicorp/golang-lru"

	"github.com/jobflow/jobtrace/pkg/jobgraph"
)

type reachabilityMetrics struct {
	CacheHit       prometheus.Counter
	CacheMiss      prometheus.Counter
	CacheReadError prometheus.Counter
	LookupLatency  promutils.StopWatch
}

type reachKey struct {
	from   jobgraph.JobID
	target jobgraph.JobID
}

type lruReachabilityOracle struct {
	cache   *lru.Cache
	oracle  ReachabilityOracle
	metrics *reachabilityMetrics
}

func (l *lruReachabilityOracle) LeadsTo(ctx context.Context, from, target jobgraph.JobID) (bool, error) {
	key := reachKey{from: from, target: target}

	// check cache for an existing verdict
	v, ok := l.cache.Get(key)
	if ok {
		reaches, ok := v.(bool)
		if !ok {
			l.metrics.CacheReadError.Inc()
			return false, fmt.Errorf("cached item in reachability oracle is not expected type 'bool'")
		}

		l.metrics.CacheHit.Inc()
		return reaches, nil
	}

	l.metrics.CacheMiss.Inc()

	// compute the verdict with the underlying ReachabilityOracle
	timer := l.metrics.LookupLatency.Start()
	reaches, err := l.oracle.LeadsTo(ctx, from, target)
	timer.Stop()
	if err != nil {
		return false, err
	}

	// add verdict to cache and return
	l.cache.Add(key, reaches)
	return reaches, nil
}

// NewLRUReachabilityOracle wraps an oracle with an LRU cache keyed by the
// (from, target) pair. Verdicts never change on an immutable graph, so cached
// entries have no expiry.
func NewLRUReachabilityOracle(oracle ReachabilityOracle, size int, scope promutils.Scope) (ReachabilityOracle, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	lruScope := scope.NewSubScope("lru")
	metrics := &reachabilityMetrics{
		LookupLatency:  lruScope.MustNewStopWatch("lookup", "Total time to compute a verdict with the underlying oracle", time.Millisecond),
		CacheHit:       lruScope.MustNewCounter("cache_hit", "Number of times a verdict was found in lru cache"),
		CacheMiss:      lruScope.MustNewCounter("cache_miss", "Number of times a verdict was not found in lru cache"),
		CacheReadError: lruScope.MustNewCounter("cache_read_error", "Failed to read from lru cache"),
	}

	return &lruReachabilityOracle{
		cache:   cache,
		oracle:  oracle,
		metrics: metrics,
	}, nil
}
