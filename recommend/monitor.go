package recommend

import "github.com/lampstand/sermonrec/core"

// Monitor provides hooks to observe the recommendation pipeline.
// Implement this interface to track intermediate steps and results.
type Monitor interface {
	Start(query string)
	AfterRetrieval(hits []core.SearchHit)
	CacheHit(key string)
	AfterRanking(indexes []int)
	RankingFallback(err error)
	Finish(list core.RankedList)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                    {}
func (n *noopMonitor) AfterRetrieval(_ []core.SearchHit) {}
func (n *noopMonitor) CacheHit(_ string)                 {}
func (n *noopMonitor) AfterRanking(_ []int)              {}
func (n *noopMonitor) RankingFallback(_ error)           {}
func (n *noopMonitor) Finish(_ core.RankedList)          {}
