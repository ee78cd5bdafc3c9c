package i915

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/bufmgr/gbm"
	"github.com/vkngwrapper/bufmgr/internal/utils"
	"github.com/vkngwrapper/bufmgr/memutils"
)

// heapStatistics counts the objects this backend created in each heap
type heapStatistics struct {
	mutex utils.OptionalRWMutex
	heaps [gbm.HeapCount]memutils.Statistics
}

func newHeapStatistics(useMutex bool) *heapStatistics {
	return &heapStatistics{
		mutex: utils.OptionalRWMutex{Enabled: useMutex},
	}
}

func (s *heapStatistics) AddObject(heap gbm.Heap, size uint64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.heaps[heap].AddObject(int(size))
}

func (s *heapStatistics) RemoveObject(heap gbm.Heap, size uint64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.heaps[heap].RemoveObject(int(size))
}

func (s *heapStatistics) AddFailure(heap gbm.Heap) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.heaps[heap].AddFailure()
}

// Heap returns a copy of the statistics of one heap
func (s *heapStatistics) Heap(heap gbm.Heap) memutils.Statistics {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.heaps[heap]
}

// Total sums the statistics of every heap
func (s *heapStatistics) Total() memutils.Statistics {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var total memutils.Statistics
	for heap := range s.heaps {
		total.AddStatistics(&s.heaps[heap])
	}
	return total
}

func (s *heapStatistics) PrintJson(json *jwriter.ObjectState) {
	total := s.Total()
	totalObj := json.Name("Total").Object()
	total.PrintJson(&totalObj)
	totalObj.End()

	heaps := json.Name("Heaps").Object()
	for heap := gbm.Heap(0); heap < gbm.HeapCount; heap++ {
		stats := s.Heap(heap)
		if stats.ObjectCount == 0 && stats.FailedCount == 0 {
			continue
		}

		heapObj := heaps.Name(heap.String()).Object()
		stats.PrintJson(&heapObj)
		heapObj.End()
	}
	heaps.End()
}
