package memutils

import "github.com/launchdarkly/go-jsonstream/v3/jwriter"

// Statistics tracks the kernel objects created from a single memory heap
type Statistics struct {
	ObjectCount int
	ObjectBytes int
	PeakBytes   int
	FailedCount int
}

func (s *Statistics) Clear() {
	s.ObjectCount = 0
	s.ObjectBytes = 0
	s.PeakBytes = 0
	s.FailedCount = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.ObjectCount += other.ObjectCount
	s.ObjectBytes += other.ObjectBytes
	s.FailedCount += other.FailedCount

	if other.PeakBytes > s.PeakBytes {
		s.PeakBytes = other.PeakBytes
	}
}

func (s *Statistics) AddObject(size int) {
	s.ObjectCount++
	s.ObjectBytes += size

	if s.ObjectBytes > s.PeakBytes {
		s.PeakBytes = s.ObjectBytes
	}
}

func (s *Statistics) RemoveObject(size int) {
	s.ObjectCount--
	s.ObjectBytes -= size
}

func (s *Statistics) AddFailure() {
	s.FailedCount++
}

func (s *Statistics) PrintJson(json *jwriter.ObjectState) {
	json.Name("ObjectCount").Int(s.ObjectCount)
	json.Name("ObjectBytes").Int(s.ObjectBytes)
	json.Name("PeakBytes").Int(s.PeakBytes)
	json.Name("FailedCount").Int(s.FailedCount)
}
