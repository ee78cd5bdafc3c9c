package gbm

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bufmgr/internal/utils"
)

// Mapping is the CPU view of a buffer object. Repeated maps of the same object share one
// platform mapping; it is torn down when the last reference is released.
type Mapping struct {
	mapReferences int
	mapData       []byte
	mapFlags      MapFlags

	mapMutex utils.OptionalMutex
}

func NewMapping(useMutex bool) *Mapping {
	return &Mapping{
		mapMutex: utils.OptionalMutex{Enabled: useMutex},
	}
}

func (m *Mapping) References() int {
	m.mapMutex.Lock()
	defer m.mapMutex.Unlock()

	return m.mapReferences
}

func (m *Mapping) Data() []byte {
	m.mapMutex.Lock()
	defer m.mapMutex.Unlock()

	return m.mapData
}

// Flags returns the access requested by the map call that created the platform mapping
func (m *Mapping) Flags() MapFlags {
	m.mapMutex.Lock()
	defer m.mapMutex.Unlock()

	return m.mapFlags
}

// Acquire adds a reference to the mapping, calling mapFn to create the platform mapping
// if there was none. An existing mapping cannot be widened: requesting access it was not
// created with fails until every reference is released.
func (m *Mapping) Acquire(flags MapFlags, mapFn func() ([]byte, error)) ([]byte, error) {
	m.mapMutex.Lock()
	defer m.mapMutex.Unlock()

	if m.mapReferences > 0 {
		if m.mapData == nil {
			return nil, errors.New("the buffer is showing existing mapping references, but no mapped memory")
		}
		if flags&^m.mapFlags != 0 {
			return nil, errors.Mark(
				errors.Newf("buffer is already mapped with %s access, cannot add %s", m.mapFlags, flags&^m.mapFlags),
				ErrUnsupportedOperation)
		}
		m.mapReferences++
		return m.mapData, nil
	}

	data, err := mapFn()
	if err != nil {
		return nil, err
	}

	m.mapData = data
	m.mapFlags = flags
	m.mapReferences = 1
	return data, nil
}

// Release drops a reference to the mapping and calls unmapFn once the last one is gone
func (m *Mapping) Release(unmapFn func([]byte) error) error {
	m.mapMutex.Lock()
	defer m.mapMutex.Unlock()

	if m.mapReferences == 0 {
		return errors.New("buffer has more references being unmapped than are currently mapped")
	}

	m.mapReferences--
	if m.mapReferences > 0 {
		return nil
	}

	data := m.mapData
	m.mapData = nil
	m.mapFlags = MapNone
	return unmapFn(data)
}
