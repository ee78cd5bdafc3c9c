package kernel

import (
	"runtime"
	"unsafe"
)

const CacheLineSize = 64

func clflushRange(start, end uintptr)

// FlushCacheRange writes back and invalidates every CPU cache line covering data, so a device
// without a shared last-level cache sees the CPU's writes.
func FlushCacheRange(data []byte) {
	if len(data) == 0 {
		return
	}

	start := uintptr(unsafe.Pointer(&data[0]))
	clflushRange(start&^(CacheLineSize-1), start+uintptr(len(data)))
	runtime.KeepAlive(data)
}
