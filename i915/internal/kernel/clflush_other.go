//go:build !amd64

package kernel

const CacheLineSize = 64

// FlushCacheRange is a no-op on architectures without discrete Intel graphics
func FlushCacheRange(data []byte) {
}
