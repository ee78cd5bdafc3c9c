package i915

// QueryVariant is the flavor of the memory region uAPI the kernel exposed during probing
type QueryVariant int

const (
	QueryStandard QueryVariant = iota
	// QueryPrelim is the preview uAPI shipped by out-of-tree kernels for discrete parts. Objects
	// on such kernels must be created through the prelim creation call.
	QueryPrelim
)

func (v QueryVariant) String() string {
	if v == QueryPrelim {
		return "prelim"
	}
	return "standard"
}

// Session holds the state the prober decides once and every later call reads
type Session struct {
	Variant QueryVariant
}
