package memutils

import (
	"math/bits"

	cerrors "github.com/cockroachdb/errors"
)

type Number interface {
	~int | ~uint | ~uint32 | ~uint64
}

func CheckPow2[T Number](number T, name string) error {
	if number == 0 || number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}
	return nil
}

// AlignUp rounds value up to the next multiple of alignment, which must be a power of two
func AlignUp[T Number](value, alignment T) T {
	DebugCheckPow2(alignment, "alignment")
	return (value + alignment - 1) &^ (alignment - 1)
}

func DivRoundUp[T Number](value, divisor T) T {
	return (value + divisor - 1) / divisor
}

// NextPow2 returns the smallest power of two greater than or equal to value. Zero and one both
// return one.
func NextPow2[T ~uint32 | ~uint64](value T) T {
	if value <= 1 {
		return 1
	}
	return T(1) << bits.Len64(uint64(value-1))
}
