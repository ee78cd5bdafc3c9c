package memutils

import "github.com/cockroachdb/errors"

// PowerOfTwoError is the error returned from CheckPow2 or other methods if the number being tested is not a power of two
var PowerOfTwoError error = errors.New("number must be a power of two")

// OverflowError is returned when a layout computation no longer fits the 32-bit fields the kernel accepts
var OverflowError error = errors.New("value overflows a 32-bit layout field")
