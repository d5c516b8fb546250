/*
Package segtree offers a family of in-memory segment trees parameterized over
caller-supplied monoid algebras.

Segment Trees

A segment tree summarizes an array under an associative operation so that any
contiguous range can be folded in logarithmic time. The operation and its
identity element are not baked in; clients describe them through a small
algebra interface and the trees stay agnostic of the element type. Addition,
min/max, gcd/lcm, bitwise folds and function composition all run through the
same engines, including operations that are not commutative.

The package provides six engines, each tuned to one access pattern:

	Engine           |  Update              |  Query          |  Domain
	-----------------+----------------------+-----------------+------------------
	Tree             |  point               |  range          |  dense [0,n)
	LazyTree         |  range (map)         |  range + point  |  dense [0,n)
	DualTree         |  range (map)         |  point          |  dense [0,n)
	AssignTree       |  range (overwrite)   |  range + point  |  dense [0,n)
	DynamicTree      |  point               |  range + point  |  sparse int64
	DynamicLazyTree  |  range (map)         |  range + point  |  sparse int64

The dense engines store nodes in a flat buffer of exactly twice the element
count, with no padding to a power of two; range folds walk the buffer with
cursor stripping so that left and right partial results are kept apart and
recombined in document order, which is what makes non-commutative algebras
safe. DualTree, LazyTree and DynamicLazyTree additionally act through a second
monoid of update maps. The sparse engines allocate nodes on demand from an
arena and cover any window of the signed 64-bit integers, so a handful of
updates inside a huge coordinate space costs only a handful of nodes.

All engines report illegal input (positions or ranges outside the domain) by
panicking with an error value wrapping one of the exported Err* constants.
Ranges that are merely empty are not an error: queries over them return the
identity element and updates are no-ops.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package segtree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// TreeError is an error type for the segtree module.
type TreeError string

func (e TreeError) Error() string {
	return string(e)
}

// ErrIndexOutOfBounds is flagged whenever a position lies outside the domain
// of the tree it is handed to.
const ErrIndexOutOfBounds = TreeError("index out of bounds")

// ErrInvalidRange is flagged whenever a range extends beyond the domain of the
// tree it is handed to, or an inclusive bound cannot be represented.
const ErrInvalidRange = TreeError("invalid range bounds")

// ErrInvalidSize is flagged whenever a tree is created with a negative size or
// an otherwise unusable domain.
const ErrInvalidSize = TreeError("invalid size")

// ErrSizeConversion is flagged whenever a segment size has to be folded into
// an element type too small to represent it.
const ErrSizeConversion = TreeError("segment size not representable")

// ErrInvalidStructure is returned by the Check methods when a structural
// invariant of a tree does not hold.
const ErrInvalidStructure = TreeError("structural invariant violated")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
