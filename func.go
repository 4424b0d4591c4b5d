// SPDX-License-Identifier: GPL-3.0-or-later

package dynali

import "context"

// Func is a single pipeline stage turning an input into a result.
//
// The [*Client] chains stages with [Compose2] and [Compose3]: validation,
// encoding, the transport exchange, decoding, and mapping each have exactly
// one success mode and one failure mode, so a failing stage stops the pipeline.
//
// Resource cleanup contract: when a Func receives a closeable resource as input
// and returns an error, it is responsible for closing that resource before returning.
// See [TLSHandshakeFunc] for an example of this pattern.
type Func[A, B any] interface {
	Call(ctx context.Context, input A) (B, error)
}

// FuncAdapter wraps a function as a [Func] implementation.
type FuncAdapter[A, B any] func(ctx context.Context, input A) (B, error)

// Call implements [Func].
func (f FuncAdapter[A, B]) Call(ctx context.Context, input A) (B, error) {
	return f(ctx, input)
}
