// Package buffer owns the scratch memory of the processing path.
//
// Manager keeps per-channel (deinterleaved), flat (interleaved) and
// per-channel processing buffers sized to the current block shape and only
// reallocates them when the frame length or channel count changes, so the
// steady state allocates nothing. Pool hands reusable interleaved blocks to
// consumers that run off the real-time path.
package buffer
