// Package frame contains resumable frame decoders. Every decoder is fed with consecutive
// pieces of a byte stream and reports whether its frame is complete. Bytes which don't
// belong to the frame are returned back untouched as rest, so the caller can route them
// elsewhere (most commonly, to the decoder of the next frame.)
//
// Decoders never retain the passed slices beyond the call: whatever must survive is either
// copied into decoder-owned memory or handed over to a sink as a copy.
package frame

import "errors"

// ErrTooLarge is returned by the Delimiter when a frame doesn't fit its limit.
var ErrTooLarge = errors.New("frame: size limit exceeded")

// Decoder is a general interface of a single-frame decoder.
type Decoder interface {
	// Decode consumes the frame bytes from data. When the frame is complete, done is true
	// and rest holds the bytes that follow it. Otherwise, all the data was consumed.
	Decode(data []byte) (done bool, rest []byte, err error)
}
