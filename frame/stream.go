package frame

import (
	"io"

	"github.com/impldream/smart-socket/internal/pipe"
)

// Stream forwards exactly the declared number of bytes to a body reader, without
// buffering the frame as a whole. The reader is available right after construction and
// is expected to be drained by a different goroutine: when the consumer lags behind for
// more than the configured amount of chunks, Decode blocks.
type Stream struct {
	remaining int
	pipe      *pipe.Pipe
}

func NewStream(length, chunks int) *Stream {
	if length < 0 {
		length = 0
	}

	s := &Stream{
		remaining: length,
		pipe:      pipe.New(chunks),
	}

	if length == 0 {
		s.pipe.CloseWithError(io.EOF)
	}

	return s
}

func (s *Stream) Decode(data []byte) (done bool, rest []byte, err error) {
	if s.remaining == 0 {
		return true, data, nil
	}

	n := min(s.remaining, len(data))
	if n > 0 {
		// the data belongs to the caller, therefore the consumer gets its own copy
		chunk := make([]byte, n)
		copy(chunk, data)
		s.pipe.Write(chunk)
		s.remaining -= n
	}

	if s.remaining > 0 {
		return false, nil, nil
	}

	s.pipe.CloseWithError(io.EOF)

	return true, data[n:], nil
}

// Reader returns the body stream. A single reader exists per Stream.
func (s *Stream) Reader() io.ReadCloser {
	return s.pipe
}

// Remaining returns how many bytes are yet to be forwarded.
func (s *Stream) Remaining() int {
	return s.remaining
}

// Abort terminates the stream before its declared length was reached. The consumer
// gets io.ErrUnexpectedEOF once buffered chunks are drained.
func (s *Stream) Abort() {
	if s.remaining > 0 {
		s.pipe.CloseWithError(io.ErrUnexpectedEOF)
	}
}
