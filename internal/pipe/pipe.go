package pipe

import (
	"io"
	"sync"
)

// Pipe is a single-producer single-consumer bridge between the decoding path and a body
// consumer running elsewhere. The data channel capacity bounds how many chunks may be in
// flight: once it's full, Write blocks until the consumer catches up.
//
// Chunks are passed by reference, so the producer must not touch a slice after writing it.
type Pipe struct {
	data      chan []byte
	done      chan struct{}
	err       error
	pending   []byte
	closeOnce sync.Once
	doneOnce  sync.Once
}

func New(chunks int) *Pipe {
	return &Pipe{
		data: make(chan []byte, chunks),
		done: make(chan struct{}),
	}
}

// Write hands the chunk over to the consumer. It returns false if the consumer has
// already closed its side, in which case the chunk is dropped.
func (p *Pipe) Write(b []byte) (ok bool) {
	select {
	case <-p.done:
		return false
	default:
	}

	select {
	case p.data <- b:
		return true
	case <-p.done:
		return false
	}
}

// CloseWithError finishes the producer side. The consumer reads all chunks written so far
// and gets err afterwards. Passing nil results in io.EOF. Only the first call counts.
func (p *Pipe) CloseWithError(err error) {
	if err == nil {
		err = io.EOF
	}

	p.closeOnce.Do(func() {
		p.err = err
		close(p.data)
	})
}

// Read implements io.Reader. Blocks until either data is available or the producer has
// closed the pipe.
func (p *Pipe) Read(b []byte) (n int, err error) {
	if len(p.pending) == 0 {
		chunk, ok := <-p.data
		if !ok {
			return 0, p.err
		}

		p.pending = chunk
	}

	n = copy(b, p.pending)
	p.pending = p.pending[n:]

	return n, nil
}

// Close is called by the consumer. Everything written afterwards is discarded, so the
// producer never blocks on a consumer that's gone.
func (p *Pipe) Close() error {
	p.doneOnce.Do(func() {
		close(p.done)
	})

	return nil
}
