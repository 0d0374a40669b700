package http1

import (
	"github.com/impldream/smart-socket/http"
)

// Session is the per-connection decoding state. A transport allocates exactly one for every
// connection and passes it into each Decode call of that connection. It's not safe for
// concurrent use, which is fine as long as decoding of a single connection is serialized.
type Session struct {
	conn http.Conn
	cont *Continuation
	// spare is a finished continuation, kept to be reused by the next message
	spare *Continuation
}

func NewSession(conn http.Conn) *Session {
	return &Session{conn: conn}
}

// Conn returns the connection the session belongs to.
func (s *Session) Conn() http.Conn {
	return s.conn
}

// Continuation returns the message in progress, or nil if the next byte starts a new one.
func (s *Session) Continuation() *Continuation {
	return s.cont
}

// SetContinuation stores the message in progress.
func (s *Session) SetContinuation(c *Continuation) {
	s.cont = c
}

// ClearContinuation marks the message as finished.
func (s *Session) ClearContinuation() {
	if s.cont != nil {
		s.spare, s.cont = s.cont, nil
		// the request now belongs to the consumers
		s.spare.request, s.spare.stream = nil, nil
	}
}

// InProgress tells whether a message has been started but not finished yet.
func (s *Session) InProgress() bool {
	return s.cont != nil
}

// Abort drops the message in progress. If its body is being streamed, the consumer gets
// io.ErrUnexpectedEOF instead of blocking forever. Transports must call either Abort or
// Decode with eof set when the connection is gone.
func (s *Session) Abort() {
	if s.cont == nil {
		return
	}

	s.cont.abort()
	s.cont = nil
}

func (s *Session) takeSpare() *Continuation {
	c := s.spare
	s.spare = nil

	return c
}
