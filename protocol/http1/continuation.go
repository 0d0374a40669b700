package http1

import (
	"fmt"

	"github.com/impldream/smart-socket/config"
	"github.com/impldream/smart-socket/frame"
	"github.com/impldream/smart-socket/http"
)

var crlf = []byte("\r\n")

// Continuation is the progress of decoding a single message. It lives in the Session from
// the first byte of a message until the message is complete.
type Continuation struct {
	request     *http.Request
	phase       Phase
	body        bodyStrategy
	requestLine *frame.Delimiter
	headerLine  *frame.Delimiter
	form        *frame.Fixed
	stream      *frame.Stream
	// exposed is set once the request was handed over before its body is complete
	exposed bool
}

func newContinuation(cfg *config.Config) *Continuation {
	return &Continuation{
		requestLine: frame.NewDelimiter(
			crlf, cfg.URI.RequestLineSize.Default, cfg.URI.RequestLineSize.Maximal,
		),
		headerLine: frame.NewDelimiter(
			crlf, cfg.Headers.LineSize.Default, cfg.Headers.LineSize.Maximal,
		),
		form: frame.NewFixed(0),
	}
}

// Phase returns the current phase.
func (c *Continuation) Phase() Phase {
	return c.phase
}

// Request returns the request being populated.
func (c *Continuation) Request() *http.Request {
	return c.request
}

// transition moves the continuation to the next phase, refusing to go back.
func (c *Continuation) transition(next Phase) {
	if next < c.phase || (next == c.phase && next != PhaseHeadLine) {
		panic(fmt.Sprintf("BUG: phase regression: %s -> %s", c.phase, next))
	}

	c.phase = next
}

// reset prepares the continuation for a new message, keeping the decoders memory.
func (c *Continuation) reset(request *http.Request) {
	c.request = request
	c.phase = PhaseRequestLine
	c.body = bodyNone
	c.requestLine.Reset()
	c.headerLine.Reset()
	c.form.Reset(0)
	c.stream = nil
	c.exposed = false
}

// abort terminates a streamed body, if any. The body consumer gets io.ErrUnexpectedEOF.
func (c *Continuation) abort() {
	if c.stream != nil {
		c.stream.Abort()
	}
}
