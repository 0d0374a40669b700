package http1

import (
	"errors"
	"strings"

	"github.com/impldream/smart-socket/config"
	"github.com/impldream/smart-socket/frame"
	"github.com/impldream/smart-socket/http"
	"github.com/impldream/smart-socket/http/method"
	"github.com/impldream/smart-socket/http/status"
	"github.com/impldream/smart-socket/protocol"
	"github.com/indigo-web/utils/strcomp"
	"golang.org/x/net/http/httpguts"
)

const multipartFormData = "multipart/form-data"

var _ protocol.Protocol[*Session, *http.Request] = new(Parser)

// Parser is a resumable HTTP/1 request decoder. It holds no per-connection state,
// therefore a single instance serves any number of connections concurrently.
//
// Only POST requests carry a body. A multipart/form-data body is streamed: the request is
// returned as soon as the headers are parsed, with the body reader attached. Any other
// POST body is buffered and parsed into Params, and the request is returned once the body
// is complete.
type Parser struct {
	cfg *config.Config
}

func NewParser(cfg *config.Config) *Parser {
	return &Parser{cfg: cfg}
}

// Decode feeds data into the message in progress of the session. It returns a request as
// soon as one is ready, together with the bytes which weren't consumed. Those must be
// passed into the next Decode call, even if no request was returned: this is the case of
// a streamed request, which is returned only once, early. Its completion is seen by
// Session.InProgress turning false.
//
// Passing eof means the connection is gone. A message in progress at this moment results
// in status.ErrIncompleteMessage, unless it's a streamed request just returned on the same
// call: it's still returned, but its body ends with io.ErrUnexpectedEOF. After any error the session has nothing in progress; the
// connection must be closed anyway, as its position in the stream is lost.
func (p *Parser) Decode(data []byte, session *Session, eof bool) (*http.Request, []byte, error) {
	request, rest, err := p.decode(data, session)
	if err != nil {
		session.Abort()
		return nil, nil, err
	}

	if eof && len(rest) == 0 && session.InProgress() {
		session.Abort()
		if request == nil {
			return nil, nil, status.ErrIncompleteMessage
		}

		// the streamed body will never be complete, its consumer gets io.ErrUnexpectedEOF
		return request, nil, nil
	}

	return request, rest, nil
}

func (p *Parser) decode(data []byte, session *Session) (request *http.Request, rest []byte, err error) {
	if len(data) == 0 {
		return nil, nil, nil
	}

	c := session.Continuation()
	if c == nil {
		c = p.begin(session)
	}

	var done bool

	for {
		switch c.phase {
		case PhaseRequestLine:
			done, data, err = c.requestLine.Decode(data)
			if err != nil {
				return nil, nil, frameError(err, status.ErrRequestLineTooLarge)
			}

			if !done {
				return nil, nil, nil
			}

			if err = p.parseRequestLine(c.request, string(c.requestLine.Bytes())); err != nil {
				return nil, nil, err
			}

			c.transition(PhaseHeadLine)
		case PhaseHeadLine:
			done, data, err = c.headerLine.Decode(data)
			if err != nil {
				return nil, nil, frameError(err, status.ErrHeaderFieldsTooLarge)
			}

			if !done {
				return nil, nil, nil
			}

			if c.headerLine.Len() == 0 {
				c.transition(PhaseHeadEnd)
				break
			}

			if err = p.parseHeaderLine(c.request, string(c.headerLine.Bytes())); err != nil {
				return nil, nil, err
			}

			c.headerLine.Reset()
			c.transition(PhaseHeadLine)
		case PhaseHeadEnd:
			// evaluated right away, so a request without a body doesn't wait for more data
			if err = p.chooseBody(c); err != nil {
				return nil, nil, err
			}

			if c.body == bodyNone || (c.body == bodyStream && c.stream.Remaining() == 0) {
				c.transition(PhaseEnd)
				break
			}

			c.transition(PhaseBody)

			if c.body == bodyStream {
				// the consumer must be started before the body is pushed, otherwise the
				// stream would stall as soon as its buffer is full
				c.exposed = true
				return c.request, data, nil
			}
		case PhaseBody:
			switch c.body {
			case bodyForm:
				if done, data, err = c.form.Decode(data); !done {
					return nil, nil, err
				}

				parseForm(c.request, string(c.form.Bytes()))
			case bodyStream:
				if done, data, err = c.stream.Decode(data); !done {
					return nil, nil, err
				}
			default:
				return nil, nil, status.ErrUnsupportedBodyStrategy
			}

			c.transition(PhaseEnd)
		case PhaseEnd:
			request = c.request
			exposed := c.exposed
			session.ClearContinuation()

			if exposed {
				return nil, data, nil
			}

			return request, data, nil
		default:
			panic("BUG: unknown phase")
		}
	}
}

func (p *Parser) begin(session *Session) *Continuation {
	c := session.takeSpare()
	if c == nil {
		c = newContinuation(p.cfg)
	}

	c.reset(http.NewRequest(session.Conn(), p.cfg.Headers.Number))
	session.SetContinuation(c)

	return c
}

func frameError(err, tooLarge error) error {
	if errors.Is(err, frame.ErrTooLarge) {
		return tooLarge
	}

	return err
}

func (p *Parser) parseRequestLine(request *http.Request, line string) error {
	tokens := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' '
	})

	if len(tokens) < 3 || (p.cfg.Headers.Strict && len(tokens) > 3) {
		return status.ErrMalformedRequestLine
	}

	request.Method, request.URL, request.Protocol = tokens[0], tokens[1], tokens[2]

	return nil
}

func (p *Parser) parseHeaderLine(request *http.Request, line string) error {
	name, value, found := strings.Cut(line, ":")
	name, value = trimOWS(name), trimOWS(value)

	if p.cfg.Headers.Strict {
		if !found || !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(value) {
			return status.ErrMalformedHeader
		}
	}

	request.Headers.Set(name, value)

	return nil
}

// chooseBody decides how the body must be decoded, basing on the method and headers. It
// attaches the body reader for streamed bodies.
func (p *Parser) chooseBody(c *Continuation) error {
	request := c.request

	length, err := contentLength(request.Headers)
	if err != nil {
		return err
	}

	request.ContentLength = length
	request.ContentType = request.Headers.Value("Content-Type")

	if method.Parse(request.Method) != method.POST {
		c.body = bodyNone
		return nil
	}

	if length > p.cfg.Body.MaxSize {
		return status.ErrBodyTooLarge
	}

	if isMultipart(request.ContentType) {
		c.body = bodyStream
		c.stream = frame.NewStream(length, p.cfg.Body.Stream.Chunks)
		request.Streamed = true
		request.Body = c.stream.Reader()

		return nil
	}

	if length > p.cfg.Body.Form.MaxSize {
		return status.ErrBodyTooLarge
	}

	if length == 0 {
		c.body = bodyNone
		return nil
	}

	c.body = bodyForm
	c.form.Reset(length)

	return nil
}

func isMultipart(contentType string) bool {
	return len(contentType) >= len(multipartFormData) &&
		strcomp.EqualFold(contentType[:len(multipartFormData)], multipartFormData)
}

// contentLength returns 0 if the header is missing.
func contentLength(headers http.Headers) (int, error) {
	value, found := headers.Get("Content-Length")
	if !found {
		return 0, nil
	}

	value = trimOWS(value)
	if len(value) == 0 || len(value) > 18 {
		return 0, status.ErrBadContentLength
	}

	var length int

	for i := 0; i < len(value); i++ {
		char := value[i] - '0'
		if char > 9 {
			return 0, status.ErrBadContentLength
		}

		length = length*10 + int(char)
	}

	return length, nil
}

// parseForm splits the body into name-value pairs. Values aren't percent-decoded.
func parseForm(request *http.Request, body string) {
	for _, pair := range strings.Split(body, "&") {
		if len(pair) == 0 {
			continue
		}

		name, value, _ := strings.Cut(pair, "=")
		request.Params.Set(strings.TrimSpace(name), strings.TrimSpace(value))
	}
}

func trimOWS(str string) string {
	return strings.Trim(str, " \t")
}
