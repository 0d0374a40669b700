// Package server drives the decoding of connections: it feeds every delivery into the
// protocol, and hands the requests over to the handler as soon as they're ready.
package server

import (
	"sync"

	"github.com/impldream/smart-socket/handler"
	"github.com/impldream/smart-socket/http"
	"github.com/impldream/smart-socket/http/status"
	"github.com/impldream/smart-socket/protocol"
	"github.com/impldream/smart-socket/protocol/http1"
	"github.com/impldream/smart-socket/transport"
	"github.com/sirupsen/logrus"
)

var _ transport.Handler = new(Server)

// OnResponse is called whenever the handler is done with a request. err is the one returned
// by the handler, if any.
type OnResponse func(request *http.Request, response *http.Response, err error)

type Server struct {
	protocol   protocol.Protocol[*http1.Session, *http.Request]
	handler    handler.Handler
	log        logrus.FieldLogger
	onResponse OnResponse
	wg         sync.WaitGroup
}

// New returns a server. onResponse may be nil.
func New(
	p protocol.Protocol[*http1.Session, *http.Request],
	h handler.Handler,
	log logrus.FieldLogger,
	onResponse OnResponse,
) *Server {
	return &Server{
		protocol:   p,
		handler:    h,
		log:        log,
		onResponse: onResponse,
	}
}

// Open implements transport.Handler.
func (s *Server) Open(conn http.Conn) transport.Stream {
	log := s.log.WithField("conn", conn.ID())
	log.WithField("remote", conn.Remote()).Debug("connection opened")

	return &connection{
		server:  s,
		session: http1.NewSession(conn),
		log:     log,
	}
}

// Wait blocks until all the requests which are processed in background are done.
func (s *Server) Wait() {
	s.wg.Wait()
}

type connection struct {
	server  *Server
	session *http1.Session
	log     logrus.FieldLogger
}

func (c *connection) Feed(data []byte) error {
	for len(data) > 0 {
		request, rest, err := c.server.protocol.Decode(data, c.session, false)
		if err != nil {
			code := status.CodeOf(err)
			c.log.WithError(err).WithFields(logrus.Fields{
				"code":   code,
				"status": status.Text(code),
			}).Warn("bad request")
			return err
		}

		data = rest
		if request != nil {
			c.dispatch(request)
		}
	}

	return nil
}

func (c *connection) Close() {
	if _, _, err := c.server.protocol.Decode(nil, c.session, true); err != nil {
		c.log.WithError(err).Warn("connection closed mid-message")
	}

	c.log.Debug("connection closed")
}

// dispatch processes the request. Streamed requests are processed in background, as their
// bodies are yet to be fed by the following deliveries.
func (c *connection) dispatch(request *http.Request) {
	if !request.Streamed {
		c.process(request)
		return
	}

	c.server.wg.Add(1)
	go func() {
		defer c.server.wg.Done()
		c.process(request)
		// the rest of the body, if any, must be discarded instead of stalling the stream
		_ = request.Body.Close()
	}()
}

func (c *connection) process(request *http.Request) {
	response, err := handler.Run(c.server.handler, request)
	code := response.Reveal().Code

	entry := c.log.WithFields(logrus.Fields{
		"method": request.Method,
		"url":    request.URL,
		"code":   code,
		"status": status.Text(code),
	})
	if err != nil {
		entry.WithError(err).Error("handler failed")
	} else {
		entry.Debug("request processed")
	}

	if c.server.onResponse != nil {
		c.server.onResponse(request, response, err)
	}
}
