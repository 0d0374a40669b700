package transport

import (
	"context"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/impldream/smart-socket/config"
	"github.com/panjf2000/gnet/v2"
	"github.com/sirupsen/logrus"
)

// EventLoop serves connections by a fixed number of gnet event loops instead of a goroutine
// per connection. Streams are fed right on the loop: a stream that blocks, e.g. because a
// body consumer lags behind, stalls every connection of the same loop.
type EventLoop struct {
	gnet.BuiltinEventEngine

	log     logrus.FieldLogger
	addr    string
	handler Handler

	mu      sync.Mutex
	engine  gnet.Engine
	booted  bool
	stopped bool
	done    chan struct{}
}

func NewEventLoop(log logrus.FieldLogger) *EventLoop {
	return &EventLoop{
		log:  log,
		done: make(chan struct{}),
	}
}

// Bind only validates the address, as the listener is created by Listen.
func (e *EventLoop) Bind(addr string) error {
	if _, err := net.ResolveTCPAddr("tcp", addr); err != nil {
		return err
	}

	e.addr = addr
	return nil
}

func (e *EventLoop) Listen(cfg config.NET, h Handler) error {
	defer close(e.done)
	e.handler = h

	return gnet.Run(e, "tcp://"+e.addr,
		gnet.WithMulticore(cfg.Multicore),
		gnet.WithReadBufferCap(cfg.ReadBufferSize),
		gnet.WithReusePort(true),
		gnet.WithLogger(e.log),
	)
}

func (e *EventLoop) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopped = true
	if e.booted {
		if err := e.engine.Stop(context.Background()); err != nil {
			e.log.WithError(err).Warn("stopping event loop")
		}
	}
}

// Close does nothing, as the engine releases its listener once stopped.
func (e *EventLoop) Close() {}

// Wait blocks until Listen returns.
func (e *EventLoop) Wait() {
	<-e.done
}

func (e *EventLoop) OnBoot(eng gnet.Engine) gnet.Action {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return gnet.Shutdown
	}

	e.engine, e.booted = eng, true
	e.log.WithField("addr", e.addr).Info("event loop is listening")

	return gnet.None
}

func (e *EventLoop) OnOpen(c gnet.Conn) ([]byte, gnet.Action) {
	conn := &loopConn{
		id:     uuid.NewString(),
		remote: c.RemoteAddr(),
	}
	c.SetContext(e.handler.Open(conn))

	return nil, gnet.None
}

func (e *EventLoop) OnTraffic(c gnet.Conn) gnet.Action {
	stream, ok := c.Context().(Stream)
	if !ok {
		return gnet.Close
	}

	data, err := c.Next(-1)
	if err != nil {
		return gnet.Close
	}

	if err = stream.Feed(data); err != nil {
		return gnet.Close
	}

	return gnet.None
}

func (e *EventLoop) OnClose(c gnet.Conn, _ error) gnet.Action {
	if stream, ok := c.Context().(Stream); ok {
		stream.Close()
		c.SetContext(nil)
	}

	return gnet.None
}

type loopConn struct {
	id     string
	remote net.Addr
}

func (l *loopConn) ID() string {
	return l.id
}

func (l *loopConn) Remote() net.Addr {
	return l.remote
}
