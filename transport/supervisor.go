package transport

import (
	"sync/atomic"

	"github.com/impldream/smart-socket/config"
	"github.com/sirupsen/logrus"
)

// Supervisor runs several transports at once, each serving its connections with its own
// handler. Once any of them returns, the rest are stopped as well.
type Supervisor struct {
	log     logrus.FieldLogger
	stopped *atomic.Bool
	ts      []boundTransport
	stopch  chan struct{}
}

func NewSupervisor(log logrus.FieldLogger) Supervisor {
	return Supervisor{
		log:     log,
		stopped: new(atomic.Bool),
		stopch:  make(chan struct{}),
	}
}

// Add binds the transport. If binding fails, all the transports added so far are closed.
func (s *Supervisor) Add(addr string, transport Transport, h Handler) error {
	if err := transport.Bind(addr); err != nil {
		s.log.WithError(err).WithField("addr", addr).Error("cannot bind transport")
		s.close()
		return err
	}

	s.ts = append(s.ts, boundTransport{
		addr: addr,
		h:    h,
		t:    transport,
	})

	return nil
}

// Run listens on all the transports until either Stop is called or one of them returns.
// The error of the first returned transport is returned.
func (s *Supervisor) Run(cfg config.NET) error {
	if len(s.ts) == 0 {
		return nil
	}

	exits := make(chan exit)

	for _, t := range s.ts {
		go func(t boundTransport) {
			exits <- exit{addr: t.addr, err: t.t.Listen(cfg, t.h)}
		}(t)
	}

	select {
	case e := <-exits:
		s.report(e)
		s.stop()
		s.drain(exits, len(s.ts)-1)

		return e.err
	case <-s.stopch:
		s.stop()
		s.drain(exits, len(s.ts))
		s.stopch <- struct{}{}

		return nil
	}
}

// Stop interrupts Run, waiting until all the transports are stopped.
func (s *Supervisor) Stop() {
	if !s.stopped.Load() {
		s.stopch <- struct{}{}
		<-s.stopch
	}
}

func (s *Supervisor) stop() {
	if s.stopped.Swap(true) {
		return
	}

	for _, t := range s.ts {
		t.t.Stop()
	}

	for _, t := range s.ts {
		t.t.Wait()
		t.t.Close()
	}
}

func (s *Supervisor) close() {
	for _, t := range s.ts {
		t.t.Close()
	}
}

func (s *Supervisor) report(e exit) {
	entry := s.log.WithField("addr", e.addr)
	if e.err != nil {
		entry.WithError(e.err).Error("transport failed")
	} else {
		entry.Info("transport stopped")
	}
}

func (s *Supervisor) drain(exits <-chan exit, n int) {
	for range n {
		s.report(<-exits)
	}
}

type boundTransport struct {
	addr string
	h    Handler
	t    Transport
}

type exit struct {
	addr string
	err  error
}
