package transport

import (
	"github.com/impldream/smart-socket/config"
	"github.com/impldream/smart-socket/http"
)

// Handler consumes the byte streams of connections. Open is called once per connection,
// before any data of it is delivered.
type Handler interface {
	Open(conn http.Conn) Stream
}

// Stream is the receiving side of a single connection. Its methods are never called
// concurrently.
type Stream interface {
	// Feed passes the next delivery. The data is valid only until Feed returns. An error
	// makes the transport drop the connection.
	Feed(data []byte) error
	// Close is called exactly once, when the connection is gone for whatever reason.
	Close()
}

type Transport interface {
	Bind(addr string) error
	Listen(cfg config.NET, h Handler) error
	Stop()
	Close()
	Wait()
}
