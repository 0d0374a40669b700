package http

import "net"

// Conn is the connection a request arrived on. It's implemented by transports.
type Conn interface {
	// ID uniquely identifies the connection among the living ones.
	ID() string
	Remote() net.Addr
}
