package dummy

import (
	"net"
)

// Conn is an in-memory http.Conn, which doesn't carry any real connection.
type Conn struct {
	id     string
	remote net.Addr
}

func NewConn(id string) *Conn {
	return &Conn{
		id:     id,
		remote: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080},
	}
}

func (c *Conn) ID() string {
	return c.id
}

func (c *Conn) Remote() net.Addr {
	return c.remote
}
