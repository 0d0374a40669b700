package transport

import (
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/impldream/smart-socket/http"
)

type Client interface {
	http.Conn
	Read() ([]byte, error)
	Close() error
}

type client struct {
	id      string
	conn    net.Conn
	buff    []byte
	timeout time.Duration
}

func NewClient(conn net.Conn, timeout time.Duration, buff []byte) Client {
	return &client{
		id:      uuid.NewString(),
		buff:    buff,
		conn:    conn,
		timeout: timeout,
	}
}

// ID returns the identifier, generated when the client was created.
func (c *client) ID() string {
	return c.id
}

// Read reads data into the internal buffer and returns a piece of it back. The returned
// slice is overwritten by the next Read. Timeouts are also handled automatically.
func (c *client) Read() ([]byte, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, err
	}

	n, err := c.conn.Read(c.buff)
	return c.buff[:n], err
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection.
func (c *client) Close() error {
	return c.conn.Close()
}

// Serve pumps the data from the client into the handler until either of them fails.
// The stream is closed afterwards, the client is not.
func Serve(client Client, h Handler) {
	stream := h.Open(client)
	defer stream.Close()

	for {
		data, err := client.Read()
		if len(data) > 0 {
			if ferr := stream.Feed(data); ferr != nil {
				return
			}
		}

		if err != nil {
			return
		}
	}
}
