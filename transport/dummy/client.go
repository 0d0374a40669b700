package dummy

import (
	"io"
)

// Client returns the same data as it was initialised with on every read, unless set to
// shoot once. Once closed, every read results in io.EOF.
type Client struct {
	*Conn
	closed  bool
	once    bool
	pointer int
	data    [][]byte
}

func NewMockClient(data ...[]byte) *Client {
	return &Client{
		Conn: NewConn("mock"),
		data: data,
	}
}

func (c *Client) Read() (data []byte, err error) {
	if c.closed {
		return nil, io.EOF
	}

	if c.pointer >= len(c.data) {
		if c.once {
			c.closed = true
			return nil, io.EOF
		}

		c.pointer = 0
	}

	piece := c.data[c.pointer]
	c.pointer++

	return piece, nil
}

func (c *Client) Close() error {
	c.closed = true
	return nil
}

func (c *Client) Closed() bool {
	return c.closed
}

// Once makes the client return io.EOF after all the data was read.
func (c *Client) Once() *Client {
	c.once = true
	return c
}
