// Package protocol defines what a wire protocol must provide to be driven by a transport.
package protocol

// Protocol decodes messages of a single wire protocol. S is the per-connection state,
// which is allocated by the transport once per connection and passed into every call; the
// protocol never keeps it anywhere else. T is the decoded message.
//
// Decode may be called with arbitrarily fragmented data. It returns a message once one is
// available, and the bytes which weren't consumed. The transport must call Decode again
// with the rest before reading more from the connection. When the connection ends, the
// transport calls Decode with eof set.
type Protocol[S, T any] interface {
	Decode(data []byte, session S, eof bool) (message T, rest []byte, err error)
}
