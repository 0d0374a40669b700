package http

import (
	"io"

	"github.com/impldream/smart-socket/kv"
)

type (
	Headers = *kv.Storage
	Params  = *kv.Storage
)

// Request is a decoded HTTP request. It's populated exclusively by the decoder, and must be
// treated as read-only by everybody else once handed over. The only exception is Body, which
// is meant to be consumed.
type Request struct {
	// Method is the method token exactly as it was received.
	Method string
	// URL is the request target as it was received.
	URL string
	// Protocol is the protocol token, e.g. HTTP/1.1.
	Protocol string
	// Headers keep their arrival order. A repeated header overrides the previous value.
	Headers Headers
	// Params are name-value pairs of an urlencoded POST body.
	Params Params
	// ContentLength obtains the value from Content-Length header. It holds the value of 0
	// if isn't presented.
	ContentLength int
	// ContentType obtains Content-Type header value
	ContentType string
	// Streamed tells whether Body is a live stream, which is still being fed by the
	// connection. Such requests are handed over as soon as headers are parsed.
	Streamed bool
	// Body is never nil. It's empty unless Streamed is true.
	Body io.ReadCloser
	// Conn is the connection the request arrived on.
	Conn Conn
}

func NewRequest(conn Conn, headersPrealloc int) *Request {
	return &Request{
		Headers: kv.NewPrealloc(headersPrealloc),
		Params:  kv.New(),
		Body:    NoBody,
		Conn:    conn,
	}
}

// Header returns the value of the header, or an empty string if it's missing.
func (r *Request) Header(name string) string {
	return r.Headers.Value(name)
}

// Host returns the Host header value and whether it's presented at all.
func (r *Request) Host() (host string, found bool) {
	return r.Headers.Get("Host")
}

// NoBody is an always-empty body.
var NoBody io.ReadCloser = noBody{}

type noBody struct{}

func (noBody) Read([]byte) (int, error) {
	return 0, io.EOF
}

func (noBody) Close() error {
	return nil
}
