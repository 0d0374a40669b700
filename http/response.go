package http

import (
	"github.com/impldream/smart-socket/http/status"
	"github.com/impldream/smart-socket/kv"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

const (
	MIMEPlain = "text/plain"
	MIMEJSON  = "application/json"
)

// Fields are the response contents as they're seen by the outer world.
type Fields struct {
	Code        status.Code
	Headers     *kv.Storage
	ContentType string
	Body        []byte
}

// Response is built by handlers. Rendering it onto the wire is up to the transport.
type Response struct {
	fields Fields
}

// NewResponse returns a new instance of the Response object with status code set to 200 OK
// and text/plain content-type.
func NewResponse() *Response {
	return &Response{
		fields: Fields{
			Code:        status.OK,
			Headers:     kv.New(),
			ContentType: MIMEPlain,
		},
	}
}

// Code sets a Response code.
func (r *Response) Code(code status.Code) *Response {
	r.fields.Code = code
	return r
}

// Header sets a header, overriding the previous value if any.
func (r *Response) Header(key, value string) *Response {
	r.fields.Headers.Set(key, value)
	return r
}

// ContentType sets a custom Content-Type.
func (r *Response) ContentType(value string) *Response {
	r.fields.ContentType = value
	return r
}

// String sets the response body.
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response body. The slice is copied.
func (r *Response) Bytes(body []byte) *Response {
	r.fields.Body = append(r.fields.Body[:0], body...)
	return r
}

// Write implements io.Writer, appending to the body.
func (r *Response) Write(b []byte) (n int, err error) {
	r.fields.Body = append(r.fields.Body, b...)
	return len(b), nil
}

// TryJSON receives a model and serializes it into the body.
func (r *Response) TryJSON(model any) (*Response, error) {
	r.fields.Body = r.fields.Body[:0]
	stream := json.ConfigDefault.BorrowStream(r)
	stream.WriteVal(model)
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return r.ContentType(MIMEJSON), err
}

// JSON does the same as TryJSON does, except returned error is being implicitly wrapped
// by Error
func (r *Response) JSON(model any) *Response {
	resp, err := r.TryJSON(model)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// Error sets the code carried by err (500 Internal Server Error for errors that aren't
// status.HTTPError) and the error message as a plain body. Nil error changes nothing.
func (r *Response) Error(err error) *Response {
	if err == nil {
		return r
	}

	return r.
		Code(status.CodeOf(err)).
		ContentType(MIMEPlain).
		String(err.Error())
}

// Reveal returns the response contents.
func (r *Response) Reveal() Fields {
	return r.fields
}
