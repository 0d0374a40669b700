package config

import (
	"io"
	"time"

	json "github.com/json-iterator/go"
)

type (
	LineSize struct {
		// Default is the initial capacity of a line buffer, Maximal is the hard limit for the
		// whole line, including the CRLF.
		Default, Maximal int
	}

	BodyForm struct {
		// MaxSize limits the Content-Length of bodies, which are buffered in whole in order
		// to be parsed into form params.
		MaxSize int
	}

	BodyStream struct {
		// Chunks is the number of network deliveries that may be buffered in front of a
		// body consumer. Once it's reached, the decoding path blocks until the consumer
		// drains the body. Zero makes every delivery a rendezvous.
		Chunks int `test:"nullable"`
	}
)

type (
	URI struct {
		// RequestLineSize bounds the request line, which is method, URL and protocol altogether.
		RequestLineSize LineSize
	}

	Headers struct {
		// LineSize bounds every single header line.
		LineSize LineSize
		// Number is an initial capacity of the headers storage.
		Number int
		// Strict enables validation of header names and values, also rejecting request
		// lines consisting of more than three tokens. Disabled by default, so the decoder
		// stays permissive.
		Strict bool `test:"nullable"`
	}

	Body struct {
		// MaxSize describes the maximal Content-Length which will be accepted, regardless of
		// the body strategy.
		MaxSize int
		// Form is applied to every POST body that isn't multipart/form-data.
		Form BodyForm
		// Stream is applied to multipart/form-data bodies.
		Stream BodyStream
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket
		ReadBufferSize int
		// ReadTimeout controls the maximal lifetime of IDLE connections. If no data was
		// received in this period of time, it'll be closed.
		ReadTimeout time.Duration
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop. Defaults to 5 seconds.
		AcceptLoopInterruptPeriod time.Duration
		// Multicore makes the event-loop transport run a loop per CPU core.
		Multicore bool `test:"nullable"`
	}
)

// Config holds settings used across the decoder and transports, mainly restrictions,
// limitations and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	URI     URI
	Headers Headers
	Body    Body
	NET     NET
}

// Default returns default config.
func Default() *Config {
	return &Config{
		URI: URI{
			RequestLineSize: LineSize{
				Default: 256,
				Maximal: 8 * 1024,
			},
		},
		Headers: Headers{
			LineSize: LineSize{
				Default: 256,
				Maximal: 8 * 1024,
			},
			Number: 10,
		},
		Body: Body{
			MaxSize: 512 * 1024 * 1024, // 512 megabytes
			Form: BodyForm{
				MaxSize: 1024 * 1024,
			},
			Stream: BodyStream{
				Chunks: 16,
			},
		},
		NET: NET{
			ReadBufferSize:            4 * 1024,
			ReadTimeout:               90 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
	}
}

var strictJSON = json.Config{
	EscapeHTML:             true,
	DisallowUnknownFields:  true,
	ValidateJsonRawMessage: true,
}.Froze()

// Load overlays a JSON document onto the defaults. Durations are in nanoseconds. Fields
// absent in the document keep their default values; unknown fields are an error.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := strictJSON.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
