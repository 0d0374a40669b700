package http1

import "fmt"

// Phase is the part of the message which is being decoded at the moment. Phases only move
// forward, except PhaseHeadLine which is repeated once per header line.
type Phase uint8

const (
	PhaseRequestLine Phase = iota + 1
	PhaseHeadLine
	PhaseHeadEnd
	PhaseBody
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseRequestLine:
		return "request-line"
	case PhaseHeadLine:
		return "head-line"
	case PhaseHeadEnd:
		return "head-end"
	case PhaseBody:
		return "body"
	case PhaseEnd:
		return "end"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

type bodyStrategy uint8

const (
	bodyNone bodyStrategy = iota
	// bodyForm buffers the whole body and parses it into params
	bodyForm
	// bodyStream passes the body through to the request's reader
	bodyStream
)
