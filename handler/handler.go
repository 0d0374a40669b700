// Package handler holds the processing which takes place once a request is decoded. Handlers
// are composed statically into a Chain, and each of them either stops the chain, usually
// having filled the response, or lets the next one take over.
package handler

import (
	"github.com/impldream/smart-socket/http"
)

type Result uint8

const (
	// Continue passes the request to the next handler in the chain.
	Continue Result = iota
	// Stop finishes the chain. Remaining handlers are skipped.
	Stop
)

func (r Result) String() string {
	if r == Stop {
		return "stop"
	}

	return "continue"
}

type Handler interface {
	Handle(request *http.Request, response *http.Response) (Result, error)
}

type HandlerFunc func(request *http.Request, response *http.Response) (Result, error)

func (h HandlerFunc) Handle(request *http.Request, response *http.Response) (Result, error) {
	return h(request, response)
}

// Chain runs handlers one after another, in the order they were passed in. It's a Handler
// itself, therefore chains can be nested.
type Chain struct {
	handlers []Handler
}

func NewChain(handlers ...Handler) *Chain {
	return &Chain{handlers: handlers}
}

// Handle runs the handlers until one of them returns Stop or an error. The error aborts the
// chain as is, leaving the response to the caller.
func (c *Chain) Handle(request *http.Request, response *http.Response) (Result, error) {
	for _, handler := range c.handlers {
		result, err := handler.Handle(request, response)
		if err != nil {
			return Stop, err
		}

		if result == Stop {
			return Stop, nil
		}
	}

	return Continue, nil
}

// Run processes the request with a fresh response.
func Run(h Handler, request *http.Request) (*http.Response, error) {
	response := http.NewResponse()
	_, err := h.Handle(request, response)

	return response, err
}
