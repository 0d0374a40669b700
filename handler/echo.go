package handler

import (
	"io"

	"github.com/impldream/smart-socket/http"
)

type echoModel struct {
	Method        string            `json:"method"`
	URL           string            `json:"url"`
	Protocol      string            `json:"protocol"`
	Headers       map[string]string `json:"headers"`
	Params        map[string]string `json:"params,omitempty"`
	ContentLength int               `json:"content_length"`
	Streamed      bool              `json:"streamed"`
	Body          string            `json:"body,omitempty"`
}

// Echo renders the request back as JSON. A streamed body is read in whole, and an error
// occurred while reading it is returned.
var Echo Handler = HandlerFunc(func(request *http.Request, response *http.Response) (Result, error) {
	model := echoModel{
		Method:        request.Method,
		URL:           request.URL,
		Protocol:      request.Protocol,
		Headers:       request.Headers.Map(),
		Params:        request.Params.Map(),
		ContentLength: request.ContentLength,
		Streamed:      request.Streamed,
	}

	body, err := io.ReadAll(request.Body)
	_ = request.Body.Close()
	if err != nil {
		return Stop, err
	}

	model.Body = string(body)
	response.JSON(model)

	return Stop, nil
})
