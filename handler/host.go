package handler

import (
	"github.com/impldream/smart-socket/http"
	"github.com/impldream/smart-socket/http/status"
)

// HostCheck rejects requests missing the Host header with 400 Bad Request. The check is
// applied regardless of the protocol version.
var HostCheck Handler = HandlerFunc(func(request *http.Request, response *http.Response) (Result, error) {
	if _, found := request.Host(); !found {
		response.
			Code(status.BadRequest).
			String("missing Host header")

		return Stop, nil
	}

	return Continue, nil
})
