package handler

import (
	"github.com/impldream/smart-socket/http"
	"github.com/impldream/smart-socket/http/status"
	"github.com/sirupsen/logrus"
)

type Logger interface {
	Printf(fmt string, v ...any)
}

// LogRequests wraps the handler, logging method, URL and the resulting code of every
// request after it was processed. The standard logrus logger is used if none passed.
func LogRequests(next Handler, loggers ...Logger) Handler {
	if len(loggers) == 0 {
		loggers = append(loggers, logrus.StandardLogger())
	}

	return HandlerFunc(func(request *http.Request, response *http.Response) (Result, error) {
		result, err := next.Handle(request, response)

		code := response.Reveal().Code
		if err != nil {
			code = status.CodeOf(err)
		}

		for _, logger := range loggers {
			logger.Printf("%s %s %d", request.Method, request.URL, code)
		}

		return result, err
	})
}
