package server

import (
	"strings"
	"testing"
	"time"

	"github.com/impldream/smart-socket/config"
	"github.com/impldream/smart-socket/handler"
	"github.com/impldream/smart-socket/http"
	"github.com/impldream/smart-socket/http/status"
	"github.com/impldream/smart-socket/protocol/http1"
	"github.com/impldream/smart-socket/transport/dummy"
	json "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type result struct {
	request  *http.Request
	response *http.Response
	err      error
}

func newServer(cfg *config.Config, h handler.Handler) (*Server, *test.Hook, chan result) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	results := make(chan result, 16)
	srv := New(http1.NewParser(cfg), h, logger, func(request *http.Request, response *http.Response, err error) {
		results <- result{request, response, err}
	})

	return srv, hook, results
}

func receive(t *testing.T, results chan result) result {
	select {
	case r := <-results:
		return r
	case <-time.After(time.Second):
		require.FailNow(t, "no response")
		return result{}
	}
}

func TestServer(t *testing.T) {
	chain := handler.NewChain(handler.HostCheck, handler.Echo)

	t.Run("pipelined", func(t *testing.T) {
		srv, hook, results := newServer(config.Default(), chain)
		stream := srv.Open(dummy.NewConn("1"))
		raw := "GET /a HTTP/1.1\r\nHost: example.com\r\n\r\nGET /b HTTP/1.1\r\n\r\n"
		require.NoError(t, stream.Feed([]byte(raw)))
		stream.Close()

		first, second := receive(t, results), receive(t, results)
		require.Equal(t, "/a", first.request.URL)
		require.Equal(t, status.OK, first.response.Reveal().Code)
		require.Equal(t, "/b", second.request.URL)
		require.Equal(t, status.BadRequest, second.response.Reveal().Code)

		var statuses []any
		for _, entry := range hook.AllEntries() {
			if entry.Message == "request processed" {
				statuses = append(statuses, entry.Data["status"])
			}
		}
		require.Equal(t, []any{status.Status("OK"), status.Status("Bad Request")}, statuses)

		for _, entry := range hook.AllEntries() {
			require.Equal(t, "1", entry.Data["conn"])
			require.NotEqual(t, logrus.WarnLevel, entry.Level)
		}
	})

	t.Run("streamed", func(t *testing.T) {
		cfg := config.Default()
		cfg.Body.Stream.Chunks = 1
		srv, _, results := newServer(cfg, chain)
		stream := srv.Open(dummy.NewConn("2"))

		body := strings.Repeat("0123456789", 10)
		head := "POST /upload HTTP/1.1\r\nHost: a\r\nContent-Type: multipart/form-data\r\n" +
			"Content-Length: 100\r\n\r\n"
		require.NoError(t, stream.Feed([]byte(head)))
		for i := 0; i < len(body); i += 9 {
			require.NoError(t, stream.Feed([]byte(body[i:min(i+9, len(body))])))
		}

		r := receive(t, results)
		require.NoError(t, r.err)
		require.True(t, r.request.Streamed)

		var model map[string]any
		require.NoError(t, json.Unmarshal(r.response.Reveal().Body, &model))
		require.Equal(t, body, model["body"])
		srv.Wait()
	})

	t.Run("unread stream doesn't block", func(t *testing.T) {
		cfg := config.Default()
		cfg.Body.Stream.Chunks = 1
		srv, _, results := newServer(cfg, handler.HostCheck)
		stream := srv.Open(dummy.NewConn("3"))

		head := "POST / HTTP/1.1\r\nContent-Type: multipart/form-data\r\nContent-Length: 50\r\n\r\n"
		require.NoError(t, stream.Feed([]byte(head)))
		receive(t, results)

		for i := 0; i < 50; i++ {
			require.NoError(t, stream.Feed([]byte("x")))
		}

		require.NoError(t, stream.Feed([]byte("GET / HTTP/1.1\r\nHost: a\r\n\r\n")))
		require.Equal(t, "/", receive(t, results).request.URL)
		srv.Wait()
	})

	t.Run("bad request", func(t *testing.T) {
		srv, hook, results := newServer(config.Default(), chain)
		stream := srv.Open(dummy.NewConn("4"))
		err := stream.Feed([]byte("GET /\r\n\r\n"))
		require.ErrorIs(t, err, status.ErrMalformedRequestLine)
		stream.Close()

		require.Empty(t, results)
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.DebugLevel, entry.Level)

		var warned bool
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.WarnLevel {
				warned = true
				require.Equal(t, status.BadRequest, entry.Data["code"])
				require.Equal(t, status.Status("Bad Request"), entry.Data["status"])
			}
		}
		require.True(t, warned)
	})

	t.Run("closed mid-message", func(t *testing.T) {
		srv, hook, _ := newServer(config.Default(), chain)
		stream := srv.Open(dummy.NewConn("5"))
		require.NoError(t, stream.Feed([]byte("GET / HTTP/1.1\r\nHo")))
		stream.Close()

		var found bool
		for _, entry := range hook.AllEntries() {
			if entry.Message == "connection closed mid-message" {
				found = true
				require.ErrorIs(t, entry.Data[logrus.ErrorKey].(error), status.ErrIncompleteMessage)
			}
		}
		require.True(t, found)
	})
}
