package status

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	for _, code := range KnownCodes {
		require.NotEqual(t, Status("Unknown Status Code"), Text(code), code)
	}

	require.Equal(t, Status("Unknown Status Code"), Text(999))
}

func TestErrors(t *testing.T) {
	t.Run("frame too large", func(t *testing.T) {
		require.True(t, IsFrameTooLarge(ErrRequestLineTooLarge))
		require.True(t, IsFrameTooLarge(fmt.Errorf("decode: %w", ErrHeaderFieldsTooLarge)))
		require.False(t, IsFrameTooLarge(ErrMalformedRequestLine))
	})

	t.Run("code of", func(t *testing.T) {
		require.Equal(t, BadRequest, CodeOf(ErrMalformedRequestLine))
		require.Equal(t, RequestHeaderFieldsTooLarge, CodeOf(ErrHeaderFieldsTooLarge))
		require.Equal(t, InternalServerError, CodeOf(fmt.Errorf("whatever")))
	})
}
