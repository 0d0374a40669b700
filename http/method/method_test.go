package method

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func BenchmarkMethod(b *testing.B) {
	var parsed Method

	for _, m := range List {
		b.Run(m.String(), func(b *testing.B) {
			token := m.String()
			b.SetBytes(int64(len(token)))
			b.ResetTimer()

			for j := 0; j < b.N; j++ {
				parsed = Parse(token)
			}
		})
	}

	keepalive(parsed)
}

func keepalive(Method) {}

func TestMethod(t *testing.T) {
	for _, method := range List {
		assert.Equal(t, method, Parse(method.String()))
	}

	assert.Equal(t, Unknown, Parse("post"))
	assert.Equal(t, Unknown, Parse("BREW"))
	assert.Equal(t, Unknown, Parse(""))
	assert.Equal(t, "", Method(200).String())
}
