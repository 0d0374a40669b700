package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoZeroFields(t *testing.T) {
	cfg := Default()

	for _, field := range visit(newVar(*cfg), "Config", false) {
		assert.Fail(t, "zero-value field", field)
	}
}

func TestLoad(t *testing.T) {
	t.Run("overlay", func(t *testing.T) {
		cfg, err := Load(strings.NewReader(`{
			"Headers": {"LineSize": {"Maximal": 1024}, "Strict": true},
			"NET": {"ReadTimeout": 1000000000}
		}`))
		require.NoError(t, err)
		require.Equal(t, 1024, cfg.Headers.LineSize.Maximal)
		require.Equal(t, Default().Headers.LineSize.Default, cfg.Headers.LineSize.Default)
		require.True(t, cfg.Headers.Strict)
		require.Equal(t, time.Second, cfg.NET.ReadTimeout)
		require.Equal(t, Default().Body, cfg.Body)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(strings.NewReader(`{"Headers": {"Unknown": 1}}`))
		require.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Load(strings.NewReader(`{"URI": `))
		require.Error(t, err)
	})
}

type variable struct {
	Type  reflect.Type
	Value reflect.Value
}

func newVar(a any) variable {
	return variable{reflect.TypeOf(a), reflect.ValueOf(a)}
}

func visit(a variable, name string, nullable bool) (fields []string) {
	if a.Type.Kind() == reflect.Struct {
		for field := range a.Value.NumField() {
			v1 := variable{a.Type.Field(field).Type, a.Value.Field(field)}
			fieldname := a.Type.Field(field).Name
			isNullable := a.Type.Field(field).Tag.Get("test") == "nullable"
			fields = append(fields, visit(v1, name+"."+fieldname, isNullable)...)
		}

		return fields
	}

	if a.Value.IsZero() && !nullable {
		return []string{name}
	}

	return nil
}
