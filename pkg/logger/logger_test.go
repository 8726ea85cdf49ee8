package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestComponent_EscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(Config{Env: "production", Level: "info", AppName: "alquiler-api"}, &buf)

	rental := l.Component("rental")
	rental.Info().Str("rental_id", "r-1").Msg("alquiler creado")
	l.Debug().Msg("descartado por nivel")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "rental", line["component"])
	assert.Equal(t, "alquiler-api", line["app"])
	assert.Equal(t, "r-1", line["rental_id"])
}
