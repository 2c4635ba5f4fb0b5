package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_IncluyeCampoService(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(Config{Level: "info", Service: "kardex-api"}, &buf)

	l.Info().Str("evento", "arranque").Msg("servicio listo")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kardex-api", line["service"])
	assert.Equal(t, "servicio listo", line["message"])
}

func TestLogger_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(Config{Level: "warn"}, &buf)

	l.Info().Msg("no debería salir")
	assert.Empty(t, buf.Bytes(), "info queda por debajo del nivel warn")

	l.Warn().Msg("sí sale")
	assert.Contains(t, buf.String(), "sí sale")
}

func TestParseLevel_DefaultInfo(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel("cualquier-cosa"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
}
