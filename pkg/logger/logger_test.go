package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

func TestNew_JSONConCampos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	log.WithFields(map[string]string{"company_id": "c1"}).Warn().Int("quantity", 3).Msg("ubicación eliminada con stock")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "c1", line["company_id"])
	assert.EqualValues(t, 3, line["quantity"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "error", Output: &buf})
	log.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())
}
