package log

import (
	"bytes"
	"testing"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_FiltersByLevel(t *testing.T) {
	defer func() { Logger = kitlog.NewNopLogger() }()

	var buf bytes.Buffer

	logger, err := initLogger(&buf, "logfmt", "warn")
	require.NoError(t, err)
	assert.Equal(t, logger, Logger)

	_ = level.Info(logger).Log("msg", "hidden")
	_ = level.Warn(logger).Log("msg", "shown", "path", "a.go")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "path=a.go")
	assert.Contains(t, out, "level=warn")
}

func TestInitLogger_JSON(t *testing.T) {
	defer func() { Logger = kitlog.NewNopLogger() }()

	var buf bytes.Buffer

	logger, err := initLogger(&buf, "json", "debug")
	require.NoError(t, err)

	_ = level.Debug(logger).Log("msg", "x")
	assert.Contains(t, buf.String(), `"msg":"x"`)
}

func TestInitLogger_Errors(t *testing.T) {
	_, err := initLogger(&bytes.Buffer{}, "xml", "info")
	require.Error(t, err)

	_, err = initLogger(&bytes.Buffer{}, "logfmt", "loud")
	require.Error(t, err)
}
