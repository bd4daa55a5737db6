package util_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github/chapool/go-hdwallet/internal/util"
)

func TestLogFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Str("component", "test").Logger()

	ctx := util.WithLogger(context.Background(), logger)
	util.LogFromContext(ctx).Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"test"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)

	// falls back to the global logger without panicking
	assert.NotNil(t, util.LogFromContext(context.Background()))
}

func TestLogLevelFromString(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, util.LogLevelFromString("debug"))
	assert.Equal(t, zerolog.InfoLevel, util.LogLevelFromString(""))
	assert.Equal(t, zerolog.InfoLevel, util.LogLevelFromString("nope"))
}
