package command_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-hdwallet/internal/util/command"
)

func TestTerminalPromptConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		prompt := command.NewTerminalPrompt(strings.NewReader(tt.input), &out)

		ok, err := prompt.Confirm(context.Background(), "Send 1 ETH")
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, "input %q", tt.input)
		assert.Contains(t, out.String(), "Send 1 ETH")
	}
}

func TestTerminalPromptKeepsBufferedInput(t *testing.T) {
	var out bytes.Buffer
	prompt := command.NewTerminalPrompt(strings.NewReader("n\ny\n"), &out)

	ok, err := prompt.Confirm(context.Background(), "first")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = prompt.Confirm(context.Background(), "second")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTerminalPromptCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer r.Close()

	var out bytes.Buffer
	prompt := command.NewTerminalPrompt(r, &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := prompt.Confirm(ctx, "Send 1 ETH")
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)

	go func() {
		_, _ = w.Write([]byte("yes\n"))
	}()

	ok, err = prompt.Confirm(context.Background(), "Send 1 ETH")
	require.NoError(t, err)
	assert.True(t, ok)
}
